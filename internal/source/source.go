// Package source collects raw job postings from external boards. Each
// collector covers one source family and runs under that source's rate limit
// and robots policy; the orchestrator fans collectors out with a bounded
// concurrency ceiling and absorbs per-source failures.
package source

import (
	"context"
	"errors"
	"time"
)

// RawPosting is a source-native posting. It is ephemeral and consumed only by
// the normalization adapters.
type RawPosting struct {
	Source      string
	Fields      map[string]any
	Raw         []byte
	CollectedAt time.Time
}

// Collector fetches raw postings from one external source, one page per call.
// An empty next token ends pagination.
type Collector interface {
	Name() string

	// Domain keys the rate limiter and robots cache for this source.
	Domain() string

	// Interval is the minimum spacing between requests to the domain.
	Interval() time.Duration

	Fetch(ctx context.Context, pageToken string) (postings []RawPosting, next string, err error)
}

// ErrPolicySkip marks a domain whose robots policy disallows collection. The
// orchestrator logs it and moves on; it is never reported as a failure.
var ErrPolicySkip = errors.New("robots policy disallows collection")

// FailureKind classifies why a collector contributed nothing.
type FailureKind string

const (
	FailureUnavailable FailureKind = "source_unavailable"
	FailureTimeout     FailureKind = "timeout"
)

// Failure records one collector's terminal error. Failures are metadata on
// the collection result, never a reason to abort other collectors.
type Failure struct {
	Source string      `json:"source"`
	Kind   FailureKind `json:"kind"`
	Err    error       `json:"-"`
}

func (f Failure) Error() string {
	return string(f.Kind) + ": " + f.Source + ": " + f.Err.Error()
}
