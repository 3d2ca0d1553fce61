package source

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// MaxInFlight caps simultaneous source fetches regardless of how many
// collectors are configured; the rest queue until a slot frees.
const MaxInFlight = 5

// Orchestrator runs collectors concurrently under the in-flight ceiling and
// an overall wall-clock budget, aggregating postings and absorbing per-source
// failures.
type Orchestrator struct {
	logger *zap.Logger
}

func NewOrchestrator(logger *zap.Logger) *Orchestrator {
	return &Orchestrator{logger: logger}
}

// Collect fans the collectors out and gathers everything they return within
// budget. A collector failing contributes zero postings and one Failure;
// nothing a single collector does can abort the others. Partial results are
// always returned.
func (o *Orchestrator) Collect(ctx context.Context, collectors []Collector, budget time.Duration) ([]RawPosting, []Failure) {
	ctx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	var (
		mu       sync.Mutex
		postings []RawPosting
		failures []Failure
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(MaxInFlight)

	for _, c := range collectors {
		g.Go(func() error {
			collected, err := o.runCollector(ctx, c)

			mu.Lock()
			defer mu.Unlock()

			postings = append(postings, collected...)
			if err != nil {
				failures = append(failures, classify(ctx, c.Name(), err))
			}
			return nil // failures stay per-collector
		})
	}

	g.Wait() //nolint:errcheck // goroutines never return an error

	o.logger.Info("collection finished",
		zap.Int("sources", len(collectors)),
		zap.Int("postings", len(postings)),
		zap.Int("failures", len(failures)),
	)

	return postings, failures
}

// runCollector pages through one collector. Postings gathered before an error
// are kept; a robots policy skip ends the collector quietly.
func (o *Orchestrator) runCollector(ctx context.Context, c Collector) ([]RawPosting, error) {
	var collected []RawPosting

	token := ""
	for {
		postings, next, err := c.Fetch(ctx, token)
		collected = append(collected, postings...)

		if err != nil {
			if errors.Is(err, ErrPolicySkip) {
				o.logger.Info("policy skip",
					zap.String("source", c.Name()),
					zap.String("domain", c.Domain()),
				)
				return collected, nil
			}
			return collected, err
		}

		if next == "" {
			return collected, nil
		}
		token = next
	}
}

// classify keys the failure kind on the budget context, not the error chain:
// a per-request timeout inside a collector also unwraps to DeadlineExceeded
// but is an upstream problem, not budget exhaustion.
func classify(ctx context.Context, source string, err error) Failure {
	kind := FailureUnavailable
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		kind = FailureTimeout
	}
	return Failure{Source: source, Kind: kind, Err: err}
}
