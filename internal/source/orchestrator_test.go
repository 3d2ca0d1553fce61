package source

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeCollector drives orchestrator tests without HTTP.
type fakeCollector struct {
	name  string
	fetch func(ctx context.Context, token string) ([]RawPosting, string, error)

	inFlight    *atomic.Int32
	maxInFlight *atomic.Int32
}

func (f *fakeCollector) Name() string            { return f.name }
func (f *fakeCollector) Domain() string          { return f.name + ".example.com" }
func (f *fakeCollector) Interval() time.Duration { return time.Millisecond }

func (f *fakeCollector) Fetch(ctx context.Context, token string) ([]RawPosting, string, error) {
	if f.inFlight != nil {
		cur := f.inFlight.Add(1)
		for {
			max := f.maxInFlight.Load()
			if cur <= max || f.maxInFlight.CompareAndSwap(max, cur) {
				break
			}
		}
		defer f.inFlight.Add(-1)
	}
	return f.fetch(ctx, token)
}

func posting(source string) RawPosting {
	return RawPosting{Source: source, Fields: map[string]any{"title": "x"}, CollectedAt: time.Now().UTC()}
}

func TestCollectBoundsConcurrency(t *testing.T) {
	var inFlight, maxSeen atomic.Int32

	collectors := make([]Collector, 0, 10)
	for i := 0; i < 10; i++ {
		name := fmt.Sprintf("src-%d", i)
		collectors = append(collectors, &fakeCollector{
			name:        name,
			inFlight:    &inFlight,
			maxInFlight: &maxSeen,
			fetch: func(_ context.Context, _ string) ([]RawPosting, string, error) {
				time.Sleep(30 * time.Millisecond)
				return []RawPosting{posting(name)}, "", nil
			},
		})
	}

	postings, failures := NewOrchestrator(zap.NewNop()).Collect(context.Background(), collectors, 5*time.Second)

	require.Empty(t, failures)
	require.Len(t, postings, 10)
	require.LessOrEqual(t, maxSeen.Load(), int32(MaxInFlight))
}

func TestCollectBudgetExpiry(t *testing.T) {
	slow := &fakeCollector{
		name: "slow",
		fetch: func(ctx context.Context, _ string) ([]RawPosting, string, error) {
			<-ctx.Done()
			return nil, "", ctx.Err()
		},
	}
	fast := &fakeCollector{
		name: "fast",
		fetch: func(_ context.Context, _ string) ([]RawPosting, string, error) {
			return []RawPosting{posting("fast")}, "", nil
		},
	}

	postings, failures := NewOrchestrator(zap.NewNop()).Collect(context.Background(), []Collector{slow, fast}, 50*time.Millisecond)

	require.Len(t, postings, 1)
	require.Equal(t, "fast", postings[0].Source)
	require.Len(t, failures, 1)
	require.Equal(t, "slow", failures[0].Source)
	require.Equal(t, FailureTimeout, failures[0].Kind)
}

func TestCollectRequestTimeoutIsUnavailable(t *testing.T) {
	// A collector whose own HTTP request timed out carries DeadlineExceeded in
	// its error chain; with the budget still open that is a source problem.
	slowUpstream := &fakeCollector{
		name: "slow-upstream",
		fetch: func(_ context.Context, _ string) ([]RawPosting, string, error) {
			return nil, "", fmt.Errorf("request https://slow.example.com/jobs: %w", context.DeadlineExceeded)
		},
	}

	postings, failures := NewOrchestrator(zap.NewNop()).Collect(context.Background(), []Collector{slowUpstream}, 5*time.Second)

	require.Empty(t, postings)
	require.Len(t, failures, 1)
	require.Equal(t, FailureUnavailable, failures[0].Kind)
}

func TestCollectKeepsPartialPages(t *testing.T) {
	flaky := &fakeCollector{
		name: "flaky",
		fetch: func(_ context.Context, token string) ([]RawPosting, string, error) {
			if token == "" {
				return []RawPosting{posting("flaky"), posting("flaky")}, "1", nil
			}
			return nil, "", errors.New("connection reset")
		},
	}

	postings, failures := NewOrchestrator(zap.NewNop()).Collect(context.Background(), []Collector{flaky}, time.Second)

	require.Len(t, postings, 2)
	require.Len(t, failures, 1)
	require.Equal(t, FailureUnavailable, failures[0].Kind)
}

func TestCollectPolicySkipIsNotFailure(t *testing.T) {
	skipped := &fakeCollector{
		name: "skipped",
		fetch: func(_ context.Context, _ string) ([]RawPosting, string, error) {
			return nil, "", fmt.Errorf("%w: https://skipped.example.com/jobs", ErrPolicySkip)
		},
	}
	ok := &fakeCollector{
		name: "ok",
		fetch: func(_ context.Context, _ string) ([]RawPosting, string, error) {
			return []RawPosting{posting("ok")}, "", nil
		},
	}

	postings, failures := NewOrchestrator(zap.NewNop()).Collect(context.Background(), []Collector{skipped, ok}, time.Second)

	require.Empty(t, failures)
	require.Len(t, postings, 1)
	require.Equal(t, "ok", postings[0].Source)
}

func TestCollectIsolatesFailures(t *testing.T) {
	bad := &fakeCollector{
		name: "bad",
		fetch: func(_ context.Context, _ string) ([]RawPosting, string, error) {
			return nil, "", errors.New("boom")
		},
	}
	good := &fakeCollector{
		name: "good",
		fetch: func(_ context.Context, _ string) ([]RawPosting, string, error) {
			return []RawPosting{posting("good"), posting("good")}, "", nil
		},
	}

	postings, failures := NewOrchestrator(zap.NewNop()).Collect(context.Background(), []Collector{bad, good}, time.Second)

	require.Len(t, postings, 2)
	require.Len(t, failures, 1)
	require.Equal(t, "bad", failures[0].Source)
	require.Equal(t, FailureUnavailable, failures[0].Kind)
}
