// Package engine wires extraction, collection, normalization, matching and
// explanation into one facade the CLI drives.
package engine

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/resumi/job-discovery/internal/explain"
	"github.com/resumi/job-discovery/internal/job"
	"github.com/resumi/job-discovery/internal/location"
	"github.com/resumi/job-discovery/internal/match"
	"github.com/resumi/job-discovery/internal/profile"
	"github.com/resumi/job-discovery/internal/source"
	"github.com/resumi/job-discovery/internal/store"
)

// DefaultBudget is the wall-clock ceiling for one collection round.
const DefaultBudget = 2 * time.Minute

// Recommendation pairs a scored job with its human-readable explanation.
type Recommendation struct {
	Job         job.Job             `json:"job"`
	Score       float64             `json:"score"`
	Signals     match.Signals       `json:"signals"`
	Explanation explain.Explanation `json:"explanation"`
}

// Report is the outcome of one recommendation round. An empty Recommendations
// slice with Suggestions populated is a valid result, not an error.
type Report struct {
	ProfileID       string           `json:"profile_id"`
	JobsCollected   int              `json:"jobs_collected"`
	JobsMatched     int              `json:"jobs_matched"`
	FromCache       bool             `json:"from_cache"`
	Recommendations []Recommendation `json:"recommendations"`
	Failures        []source.Failure `json:"failures,omitempty"`
	Suggestions     []string         `json:"suggestions,omitempty"`
}

// Engine owns the full pipeline and the caches around it.
type Engine struct {
	logger     *zap.Logger
	extractor  *profile.Extractor
	collectors []source.Collector
	orch       *source.Orchestrator
	normalizer *job.Normalizer
	matcher    *match.Matcher
	cache      store.JobCache
	sessions   store.SessionStore
	budget     time.Duration
}

type Options struct {
	Logger     *zap.Logger
	Extractor  *profile.Extractor
	Collectors []source.Collector
	Cache      store.JobCache
	Sessions   store.SessionStore
	Budget     time.Duration
}

func New(opts Options) *Engine {
	budget := opts.Budget
	if budget <= 0 {
		budget = DefaultBudget
	}
	return &Engine{
		logger:     opts.Logger,
		extractor:  opts.Extractor,
		collectors: opts.Collectors,
		orch:       source.NewOrchestrator(opts.Logger),
		normalizer: job.NewNormalizer(opts.Logger),
		matcher:    match.NewMatcher(opts.Logger),
		cache:      opts.Cache,
		sessions:   opts.Sessions,
		budget:     budget,
	}
}

// ExtractProfile parses resume text and opens a session for the resulting
// profile. A *profile.ParseError passes through unwrapped so callers can show
// its reason.
func (e *Engine) ExtractProfile(ctx context.Context, text string) (*store.Session, error) {
	p, err := e.extractor.Extract(text)
	if err != nil {
		return nil, err
	}

	sess, err := e.sessions.Create(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	e.logger.Info("profile extracted",
		zap.String("profile_id", p.ID),
		zap.String("session_id", sess.ID),
		zap.Int("skills", len(p.Skills)),
		zap.Int("tools", len(p.Tools)),
	)
	return sess, nil
}

// CollectAndMatch produces a full recommendation report for the profile. Jobs
// come from the cache when it holds any fresh records; otherwise the
// collectors run within the configured budget and the cache is refilled.
func (e *Engine) CollectAndMatch(ctx context.Context, p *profile.Profile) (*Report, error) {
	jobs, failures, fromCache, err := e.jobs(ctx)
	if err != nil {
		return nil, err
	}

	results := e.matcher.Match(p, jobs)

	recs := make([]Recommendation, 0, len(results))
	for _, r := range results {
		recs = append(recs, Recommendation{
			Job:         r.Job,
			Score:       r.Score,
			Signals:     r.Signals,
			Explanation: explain.Generate(p, r),
		})
	}

	report := &Report{
		ProfileID:       p.ID,
		JobsCollected:   len(jobs),
		JobsMatched:     len(recs),
		FromCache:       fromCache,
		Recommendations: recs,
		Failures:        failures,
	}
	if len(recs) == 0 {
		report.Suggestions = suggestions(p, len(jobs))
	}

	e.logger.Info("recommendation round finished",
		zap.String("profile_id", p.ID),
		zap.Int("collected", report.JobsCollected),
		zap.Int("matched", report.JobsMatched),
		zap.Bool("from_cache", fromCache),
		zap.Int("failures", len(failures)),
	)
	return report, nil
}

// Refresh forces a collection round and refills the cache, ignoring existing
// cached jobs. Used by the scheduled warmer.
func (e *Engine) Refresh(ctx context.Context) (int, []source.Failure, error) {
	jobs, failures := e.collect(ctx)
	if len(jobs) > 0 {
		if err := e.cache.Put(ctx, jobs); err != nil {
			return 0, failures, fmt.Errorf("caching jobs: %w", err)
		}
	}
	return len(jobs), failures, nil
}

func (e *Engine) jobs(ctx context.Context) ([]job.Job, []source.Failure, bool, error) {
	cached, err := e.cache.Jobs(ctx)
	if err != nil {
		e.logger.Warn("job cache read failed, collecting instead", zap.Error(err))
	}
	if len(cached) > 0 {
		return cached, nil, true, nil
	}

	jobs, failures := e.collect(ctx)
	if len(jobs) > 0 {
		if err := e.cache.Put(ctx, jobs); err != nil {
			e.logger.Warn("job cache write failed", zap.Error(err))
		}
	}
	return jobs, failures, false, nil
}

func (e *Engine) collect(ctx context.Context) ([]job.Job, []source.Failure) {
	raws, failures := e.orch.Collect(ctx, e.collectors, e.budget)
	return e.normalizer.NormalizeAll(raws), failures
}

// suggestions proposes ways to widen the search when nothing clears the
// score floor.
func suggestions(p *profile.Profile, collected int) []string {
	var out []string
	if collected == 0 {
		out = append(out, "No jobs were collected this round; retry later or check source configuration.")
		return out
	}
	if len(p.AllSkills()) < 5 {
		out = append(out, "List more skills and tools on the resume; matching is driven by skill overlap.")
	}
	if len(p.LocationMentions) > 0 {
		hasRemote := false
		for _, m := range p.LocationMentions {
			if location.Normalize(m).Type == location.TypeRemote {
				hasRemote = true
				break
			}
		}
		if !hasRemote {
			out = append(out, "Consider remote roles; they match any location preference.")
		}
		out = append(out, "Broaden the preferred locations; current matches were penalized by location.")
	}
	if len(out) == 0 {
		out = append(out, "Try again after the next collection round; sources refresh throughout the day.")
	}
	return out
}
