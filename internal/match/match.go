// Package match scores canonical jobs against a candidate profile. Scores
// are pure functions of (Profile, Job) content: no clocks, no randomness, no
// map-order dependence, so the same inputs always produce bit-identical
// results.
package match

import (
	"sort"

	"go.uber.org/zap"

	"github.com/resumi/job-discovery/internal/job"
	"github.com/resumi/job-discovery/internal/profile"
)

// SimilarityFloor is the minimum final score a job needs to be recommended.
const SimilarityFloor = 0.3

// Signals are the intermediate values the score was assembled from. The
// explanation generator consumes these directly so score and explanation can
// never disagree.
type Signals struct {
	Base           float64      `json:"base"`
	LocationFactor float64      `json:"location_factor"`
	LocationRule   LocationRule `json:"location_rule"`
	SeniorityAdj   float64      `json:"seniority_adjustment"`
	SkillMatches   []string     `json:"skill_matches"`
	SkillGaps      []string     `json:"skill_gaps"`
}

// Result is one scored (Profile, Job) pair.
type Result struct {
	Job       job.Job `json:"job"`
	ProfileID string  `json:"profile_id"`
	Score     float64 `json:"score"`
	Signals   Signals `json:"signals"`
}

// Matcher scores and ranks job batches.
type Matcher struct {
	logger *zap.Logger
	floor  float64
}

func NewMatcher(logger *zap.Logger) *Matcher {
	return &Matcher{logger: logger, floor: SimilarityFloor}
}

// Match scores every job against the profile, drops everything under the
// floor, and orders the rest: score descending, then more recent posted_at,
// then lexicographic job id. The ordering is independent of input order.
func (m *Matcher) Match(p *profile.Profile, jobs []job.Job) []Result {
	idf := documentFrequencies(jobs)
	profileVec := profileVector(p)

	results := make([]Result, 0, len(jobs))
	for _, j := range jobs {
		r := m.score(p, profileVec, j, idf)
		if r.Score >= m.floor {
			results = append(results, r)
		}
	}

	sort.Slice(results, func(i, k int) bool {
		a, b := results[i], results[k]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if !a.Job.PostedAt.Equal(b.Job.PostedAt) {
			return a.Job.PostedAt.After(b.Job.PostedAt)
		}
		return a.Job.ID < b.Job.ID
	})

	m.logger.Info("matched jobs",
		zap.String("profile_id", p.ID),
		zap.Int("candidates", len(jobs)),
		zap.Int("above_floor", len(results)),
	)

	return results
}

func (m *Matcher) score(p *profile.Profile, profileVec map[string]float64, j job.Job, idf map[string]float64) Result {
	base := cosineSimilarity(profileVec, jobVector(j, idf))
	locFactor, locRule := locationFactor(p, j.Location)
	senAdj := seniorityAdjustment(p.Seniority, j.SeniorityTarget)

	score := clamp01(base*locFactor + senAdj)

	matches, gaps := skillOverlap(p, j)

	return Result{
		Job:       j,
		ProfileID: p.ID,
		Score:     score,
		Signals: Signals{
			Base:           base,
			LocationFactor: locFactor,
			LocationRule:   locRule,
			SeniorityAdj:   senAdj,
			SkillMatches:   matches,
			SkillGaps:      gaps,
		},
	}
}

// skillOverlap splits the job's skills into those the profile covers and
// those it lacks. Both slices come back sorted.
func skillOverlap(p *profile.Profile, j job.Job) (matches, gaps []string) {
	have := make(map[string]bool)
	for _, s := range p.AllSkills() {
		have[s] = true
	}

	for _, s := range j.Skills {
		if have[s] {
			matches = append(matches, s)
		} else {
			gaps = append(gaps, s)
		}
	}
	sort.Strings(matches)
	sort.Strings(gaps)
	return matches, gaps
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
