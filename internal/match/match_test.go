package match

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/resumi/job-discovery/internal/job"
	"github.com/resumi/job-discovery/internal/location"
	"github.com/resumi/job-discovery/internal/profile"
	"github.com/resumi/job-discovery/internal/taxonomy"
)

func seniorProfile() *profile.Profile {
	return &profile.Profile{
		ID:               "prof-1",
		PrimaryRole:      "software engineer",
		Seniority:        taxonomy.SenioritySenior,
		Skills:           []string{"python", "aws"},
		Tools:            []string{"docker", "kubernetes"},
		LocationMentions: []string{"San Francisco"},
	}
}

func sfJob(id string) job.Job {
	return job.Job{
		ID:      id,
		Title:   "Senior Platform Engineer",
		Company: "Acme",
		Source:  job.SourceGreenhouse,
		Location: location.Location{
			City: "San Francisco", Country: "USA", Type: location.TypeOnsite,
		},
		ApplyURL:        "https://example.com/" + id,
		Description:     "We use Python, AWS, Docker and Terraform every day.",
		Skills:          []string{"python", "aws", "docker", "terraform"},
		SeniorityTarget: taxonomy.SenioritySenior,
		PostedAt:        time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
	}
}

func TestScoreDeterministic(t *testing.T) {
	m := NewMatcher(zap.NewNop())
	p := seniorProfile()
	jobs := []job.Job{sfJob("aaa"), sfJob("bbb")}

	first := m.Match(p, jobs)
	for i := 0; i < 50; i++ {
		again := m.Match(p, jobs)
		require.Equal(t, len(first), len(again))
		for k := range first {
			// Bit-for-bit reproducible, not merely approximately equal.
			require.Equal(t, first[k].Score, again[k].Score)
			require.Equal(t, first[k].Job.ID, again[k].Job.ID)
		}
	}
}

func TestRemoteOverridesLocationPenalty(t *testing.T) {
	p := seniorProfile()

	j := sfJob("remote-1")
	j.Location = location.Location{Type: location.TypeRemote, Raw: "Remote - Worldwide"}

	factor, rule := locationFactor(p, j.Location)
	require.Equal(t, 1.0, factor)
	require.Equal(t, LocationRemote, rule)

	// Even with hostile geography mentions the override holds.
	p.LocationMentions = []string{"Bangalore", "Tokyo"}
	factor, _ = locationFactor(p, j.Location)
	require.Equal(t, 1.0, factor)
}

func TestLocationFactorTiers(t *testing.T) {
	p := seniorProfile() // mentions San Francisco

	cases := []struct {
		name   string
		loc    location.Location
		factor float64
		rule   LocationRule
	}{
		{"exact city", location.Location{City: "San Francisco", Country: "USA", Type: location.TypeOnsite}, 1.0, LocationExactCity},
		{"same country", location.Location{City: "Austin", Country: "USA", Type: location.TypeOnsite}, 0.7, LocationSameCountry},
		{"same region", location.Location{City: "Toronto", Country: "Canada", Type: location.TypeOnsite}, 0.4, LocationSameRegion},
		{"mismatch", location.Location{City: "Berlin", Country: "Germany", Type: location.TypeOnsite}, 0.25, LocationMismatch},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			factor, rule := locationFactor(p, tc.loc)
			require.Equal(t, tc.factor, factor)
			require.Equal(t, tc.rule, rule)
		})
	}
}

func TestNoLocationMentionsMeansNoPreference(t *testing.T) {
	p := seniorProfile()
	p.LocationMentions = nil

	factor, rule := locationFactor(p, location.Location{City: "Berlin", Country: "Germany", Type: location.TypeOnsite})
	require.Equal(t, 1.0, factor)
	require.Equal(t, LocationNoPreference, rule)
}

func TestSeniorityAdjustment(t *testing.T) {
	cases := []struct {
		name   string
		have   taxonomy.Seniority
		target taxonomy.Seniority
		want   float64
	}{
		{"junior to mid", taxonomy.SeniorityJunior, taxonomy.SeniorityMid, 0.2},
		{"mid to senior", taxonomy.SeniorityMid, taxonomy.SenioritySenior, 0.2},
		{"senior to senior", taxonomy.SenioritySenior, taxonomy.SenioritySenior, 0.0},
		{"senior to mid is a downgrade", taxonomy.SenioritySenior, taxonomy.SeniorityMid, -0.3},
		{"staff+ to junior is a downgrade", taxonomy.SeniorityStaffPlus, taxonomy.SeniorityJunior, -0.3},
		{"junior to senior big jump is neutral", taxonomy.SeniorityJunior, taxonomy.SenioritySenior, 0.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, seniorityAdjustment(tc.have, tc.target))
		})
	}
}

func TestDowngradeAlwaysExactPenalty(t *testing.T) {
	for have := taxonomy.SeniorityMid; have <= taxonomy.SeniorityStaffPlus; have++ {
		for target := taxonomy.SeniorityJunior; target < have; target++ {
			require.Equal(t, -0.3, seniorityAdjustment(have, target),
				"have=%v target=%v", have, target)
		}
	}
}

func TestSimilarityFloorFiltersWeakMatches(t *testing.T) {
	m := NewMatcher(zap.NewNop())
	p := seniorProfile()

	weak := sfJob("weak")
	weak.Skills = []string{"figma", "wireframing", "user research"}
	weak.Description = "Design role: Figma, wireframing, user research."
	weak.SeniorityTarget = taxonomy.SenioritySenior

	results := m.Match(p, []job.Job{weak})
	require.Empty(t, results, "zero skill overlap must score under the floor")
}

func TestOrderingTieBreaks(t *testing.T) {
	m := NewMatcher(zap.NewNop())
	p := seniorProfile()

	older := sfJob("bbb")
	older.PostedAt = time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)

	newer := sfJob("ccc")
	newer.PostedAt = time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)

	sameAsNewer := sfJob("aaa")
	sameAsNewer.PostedAt = newer.PostedAt

	// Input order shuffled relative to expected output order.
	results := m.Match(p, []job.Job{older, newer, sameAsNewer})
	require.Len(t, results, 3)

	// Identical scores: recency first, then lexicographic id.
	require.Equal(t, "aaa", results[0].Job.ID)
	require.Equal(t, "ccc", results[1].Job.ID)
	require.Equal(t, "bbb", results[2].Job.ID)

	// Ordering must not depend on input order.
	again := m.Match(p, []job.Job{sameAsNewer, older, newer})
	for i := range results {
		require.Equal(t, results[i].Job.ID, again[i].Job.ID)
	}
}

func TestEndToEndExample(t *testing.T) {
	// Profile{Python, AWS, Docker, Kubernetes; senior; SF} against an
	// onsite SF senior job requiring {Python, AWS, Docker, Terraform}.
	m := NewMatcher(zap.NewNop())
	p := seniorProfile()

	onsite := sfJob("onsite")
	results := m.Match(p, []job.Job{onsite})
	require.Len(t, results, 1)

	r := results[0]
	require.Equal(t, []string{"aws", "docker", "python"}, r.Signals.SkillMatches)
	require.Equal(t, []string{"terraform"}, r.Signals.SkillGaps)
	require.Equal(t, 1.0, r.Signals.LocationFactor)
	require.Equal(t, 0.0, r.Signals.SeniorityAdj)
	// Location factor 1.0 and zero adjustment: final score is the base
	// cosine similarity.
	require.Equal(t, r.Signals.Base, r.Score)

	// A remote job with lower skill overlap must not outrank it even
	// though remote also gets factor 1.0.
	remote := sfJob("remote")
	remote.Location = location.Location{Type: location.TypeRemote}
	remote.Skills = []string{"python", "terraform"}
	remote.Description = "Python and Terraform."

	both := m.Match(p, []job.Job{remote, onsite})
	require.Len(t, both, 2)
	require.Equal(t, "onsite", both[0].Job.ID)
	require.Equal(t, "remote", both[1].Job.ID)
}

func TestScoreClamped(t *testing.T) {
	m := NewMatcher(zap.NewNop())
	p := seniorProfile()
	p.Seniority = taxonomy.SeniorityMid // step up to senior target: +0.2

	j := sfJob("clamp")
	// Perfect overlap: base near 1.0, plus 0.2 bonus, must clamp to 1.0.
	j.Skills = []string{"aws", "docker", "kubernetes", "python"}
	j.Description = "python aws docker kubernetes"

	results := m.Match(p, []job.Job{j})
	require.Len(t, results, 1)
	require.LessOrEqual(t, results[0].Score, 1.0)
	require.GreaterOrEqual(t, results[0].Score, 0.0)
}
