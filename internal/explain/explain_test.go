package explain

import (
	"strings"
	"testing"

	"github.com/resumi/job-discovery/internal/job"
	"github.com/resumi/job-discovery/internal/location"
	"github.com/resumi/job-discovery/internal/match"
	"github.com/resumi/job-discovery/internal/profile"
	"github.com/resumi/job-discovery/internal/taxonomy"
)

func result(rule match.LocationRule, matches, gaps []string) match.Result {
	return match.Result{
		Job: job.Job{
			ID:    "j1",
			Title: "Senior Engineer",
			Location: location.Location{
				City: "San Francisco", Country: "USA", Raw: "San Francisco, CA",
			},
		},
		Score: 0.75,
		Signals: match.Signals{
			Base:           0.75,
			LocationFactor: 1.0,
			LocationRule:   rule,
			SkillMatches:   matches,
			SkillGaps:      gaps,
		},
	}
}

func testProfile() *profile.Profile {
	return &profile.Profile{
		ID:          "p1",
		PrimaryRole: "software engineer",
		Seniority:   taxonomy.SenioritySenior,
	}
}

func TestGenerateUsesMatcherSignalsVerbatim(t *testing.T) {
	matches := []string{"aws", "docker", "python"}
	gaps := []string{"terraform"}

	e := Generate(testProfile(), result(match.LocationExactCity, matches, gaps))

	// Matches and gaps come straight from the scoring pass, unmodified.
	if len(e.SkillMatches) != 3 || e.SkillMatches[0] != "aws" {
		t.Fatalf("skill matches = %v", e.SkillMatches)
	}
	if len(e.SkillGaps) != 1 || e.SkillGaps[0] != "terraform" {
		t.Fatalf("skill gaps = %v", e.SkillGaps)
	}
}

func TestLocationReasoningFollowsRule(t *testing.T) {
	cases := []struct {
		rule match.LocationRule
		want string
	}{
		{match.LocationRemote, "Remote position"},
		{match.LocationExactCity, "preferred city: San Francisco"},
		{match.LocationSameCountry, "Same country"},
		{match.LocationSameRegion, "Same region"},
		{match.LocationNoPreference, "No location preference"},
		{match.LocationMismatch, "Outside your preferred locations"},
	}

	for _, tc := range cases {
		e := Generate(testProfile(), result(tc.rule, []string{"python"}, nil))
		if !strings.Contains(e.LocationReasoning, tc.want) {
			t.Errorf("rule %s: reasoning %q does not contain %q", tc.rule, e.LocationReasoning, tc.want)
		}
		if !strings.Contains(e.Text, e.LocationReasoning) {
			t.Errorf("rule %s: explanation text %q must embed the location reasoning", tc.rule, e.Text)
		}
	}
}

func TestExplanationLeadsWithSkills(t *testing.T) {
	e := Generate(testProfile(), result(match.LocationExactCity, []string{"aws", "docker", "go", "python"}, nil))
	if !strings.Contains(e.Text, "Matches 4 of your skills") {
		t.Fatalf("text = %q", e.Text)
	}
	// Only the top three are listed.
	if strings.Contains(e.Text, "python") {
		t.Fatalf("expected only first three skills listed, got %q", e.Text)
	}
}

func TestExplanationLeadsWithStepUpWhenDominant(t *testing.T) {
	r := result(match.LocationExactCity, nil, nil)
	r.Signals.Base = 0.1
	r.Signals.SeniorityAdj = 0.2

	e := Generate(testProfile(), r)
	if !strings.Contains(e.Text, "step up") {
		t.Fatalf("text = %q", e.Text)
	}
}

func TestGapListCapped(t *testing.T) {
	gaps := []string{"a", "b", "c", "d", "e", "f", "g"}
	e := Generate(testProfile(), result(match.LocationExactCity, []string{"python"}, gaps))
	if len(e.SkillGaps) != 5 {
		t.Fatalf("gap list = %v", e.SkillGaps)
	}
}
