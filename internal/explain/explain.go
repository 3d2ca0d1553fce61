// Package explain renders human-readable rationale for match results. It only
// reads the signals the matcher already computed, so an explanation can never
// contradict the score it describes.
package explain

import (
	"fmt"
	"strings"

	"github.com/resumi/job-discovery/internal/match"
	"github.com/resumi/job-discovery/internal/profile"
)

// Explanation is the user-facing rationale for one recommendation.
type Explanation struct {
	SkillMatches      []string `json:"skill_matches"`
	SkillGaps         []string `json:"skill_gaps"`
	LocationReasoning string   `json:"location_reasoning"`
	Text              string   `json:"explanation_text"`
}

const (
	maxListedSkills = 3
	maxListedGaps   = 5
)

// Generate builds the explanation for one result from its signals.
func Generate(p *profile.Profile, r match.Result) Explanation {
	locReason := locationReasoning(r)

	return Explanation{
		SkillMatches:      r.Signals.SkillMatches,
		SkillGaps:         capList(r.Signals.SkillGaps, maxListedGaps),
		LocationReasoning: locReason,
		Text:              explanationText(p, r, locReason),
	}
}

// locationReasoning maps the rule that fired during scoring onto its label.
func locationReasoning(r match.Result) string {
	loc := r.Job.Location
	switch r.Signals.LocationRule {
	case match.LocationRemote:
		return "Remote position - work from anywhere"
	case match.LocationExactCity:
		return fmt.Sprintf("Located in your preferred city: %s", loc.City)
	case match.LocationSameCountry:
		return fmt.Sprintf("Same country as your preference: %s", loc.Country)
	case match.LocationSameRegion:
		return "Same region as your preferred locations"
	case match.LocationNoPreference:
		return "No location preference given"
	default:
		return fmt.Sprintf("Outside your preferred locations: %s", loc.Raw)
	}
}

// explanationText combines the dominant scoring signal with the location
// reasoning into one templated sentence.
func explanationText(p *profile.Profile, r match.Result, locReason string) string {
	var lead string

	weighted := r.Signals.Base * r.Signals.LocationFactor

	switch {
	case r.Signals.SeniorityAdj > 0 && r.Signals.SeniorityAdj > weighted:
		lead = fmt.Sprintf("A step up from your current %s level", p.Seniority)
	case len(r.Signals.SkillMatches) > 0:
		listed := capList(r.Signals.SkillMatches, maxListedSkills)
		lead = fmt.Sprintf("Matches %d of your skills (%s)",
			len(r.Signals.SkillMatches), strings.Join(listed, ", "))
	default:
		lead = fmt.Sprintf("Potential fit for your %s background", p.PrimaryRole)
	}

	return lead + ". " + locReason + "."
}

func capList(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
