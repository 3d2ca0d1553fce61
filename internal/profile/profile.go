// Package profile turns raw resume text into the structured candidate profile
// consumed by matching. Extraction is a pure function of the input text and
// the static taxonomy dictionaries.
package profile

import (
	"fmt"

	"github.com/resumi/job-discovery/internal/taxonomy"
)

// Profile is the structured representation of a candidate. It is created once
// per uploaded resume and never mutated afterwards; a re-upload produces a
// fresh Profile.
type Profile struct {
	ID               string             `json:"id"`
	PrimaryRole      string             `json:"primary_role"`
	Seniority        taxonomy.Seniority `json:"-"`
	SeniorityName    string             `json:"seniority"`
	Skills           []string           `json:"skills"`
	Tools            []string           `json:"tools"`
	ExperienceYears  float64            `json:"experience_years"`
	Education        []string           `json:"education"`
	LocationMentions []string           `json:"location_mentions"`
	SkillClusters    []string           `json:"skill_clusters"`
}

// AllSkills returns skills and tools as one slice, in order. Matching treats
// the two sets as a single token vector.
func (p *Profile) AllSkills() []string {
	out := make([]string, 0, len(p.Skills)+len(p.Tools))
	out = append(out, p.Skills...)
	out = append(out, p.Tools...)
	return out
}

// ParseError signals that no extractable skill or role signal exists in the
// resume text. The caller surfaces it as an unrecoverable parse failure.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("resume parse failure: %s", e.Reason)
}
