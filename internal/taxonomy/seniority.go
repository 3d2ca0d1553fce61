package taxonomy

import "strings"

// Seniority is one of the four bands every profile and job target is mapped to.
type Seniority int

const (
	SeniorityJunior Seniority = iota
	SeniorityMid
	SenioritySenior
	SeniorityStaffPlus
)

func (s Seniority) String() string {
	switch s {
	case SeniorityJunior:
		return "junior"
	case SeniorityMid:
		return "mid"
	case SenioritySenior:
		return "senior"
	case SeniorityStaffPlus:
		return "staff+"
	default:
		return "mid"
	}
}

// ParseSeniority maps a band name back to its Seniority. Unknown input maps
// to mid.
func ParseSeniority(s string) Seniority {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "junior":
		return SeniorityJunior
	case "mid":
		return SeniorityMid
	case "senior":
		return SenioritySenior
	case "staff+", "staff", "lead", "principal":
		return SeniorityStaffPlus
	default:
		return SeniorityMid
	}
}

// Ordered keyword probes per band. Staff+ is probed before senior so that
// "staff engineer" and "principal" do not fall into the senior band, and
// junior before mid so "associate engineer ii" resolves to junior.
var seniorityProbes = []struct {
	band     Seniority
	keywords []string
}{
	{SeniorityStaffPlus, []string{"staff", "principal", "distinguished", "architect", "head of", "director", "vp "}},
	{SenioritySenior, []string{"senior", "sr.", "sr ", "lead", "expert"}},
	{SeniorityJunior, []string{"junior", "jr.", "jr ", "entry", "entry-level", "intern", "graduate", "associate"}},
	{SeniorityMid, []string{"mid-level", "intermediate", "engineer ii", "developer ii"}},
}

// SeniorityFromText returns the band implied by an explicit keyword in text
// and whether any keyword was found at all.
func SeniorityFromText(text string) (Seniority, bool) {
	lower := strings.ToLower(text)
	for _, probe := range seniorityProbes {
		for _, kw := range probe.keywords {
			if strings.Contains(lower, kw) {
				return probe.band, true
			}
		}
	}
	return SeniorityMid, false
}

// SeniorityFromYears maps experience years onto a band. Used only when no
// explicit keyword was found.
func SeniorityFromYears(years float64) Seniority {
	switch {
	case years < 2:
		return SeniorityJunior
	case years < 5:
		return SeniorityMid
	case years < 8:
		return SenioritySenior
	default:
		return SeniorityStaffPlus
	}
}

// roleFamilies maps a role family name to its signal keywords.
var roleFamilies = map[string][]string{
	"software engineer": {"software", "developer", "engineer", "backend", "frontend", "full stack", "coding"},
	"data scientist":    {"data scientist", "machine learning", "analytics", "data analyst", "statistician"},
	"product manager":   {"product manager", "product owner", "roadmap", "product strategy"},
	"designer":          {"designer", "ui", "ux", "creative", "graphic"},
	"marketing":         {"marketing", "brand", "content", "growth", "seo"},
	"sales":             {"sales", "business development", "account executive", "revenue"},
	"finance":           {"finance", "accounting", "investment", "banking", "fp&a"},
	"consulting":        {"consultant", "consulting", "advisory"},
	"operations":        {"operations", "logistics", "supply chain"},
	"hr":                {"human resources", "recruiter", "talent", "people operations"},
}

// RoleFamily scores each family's keywords against text and returns the best
// match, or "general" when nothing fires. Ties break alphabetically so the
// result is stable.
func RoleFamily(text string) string {
	lower := strings.ToLower(text)

	best, bestScore := "general", 0
	for family, keywords := range roleFamilies {
		score := 0
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				score++
			}
		}
		if score > bestScore || (score == bestScore && score > 0 && family < best) {
			best, bestScore = family, score
		}
	}
	return best
}
