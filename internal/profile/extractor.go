package profile

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/resumi/job-discovery/internal/taxonomy"
)

const minResumeLength = 10

var (
	experienceRe = regexp.MustCompile(`(\d{1,2})\+?\s*(?:years?|yrs?)\s+(?:of\s+)?experience`)
	looseYearsRe = regexp.MustCompile(`(\d{1,2})\+?\s*(?:years?|yrs?)`)
)

// Extractor builds Profiles from resume text. Clusterer is optional; when nil
// the static taxonomy clusters are used, which keeps extraction fully
// deterministic.
type Extractor struct {
	logger    *zap.Logger
	clusterer Clusterer
}

// Clusterer groups related skills into named clusters. Implemented by the
// gemini provider; the static taxonomy mapping is the fallback.
type Clusterer interface {
	Cluster(skills []string) ([]string, error)
}

func NewExtractor(logger *zap.Logger, clusterer Clusterer) *Extractor {
	return &Extractor{logger: logger, clusterer: clusterer}
}

// Extract produces a Profile from resume text or a *ParseError when the text
// carries no usable skill signal.
func (e *Extractor) Extract(text string) (*Profile, error) {
	if len(strings.TrimSpace(text)) < minResumeLength {
		return nil, &ParseError{Reason: "resume text is empty or too short"}
	}

	all := taxonomy.ExtractSkills(text)
	if len(all) == 0 {
		return nil, &ParseError{Reason: "no recognizable skills found"}
	}

	skills, tools := splitSkillsAndTools(all)

	years := extractExperienceYears(text)
	seniority := resolveSeniority(text, years)

	prof := &Profile{
		ID:               fingerprint(text),
		PrimaryRole:      taxonomy.RoleFamily(text),
		Seniority:        seniority,
		SeniorityName:    seniority.String(),
		Skills:           skills,
		Tools:            tools,
		ExperienceYears:  years,
		Education:        extractEducation(text),
		LocationMentions: extractLocationMentions(text),
		SkillClusters:    e.clusters(all),
	}

	e.logger.Debug("extracted profile",
		zap.String("profile_id", prof.ID),
		zap.String("primary_role", prof.PrimaryRole),
		zap.String("seniority", prof.SeniorityName),
		zap.Int("skills", len(prof.Skills)),
		zap.Int("tools", len(prof.Tools)),
		zap.Float64("experience_years", prof.ExperienceYears),
	)

	return prof, nil
}

func (e *Extractor) clusters(skills []string) []string {
	if e.clusterer != nil {
		clusters, err := e.clusterer.Cluster(skills)
		if err == nil && len(clusters) > 0 {
			sort.Strings(clusters)
			return clusters
		}
		if err != nil {
			e.logger.Warn("semantic clustering failed, using static clusters", zap.Error(err))
		}
	}
	return taxonomy.Clusters(skills)
}

// splitSkillsAndTools keeps the two sets disjoint: anything the taxonomy
// classifies as a tool leaves the skill set.
func splitSkillsAndTools(all []string) (skills, tools []string) {
	for _, s := range all {
		if taxonomy.IsTool(s) {
			tools = append(tools, s)
		} else {
			skills = append(skills, s)
		}
	}
	return skills, tools
}

// resolveSeniority applies the band rules: an explicit keyword always wins,
// even when it disagrees with the year heuristic by more than one band. Years
// are only consulted when the text names no band at all.
func resolveSeniority(text string, years float64) taxonomy.Seniority {
	if band, found := taxonomy.SeniorityFromText(text); found {
		return band
	}
	return taxonomy.SeniorityFromYears(years)
}

func extractExperienceYears(text string) float64 {
	lower := strings.ToLower(text)

	// Prefer the strict "N years of experience" form; fall back to any
	// "N years" mention.
	best := 0
	for _, re := range []*regexp.Regexp{experienceRe, looseYearsRe} {
		for _, m := range re.FindAllStringSubmatch(lower, -1) {
			if n, err := strconv.Atoi(m[1]); err == nil && n > best && n < 50 {
				best = n
			}
		}
		if best > 0 {
			break
		}
	}
	return float64(best)
}

func extractEducation(text string) []string {
	lower := strings.ToLower(text)

	var out []string
	if strings.Contains(lower, "phd") || strings.Contains(lower, "doctorate") {
		out = append(out, "PhD")
	}
	if strings.Contains(lower, "master") || strings.Contains(lower, "mba") || strings.Contains(lower, "m.s.") {
		out = append(out, "Master's")
	}
	if strings.Contains(lower, "bachelor") || strings.Contains(lower, "b.s.") || strings.Contains(lower, "b.tech") {
		out = append(out, "Bachelor's")
	}
	return out
}

// knownPlaces are the location strings scanned for in resume text. Resumes
// rarely spell locations predictably, so this stays a curated list rather
// than NER output.
var knownPlaces = []string{
	"San Francisco", "New York", "Seattle", "Austin", "Boston", "Toronto",
	"London", "Berlin", "Amsterdam", "Paris", "Dublin",
	"Bangalore", "Bengaluru", "Mumbai", "Delhi", "Hyderabad", "Pune", "Chennai",
	"Dubai", "Singapore", "Sydney", "Remote",
}

func extractLocationMentions(text string) []string {
	lower := strings.ToLower(text)

	seen := make(map[string]bool)
	var out []string
	for _, place := range knownPlaces {
		if strings.Contains(lower, strings.ToLower(place)) && !seen[place] {
			seen[place] = true
			out = append(out, place)
		}
	}
	return out
}

// fingerprint derives a stable profile id from the resume text itself, so the
// same resume always maps to the same Profile identity.
func fingerprint(text string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(text)))
	return hex.EncodeToString(sum[:8])
}
