// Package taxonomy holds the static skill dictionaries and keyword tables
// shared by profile extraction and job matching. Everything here is pure data
// plus deterministic lookups.
package taxonomy

import (
	"sort"
	"strings"
	"unicode"
)

// Technical skills recognized in resume and job text. Lowercased canonical
// forms; synonyms are folded by Canonical.
var technicalSkills = map[string]bool{
	// languages
	"python": true, "java": true, "javascript": true, "typescript": true,
	"c++": true, "c#": true, "ruby": true, "go": true, "golang": true,
	"rust": true, "php": true, "swift": true, "kotlin": true, "scala": true,
	"sql": true, "html": true, "css": true, "bash": true,

	// frameworks
	"react": true, "angular": true, "vue": true, "django": true, "flask": true,
	"fastapi": true, "spring": true, "express": true, "node.js": true,
	"rails": true, "laravel": true, "tensorflow": true, "pytorch": true,
	"pandas": true, "numpy": true, "scikit-learn": true,

	// databases
	"postgresql": true, "postgres": true, "mysql": true, "mongodb": true,
	"redis": true, "elasticsearch": true, "cassandra": true, "dynamodb": true,
	"sqlite": true, "snowflake": true, "redshift": true, "bigquery": true,

	// cloud and infrastructure
	"aws": true, "azure": true, "gcp": true, "docker": true,
	"kubernetes": true, "k8s": true, "terraform": true, "ansible": true,
	"jenkins": true, "linux": true, "ci/cd": true,

	// data
	"spark": true, "hadoop": true, "kafka": true, "airflow": true,
	"tableau": true, "dbt": true, "machine learning": true,
	"deep learning": true, "nlp": true, "computer vision": true,

	// other
	"git": true, "graphql": true, "microservices": true, "grpc": true,
	"rest api": true, "oauth": true, "selenium": true, "cypress": true,
}

var businessSkills = map[string]bool{
	"financial modeling": true, "financial analysis": true, "valuation": true,
	"excel": true, "accounting": true, "budgeting": true, "forecasting": true,
	"fp&a": true, "investment banking": true, "private equity": true,

	"market research": true, "brand strategy": true, "digital marketing": true,
	"seo": true, "sem": true, "content marketing": true, "crm": true,
	"salesforce": true, "hubspot": true, "google analytics": true,

	"supply chain": true, "logistics": true, "operations management": true,
	"process improvement": true, "six sigma": true, "lean": true,
	"project management": true, "program management": true,
	"business strategy": true, "management consulting": true,

	"product management": true, "product strategy": true, "roadmap": true,
	"user research": true, "a/b testing": true, "wireframing": true,
	"figma": true, "agile": true, "scrum": true, "kanban": true,

	"stakeholder management": true, "negotiation": true, "powerpoint": true,
}

// Tools that belong to the tool set rather than the skill set. The two sets
// stay disjoint after extraction.
var tools = map[string]bool{
	"git": true, "docker": true, "kubernetes": true, "jenkins": true,
	"terraform": true, "jira": true, "figma": true, "excel": true,
	"powerpoint": true, "tableau": true, "salesforce": true, "hubspot": true,
}

// synonyms folds common spelling variants into one canonical token.
var synonyms = map[string]string{
	"golang":              "go",
	"k8s":                 "kubernetes",
	"postgres":            "postgresql",
	"nodejs":              "node.js",
	"node":                "node.js",
	"js":                  "javascript",
	"ts":                  "typescript",
	"sklearn":             "scikit-learn",
	"ml":                  "machine learning",
	"tf":                  "tensorflow",
	"amazon web services": "aws",
	"google cloud":        "gcp",
}

// clusterMembers groups skills into the coarse clusters used by matching
// explanations and profile summaries.
var clusterMembers = map[string][]string{
	"backend":  {"python", "java", "go", "node.js", "django", "flask", "fastapi", "spring", "rails", "microservices", "grpc", "rest api"},
	"frontend": {"react", "angular", "vue", "javascript", "typescript", "html", "css"},
	"cloud":    {"aws", "azure", "gcp", "docker", "kubernetes", "terraform", "ansible", "ci/cd"},
	"data":     {"sql", "postgresql", "mysql", "mongodb", "spark", "hadoop", "kafka", "airflow", "dbt", "snowflake", "bigquery"},
	"ml":       {"machine learning", "deep learning", "nlp", "computer vision", "tensorflow", "pytorch", "scikit-learn"},
	"business": {"financial modeling", "market research", "business strategy", "management consulting", "supply chain", "fp&a"},
	"product":  {"product management", "product strategy", "roadmap", "user research", "a/b testing"},
}

var stopWords = map[string]bool{
	"and": true, "the": true, "for": true, "with": true, "you": true,
	"are": true, "have": true, "will": true, "this": true, "that": true,
	"from": true, "our": true, "your": true, "their": true, "they": true,
	"work": true, "team": true, "role": true, "job": true, "join": true,
	"about": true, "which": true, "what": true, "who": true, "how": true,
	"can": true, "not": true, "but": true, "all": true, "also": true,
	"more": true, "than": true, "into": true, "has": true, "its": true,
	"was": true, "were": true, "been": true, "each": true, "new": true,
	"use": true, "using": true, "used": true, "well": true, "able": true,
}

// Canonical lowercases the token and folds known synonyms.
func Canonical(token string) string {
	t := strings.ToLower(strings.TrimSpace(token))
	if mapped, ok := synonyms[t]; ok {
		return mapped
	}
	return t
}

// IsSkill reports whether the canonical token belongs to either the technical
// or the business dictionary.
func IsSkill(token string) bool {
	t := Canonical(token)
	return technicalSkills[t] || businessSkills[t]
}

// IsTool reports whether the canonical token is classified as a tool.
func IsTool(token string) bool {
	return tools[Canonical(token)]
}

// ExtractSkills scans text for dictionary terms and returns the sorted set of
// canonical skills found. Multi-word terms are matched as substrings with word
// boundaries, single tokens via tokenization.
func ExtractSkills(text string) []string {
	lower := strings.ToLower(text)
	found := make(map[string]bool)

	tokens := Tokenize(text)
	for _, tok := range tokens {
		c := Canonical(tok)
		if technicalSkills[c] || businessSkills[c] {
			found[c] = true
		}
	}

	for skill := range technicalSkills {
		if strings.Contains(skill, " ") && containsTerm(lower, skill) {
			found[skill] = true
		}
	}
	for skill := range businessSkills {
		if strings.Contains(skill, " ") && containsTerm(lower, skill) {
			found[skill] = true
		}
	}

	out := make([]string, 0, len(found))
	for s := range found {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// containsTerm checks for term in text with word boundaries on both sides.
func containsTerm(text, term string) bool {
	idx := 0
	for {
		i := strings.Index(text[idx:], term)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(term)
		beforeOK := start == 0 || !isWordByte(text[start-1])
		afterOK := end == len(text) || !isWordByte(text[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

// Tokenize splits text into lowercase tokens, keeping + # . inside words so
// terms like c++, c# and node.js survive. Stop words and one-letter tokens
// are dropped, except for dictionary hits like "go" and "r".
func Tokenize(text string) []string {
	var out []string
	var word strings.Builder

	flush := func() {
		w := strings.TrimRight(word.String(), ".")
		word.Reset()
		if w == "" || stopWords[w] {
			return
		}
		if len([]rune(w)) < 2 && !technicalSkills[w] {
			return
		}
		out = append(out, w)
	}

	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.' || r == '/' || r == '&' {
			word.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()

	return out
}

// Clusters returns the sorted cluster names covered by the provided skills.
func Clusters(skills []string) []string {
	have := make(map[string]bool, len(skills))
	for _, s := range skills {
		have[Canonical(s)] = true
	}

	var clusters []string
	for name, members := range clusterMembers {
		for _, m := range members {
			if have[m] {
				clusters = append(clusters, name)
				break
			}
		}
	}
	sort.Strings(clusters)
	return clusters
}
