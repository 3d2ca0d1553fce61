package match

import (
	"math"
	"sort"

	"github.com/resumi/job-discovery/internal/job"
	"github.com/resumi/job-discovery/internal/profile"
	"github.com/resumi/job-discovery/internal/taxonomy"
)

// documentFrequencies counts, per skill token, how many jobs in the batch
// require it. Feeding the counts into the IDF term down-weights skills every
// posting asks for.
func documentFrequencies(jobs []job.Job) map[string]float64 {
	df := make(map[string]float64)
	for _, j := range jobs {
		for _, s := range j.Skills {
			df[s]++
		}
	}

	n := float64(len(jobs))
	idf := make(map[string]float64, len(df))
	for term, count := range df {
		idf[term] = math.Log(1 + n/(1+count))
	}
	return idf
}

// jobVector weights each of the job's skill tokens by term frequency in the
// description text times inverse document frequency over the batch.
func jobVector(j job.Job, idf map[string]float64) map[string]float64 {
	counts := make(map[string]float64)
	for _, tok := range taxonomy.Tokenize(j.Description) {
		counts[taxonomy.Canonical(tok)]++
	}

	vec := make(map[string]float64, len(j.Skills))
	for _, s := range j.Skills {
		tf := counts[s]
		if tf == 0 {
			tf = 1 // skill seen in the title only
		}
		weight := idf[s]
		if weight == 0 {
			weight = 1
		}
		vec[s] = tf * weight
	}
	return vec
}

// profileVector is the candidate's skill/tool set with unit weights.
func profileVector(p *profile.Profile) map[string]float64 {
	vec := make(map[string]float64)
	for _, s := range p.AllSkills() {
		vec[taxonomy.Canonical(s)] = 1
	}
	return vec
}

// cosineSimilarity computes the cosine between two sparse vectors. Terms are
// visited in sorted order so float accumulation is reproducible.
func cosineSimilarity(a, b map[string]float64) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	terms := make([]string, 0, len(a)+len(b))
	seen := make(map[string]bool, len(a)+len(b))
	for t := range a {
		terms = append(terms, t)
		seen[t] = true
	}
	for t := range b {
		if !seen[t] {
			terms = append(terms, t)
		}
	}
	sort.Strings(terms)

	var dot, normA, normB float64
	for _, t := range terms {
		av, bv := a[t], b[t]
		dot += av * bv
		normA += av * av
		normB += bv * bv
	}

	if dot == 0 || normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
