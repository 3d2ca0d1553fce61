// Package job defines the canonical posting entity and the per-source
// adapters that map raw postings into it.
package job

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/resumi/job-discovery/internal/location"
	"github.com/resumi/job-discovery/internal/taxonomy"
)

// Source identifies the external board a Job came from.
type Source string

const (
	SourceGreenhouse     Source = "greenhouse"
	SourceLever          Source = "lever"
	SourceWorkday        Source = "workday"
	SourceRemoteOK       Source = "remoteok"
	SourceWeWorkRemotely Source = "weworkremotely"
)

// MaxDescriptionBytes caps stored description text.
const MaxDescriptionBytes = 10 * 1024

// Job is the canonical, source-agnostic posting. Its ID is stable across
// re-collection runs within the cache window; a refreshed posting with the
// same ID replaces the prior record entirely.
type Job struct {
	ID              string             `json:"id"`
	Title           string             `json:"title"`
	Company         string             `json:"company"`
	Location        location.Location  `json:"location"`
	Source          Source             `json:"source"`
	ApplyURL        string             `json:"apply_url"`
	Description     string             `json:"description"`
	Skills          []string           `json:"skills"`
	SeniorityTarget taxonomy.Seniority `json:"seniority_target"`
	PostedAt        time.Time          `json:"posted_at"`
	CollectedAt     time.Time          `json:"collected_at"`
}

// NewID derives the stable job id from the source plus the source-native id,
// falling back to the apply URL when the source has no native id.
func NewID(source Source, nativeID, applyURL string) string {
	key := nativeID
	if strings.TrimSpace(key) == "" {
		key = applyURL
	}
	sum := sha256.Sum256([]byte(string(source) + "|" + key))
	return hex.EncodeToString(sum[:8])
}

// TruncateDescription cuts text down to MaxDescriptionBytes at a token
// boundary, never mid-word and never inside a UTF-8 sequence.
func TruncateDescription(s string) string {
	if len(s) <= MaxDescriptionBytes {
		return s
	}

	cut := MaxDescriptionBytes
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}

	truncated := s[:cut]
	if idx := strings.LastIndexAny(truncated, " \t\n"); idx > 0 {
		truncated = truncated[:idx]
	}
	return strings.TrimRight(truncated, " \t\n")
}
