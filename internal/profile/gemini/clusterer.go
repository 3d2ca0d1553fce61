package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/resumi/job-discovery/internal/logger"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

//go:embed prompt.md
var promptTemplate string

const (
	defaultMaxLogLength = 200
	defaultTimeout      = 20 * time.Second
)

// Clusterer asks Gemini to group a profile's skills into named clusters. It
// satisfies the extractor's Clusterer interface; callers fall back to the
// static taxonomy when it errors.
type Clusterer struct {
	generator contentGenerator
	logger    *zap.Logger
	timeout   time.Duration
	maxLogLen int
}

func NewClusterer(generator contentGenerator, log *zap.Logger, timeout time.Duration) *Clusterer {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Clusterer{
		generator: generator,
		logger:    log,
		timeout:   timeout,
		maxLogLen: defaultMaxLogLength,
	}
}

// Cluster returns sorted, deduplicated cluster names for the given skills.
func (c *Clusterer) Cluster(skills []string) ([]string, error) {
	if len(skills) == 0 {
		return nil, nil
	}

	skillsJSON, err := json.Marshal(skills)
	if err != nil {
		return nil, fmt.Errorf("marshal skills payload: %w", err)
	}

	prompt := buildPrompt(string(skillsJSON))

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	c.logger.Debug("gemini cluster request",
		zap.Int("skills", len(skills)),
		zap.String("prompt_preview", logger.Truncate(prompt, c.maxLogLen)),
	)

	raw, err := c.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("gemini cluster response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.Truncate(raw, c.maxLogLen)),
	)

	return parseResponse(raw)
}

func buildPrompt(skillsJSON string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Skills:\n{{SKILLS_JSON}}\n\nJSON Response:"
	}
	return strings.ReplaceAll(template, "{{SKILLS_JSON}}", skillsJSON)
}

func parseResponse(raw string) ([]string, error) {
	cleaned := extractJSON(raw)

	var data struct {
		Clusters []string `json:"clusters"`
	}
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	seen := make(map[string]struct{}, len(data.Clusters))
	out := make([]string, 0, len(data.Clusters))
	for _, name := range data.Clusters {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
