package source

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const defaultLeverURL = "https://api.lever.co"

// Lever collects postings from public Lever board APIs, one company per page.
type Lever struct {
	fetcher
	baseURL   string
	companies []string
}

func NewLever(companies []string, baseURL string, deps Deps) *Lever {
	if baseURL == "" {
		baseURL = defaultLeverURL
	}
	return &Lever{
		fetcher:   newFetcher("lever", baseURL, time.Second, deps),
		baseURL:   baseURL,
		companies: companies,
	}
}

func (l *Lever) Name() string            { return "lever" }
func (l *Lever) Domain() string          { return l.domain }
func (l *Lever) Interval() time.Duration { return l.interval }

func (l *Lever) Fetch(ctx context.Context, pageToken string) ([]RawPosting, string, error) {
	idx, err := pageIndex(pageToken, len(l.companies))
	if err != nil {
		return nil, "", err
	}
	if idx < 0 {
		return nil, "", nil
	}

	company := l.companies[idx]
	boardURL := fmt.Sprintf("%s/v0/postings/%s?mode=json", l.baseURL, company)

	body, err := l.get(ctx, boardURL)
	if err != nil {
		return nil, "", fmt.Errorf("lever board %s: %w", company, err)
	}

	var items []map[string]any
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, "", fmt.Errorf("lever board %s: decode: %w", company, err)
	}

	now := time.Now().UTC()
	postings := make([]RawPosting, 0, len(items))
	for _, fields := range items {
		if fields == nil {
			continue
		}
		fields["company"] = company
		postings = append(postings, RawPosting{
			Source:      l.Name(),
			Fields:      fields,
			CollectedAt: now,
		})
	}

	l.logger.Debug("collected board",
		zap.String("source", l.Name()),
		zap.String("company", company),
		zap.Int("postings", len(postings)),
	)

	return postings, nextToken(idx, len(l.companies)), nil
}
