package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const defaultGreenhouseURL = "https://boards-api.greenhouse.io"

// Deps bundles the shared machinery handed to every collector.
type Deps struct {
	HTTP   *resty.Client
	Limits *Limiters
	Robots *Robots
	Logger *zap.Logger
}

// Greenhouse collects postings from public Greenhouse board APIs, one company
// board per page.
type Greenhouse struct {
	fetcher
	baseURL   string
	companies []string
}

func NewGreenhouse(companies []string, baseURL string, deps Deps) *Greenhouse {
	if baseURL == "" {
		baseURL = defaultGreenhouseURL
	}
	return &Greenhouse{
		fetcher:   newFetcher("greenhouse", baseURL, time.Second, deps),
		baseURL:   baseURL,
		companies: companies,
	}
}

func (g *Greenhouse) Name() string            { return "greenhouse" }
func (g *Greenhouse) Domain() string          { return g.domain }
func (g *Greenhouse) Interval() time.Duration { return g.interval }

func (g *Greenhouse) Fetch(ctx context.Context, pageToken string) ([]RawPosting, string, error) {
	idx, err := pageIndex(pageToken, len(g.companies))
	if err != nil {
		return nil, "", err
	}
	if idx < 0 {
		return nil, "", nil
	}

	company := g.companies[idx]
	boardURL := fmt.Sprintf("%s/v1/boards/%s/jobs?content=true", g.baseURL, company)

	body, err := g.get(ctx, boardURL)
	if err != nil {
		return nil, "", fmt.Errorf("greenhouse board %s: %w", company, err)
	}

	var payload struct {
		Jobs []map[string]any `json:"jobs"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, "", fmt.Errorf("greenhouse board %s: decode: %w", company, err)
	}

	now := time.Now().UTC()
	postings := make([]RawPosting, 0, len(payload.Jobs))
	for _, fields := range payload.Jobs {
		// Boards occasionally serve null array elements.
		if fields == nil {
			continue
		}
		fields["company"] = company
		postings = append(postings, RawPosting{
			Source:      g.Name(),
			Fields:      fields,
			CollectedAt: now,
		})
	}

	g.logger.Debug("collected board",
		zap.String("source", g.Name()),
		zap.String("company", company),
		zap.Int("postings", len(postings)),
	)

	return postings, nextToken(idx, len(g.companies)), nil
}

func newFetcher(name, baseURL string, interval time.Duration, deps Deps) fetcher {
	domain := name
	if u, err := url.Parse(baseURL); err == nil && u.Host != "" {
		domain = u.Host
	}
	return fetcher{
		name:     name,
		domain:   domain,
		interval: interval,
		http:     deps.HTTP,
		limits:   deps.Limits,
		robots:   deps.Robots,
		logger:   deps.Logger,
	}
}

// pageIndex decodes a page token into a list index. Returns -1 when the list
// is empty.
func pageIndex(token string, size int) (int, error) {
	if size == 0 {
		return -1, nil
	}
	if token == "" {
		return 0, nil
	}
	idx, err := strconv.Atoi(token)
	if err != nil || idx < 0 || idx >= size {
		return 0, fmt.Errorf("invalid page token %q", token)
	}
	return idx, nil
}

func nextToken(idx, size int) string {
	if idx+1 >= size {
		return ""
	}
	return strconv.Itoa(idx + 1)
}
