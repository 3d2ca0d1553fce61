package source

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const workdayPageSize = 20

// WorkdayTenant identifies one company's Workday recruiting site.
type WorkdayTenant struct {
	Company string `mapstructure:"company"`
	Host    string `mapstructure:"host"` // e.g. acme.wd1.myworkdayjobs.com
	Site    string `mapstructure:"site"` // e.g. External
}

// Workday collects postings from Workday's cxs search endpoint, one tenant
// per page. Workday sites are slower and stricter, hence the longer interval.
type Workday struct {
	fetcher
	scheme  string
	tenants []WorkdayTenant
}

func NewWorkday(tenants []WorkdayTenant, deps Deps) *Workday {
	return &Workday{
		fetcher: fetcher{
			name:     "workday",
			domain:   "myworkdayjobs.com",
			interval: 2 * time.Second,
			http:     deps.HTTP,
			limits:   deps.Limits,
			robots:   deps.Robots,
			logger:   deps.Logger,
		},
		scheme:  "https",
		tenants: tenants,
	}
}

// SetScheme switches the request scheme; tests point tenants at a local
// httptest server over http.
func (w *Workday) SetScheme(scheme string) { w.scheme = scheme }

func (w *Workday) Name() string            { return "workday" }
func (w *Workday) Domain() string          { return w.domain }
func (w *Workday) Interval() time.Duration { return w.interval }

func (w *Workday) Fetch(ctx context.Context, pageToken string) ([]RawPosting, string, error) {
	idx, err := pageIndex(pageToken, len(w.tenants))
	if err != nil {
		return nil, "", err
	}
	if idx < 0 {
		return nil, "", nil
	}

	tenant := w.tenants[idx]
	searchURL := fmt.Sprintf("%s://%s/wday/cxs/%s/%s/jobs", w.scheme, tenant.Host, tenant.Company, tenant.Site)

	body, err := w.postJSON(ctx, searchURL, map[string]any{
		"limit":      workdayPageSize,
		"offset":     0,
		"searchText": "",
	})
	if err != nil {
		return nil, "", fmt.Errorf("workday tenant %s: %w", tenant.Company, err)
	}

	var payload struct {
		JobPostings []json.RawMessage `json:"jobPostings"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, "", fmt.Errorf("workday tenant %s: decode: %w", tenant.Company, err)
	}

	now := time.Now().UTC()
	postings := make([]RawPosting, 0, len(payload.JobPostings))
	for _, raw := range payload.JobPostings {
		postings = append(postings, RawPosting{
			Source: w.Name(),
			Fields: map[string]any{
				"company": tenant.Company,
				"host":    tenant.Host,
			},
			Raw:         raw,
			CollectedAt: now,
		})
	}

	w.logger.Debug("collected tenant",
		zap.String("source", w.Name()),
		zap.String("company", tenant.Company),
		zap.Int("postings", len(postings)),
	)

	return postings, nextToken(idx, len(w.tenants)), nil
}
