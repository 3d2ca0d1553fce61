package source

import (
	"context"
	"net/url"
	"sync"

	"github.com/go-resty/resty/v2"
	"github.com/temoto/robotstxt"
	"go.uber.org/zap"
)

// Robots caches per-domain robots.txt verdicts. The first request to a domain
// fetches and parses its robots.txt; concurrent requests to the same domain
// queue behind that fetch while other domains proceed independently. A domain
// whose robots.txt cannot be fetched is treated as allowing everything.
type Robots struct {
	agent  string
	http   *resty.Client
	logger *zap.Logger

	mu      sync.Mutex
	domains map[string]*robotsEntry
}

type robotsEntry struct {
	once sync.Once
	data *robotstxt.RobotsData // nil means allow all
}

func NewRobots(agent string, http *resty.Client, logger *zap.Logger) *Robots {
	return &Robots{
		agent:   agent,
		http:    http,
		logger:  logger,
		domains: make(map[string]*robotsEntry),
	}
}

// Allowed reports whether the agent may fetch rawURL under the URL's domain
// policy. Unparseable URLs are allowed through; the fetch itself will fail
// with a more useful error.
func (r *Robots) Allowed(ctx context.Context, rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return true
	}

	entry := r.entry(parsed.Host)
	entry.once.Do(func() {
		entry.data = r.fetch(ctx, parsed.Scheme, parsed.Host)
	})

	if entry.data == nil {
		return true
	}

	return entry.data.FindGroup(r.agent).Test(parsed.Path)
}

func (r *Robots) entry(host string) *robotsEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.domains[host]
	if !ok {
		e = &robotsEntry{}
		r.domains[host] = e
	}
	return e
}

func (r *Robots) fetch(ctx context.Context, scheme, host string) *robotstxt.RobotsData {
	if scheme == "" {
		scheme = "https"
	}
	robotsURL := scheme + "://" + host + "/robots.txt"

	resp, err := r.http.R().SetContext(ctx).Get(robotsURL)
	if err != nil {
		r.logger.Debug("robots.txt fetch failed, allowing by default",
			zap.String("domain", host),
			zap.Error(err),
		)
		return nil
	}

	data, err := robotstxt.FromStatusAndBytes(resp.StatusCode(), resp.Body())
	if err != nil {
		r.logger.Debug("robots.txt parse failed, allowing by default",
			zap.String("domain", host),
			zap.Error(err),
		)
		return nil
	}

	return data
}
