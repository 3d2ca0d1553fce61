package source

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const defaultRemoteOKURL = "https://remoteok.com"

// RemoteOK collects postings from the RemoteOK public API. The whole feed
// comes back in one response, so there is a single page.
type RemoteOK struct {
	fetcher
	baseURL string
}

func NewRemoteOK(baseURL string, deps Deps) *RemoteOK {
	if baseURL == "" {
		baseURL = defaultRemoteOKURL
	}
	return &RemoteOK{
		fetcher: newFetcher("remoteok", baseURL, time.Second, deps),
		baseURL: baseURL,
	}
}

func (r *RemoteOK) Name() string            { return "remoteok" }
func (r *RemoteOK) Domain() string          { return r.domain }
func (r *RemoteOK) Interval() time.Duration { return r.interval }

func (r *RemoteOK) Fetch(ctx context.Context, _ string) ([]RawPosting, string, error) {
	body, err := r.get(ctx, r.baseURL+"/api")
	if err != nil {
		return nil, "", fmt.Errorf("remoteok feed: %w", err)
	}

	var items []map[string]any
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, "", fmt.Errorf("remoteok feed: decode: %w", err)
	}

	// The first element is API metadata, not a posting.
	if len(items) > 0 {
		if _, isMeta := items[0]["legal"]; isMeta {
			items = items[1:]
		}
	}

	now := time.Now().UTC()
	postings := make([]RawPosting, 0, len(items))
	for _, fields := range items {
		if fields == nil {
			continue
		}
		postings = append(postings, RawPosting{
			Source:      r.Name(),
			Fields:      fields,
			CollectedAt: now,
		})
	}

	r.logger.Debug("collected feed",
		zap.String("source", r.Name()),
		zap.Int("postings", len(postings)),
	)

	return postings, "", nil
}
