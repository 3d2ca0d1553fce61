package source

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultWWRURL = "https://weworkremotely.com"

// Default category feeds scanned when none are configured.
var defaultWWRFeeds = []string{
	"/categories/remote-programming-jobs.rss",
	"/categories/remote-devops-sysadmin-jobs.rss",
}

// WeWorkRemotely collects postings from the WWR RSS category feeds, one feed
// per page.
type WeWorkRemotely struct {
	fetcher
	baseURL string
	feeds   []string
}

func NewWeWorkRemotely(feeds []string, baseURL string, deps Deps) *WeWorkRemotely {
	if baseURL == "" {
		baseURL = defaultWWRURL
	}
	if len(feeds) == 0 {
		feeds = defaultWWRFeeds
	}
	return &WeWorkRemotely{
		fetcher: newFetcher("weworkremotely", baseURL, time.Second, deps),
		baseURL: baseURL,
		feeds:   feeds,
	}
}

func (w *WeWorkRemotely) Name() string            { return "weworkremotely" }
func (w *WeWorkRemotely) Domain() string          { return w.domain }
func (w *WeWorkRemotely) Interval() time.Duration { return w.interval }

type wwrFeed struct {
	Channel struct {
		Items []wwrItem `xml:"item"`
	} `xml:"channel"`
}

type wwrItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
	Region      string `xml:"region"`
}

func (w *WeWorkRemotely) Fetch(ctx context.Context, pageToken string) ([]RawPosting, string, error) {
	idx, err := pageIndex(pageToken, len(w.feeds))
	if err != nil {
		return nil, "", err
	}
	if idx < 0 {
		return nil, "", nil
	}

	feedPath := w.feeds[idx]
	body, err := w.get(ctx, w.baseURL+feedPath)
	if err != nil {
		return nil, "", fmt.Errorf("wwr feed %s: %w", feedPath, err)
	}

	var feed wwrFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, "", fmt.Errorf("wwr feed %s: decode: %w", feedPath, err)
	}

	now := time.Now().UTC()
	postings := make([]RawPosting, 0, len(feed.Channel.Items))
	for _, item := range feed.Channel.Items {
		company, title := splitWWRTitle(item.Title)
		postings = append(postings, RawPosting{
			Source: w.Name(),
			Fields: map[string]any{
				"title":       title,
				"company":     company,
				"link":        item.Link,
				"description": item.Description,
				"pub_date":    item.PubDate,
				"region":      item.Region,
			},
			CollectedAt: now,
		})
	}

	w.logger.Debug("collected feed",
		zap.String("source", w.Name()),
		zap.String("feed", feedPath),
		zap.Int("postings", len(postings)),
	)

	return postings, nextToken(idx, len(w.feeds)), nil
}

// splitWWRTitle splits the feed's "Company: Job Title" convention. Titles
// without the separator keep the company empty.
func splitWWRTitle(s string) (company, title string) {
	if i := strings.Index(s, ": "); i > 0 {
		return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+2:])
	}
	return "", strings.TrimSpace(s)
}
