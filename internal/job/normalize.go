package job

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/resumi/job-discovery/internal/location"
	"github.com/resumi/job-discovery/internal/source"
	"github.com/resumi/job-discovery/internal/taxonomy"
)

// Adapter maps one source's raw postings into canonical Jobs. A false second
// return drops the posting (missing mandatory fields); dropping is not an
// error.
type Adapter interface {
	Source() Source
	Normalize(rp source.RawPosting) (*Job, bool)
}

// Normalizer runs the registered adapters over a raw batch and deduplicates
// by canonical id, keeping the most recently collected version.
type Normalizer struct {
	adapters map[string]Adapter
	logger   *zap.Logger
}

func NewNormalizer(logger *zap.Logger) *Normalizer {
	n := &Normalizer{
		adapters: make(map[string]Adapter),
		logger:   logger,
	}
	for _, a := range []Adapter{
		greenhouseAdapter{}, leverAdapter{}, remoteOKAdapter{},
		wwrAdapter{}, workdayAdapter{},
	} {
		n.adapters[string(a.Source())] = a
	}
	return n
}

// NormalizeAll maps and deduplicates a raw batch. The result is sorted by id
// so downstream processing is independent of collector completion order.
func (n *Normalizer) NormalizeAll(raws []source.RawPosting) []Job {
	byID := make(map[string]Job)
	dropped := 0

	for _, rp := range raws {
		adapter, ok := n.adapters[rp.Source]
		if !ok {
			n.logger.Warn("no adapter for source", zap.String("source", rp.Source))
			continue
		}

		j, ok := adapter.Normalize(rp)
		if !ok {
			dropped++
			continue
		}

		if prev, exists := byID[j.ID]; exists && !j.CollectedAt.After(prev.CollectedAt) {
			continue
		}
		byID[j.ID] = *j
	}

	jobs := make([]Job, 0, len(byID))
	for _, j := range byID {
		jobs = append(jobs, j)
	}
	sort.Slice(jobs, func(i, k int) bool { return jobs[i].ID < jobs[k].ID })

	n.logger.Info("normalized postings",
		zap.Int("raw", len(raws)),
		zap.Int("jobs", len(jobs)),
		zap.Int("dropped", dropped),
	)

	return jobs
}

// finish fills the derived fields shared by every adapter.
func finish(j *Job, nativeID string, rp source.RawPosting) (*Job, bool) {
	if strings.TrimSpace(j.Title) == "" || strings.TrimSpace(j.Company) == "" || strings.TrimSpace(j.ApplyURL) == "" {
		return nil, false
	}

	j.ID = NewID(j.Source, nativeID, j.ApplyURL)
	j.Description = TruncateDescription(j.Description)
	j.Skills = taxonomy.ExtractSkills(j.Title + " " + j.Description)
	j.SeniorityTarget, _ = taxonomy.SeniorityFromText(j.Title)
	j.CollectedAt = rp.CollectedAt
	if j.PostedAt.IsZero() {
		j.PostedAt = rp.CollectedAt
	}
	return j, true
}

type greenhouseAdapter struct{}

func (greenhouseAdapter) Source() Source { return SourceGreenhouse }

func (greenhouseAdapter) Normalize(rp source.RawPosting) (*Job, bool) {
	var post struct {
		ID          string `mapstructure:"id"`
		Title       string `mapstructure:"title"`
		Company     string `mapstructure:"company"`
		Content     string `mapstructure:"content"`
		AbsoluteURL string `mapstructure:"absolute_url"`
		UpdatedAt   string `mapstructure:"updated_at"`
		Location    struct {
			Name string `mapstructure:"name"`
		} `mapstructure:"location"`
	}
	if err := decodeWeak(rp.Fields, &post); err != nil {
		return nil, false
	}

	j := &Job{
		Title:       post.Title,
		Company:     strings.Title(post.Company), //nolint:staticcheck // board slugs are ASCII
		Location:    location.Normalize(post.Location.Name),
		Source:      SourceGreenhouse,
		ApplyURL:    post.AbsoluteURL,
		Description: post.Content,
		PostedAt:    parseTime(post.UpdatedAt),
	}
	return finish(j, post.ID, rp)
}

type leverAdapter struct{}

func (leverAdapter) Source() Source { return SourceLever }

func (leverAdapter) Normalize(rp source.RawPosting) (*Job, bool) {
	var post struct {
		ID               string `mapstructure:"id"`
		Text             string `mapstructure:"text"`
		Company          string `mapstructure:"company"`
		HostedURL        string `mapstructure:"hostedUrl"`
		ApplyURL         string `mapstructure:"applyUrl"`
		DescriptionPlain string `mapstructure:"descriptionPlain"`
		CreatedAt        int64  `mapstructure:"createdAt"` // epoch millis
		Categories       struct {
			Location string `mapstructure:"location"`
		} `mapstructure:"categories"`
	}
	if err := decodeWeak(rp.Fields, &post); err != nil {
		return nil, false
	}

	applyURL := post.HostedURL
	if applyURL == "" {
		applyURL = post.ApplyURL
	}

	j := &Job{
		Title:       post.Text,
		Company:     strings.Title(post.Company), //nolint:staticcheck
		Location:    location.Normalize(post.Categories.Location),
		Source:      SourceLever,
		ApplyURL:    applyURL,
		Description: post.DescriptionPlain,
	}
	if post.CreatedAt > 0 {
		j.PostedAt = time.UnixMilli(post.CreatedAt).UTC()
	}
	return finish(j, post.ID, rp)
}

type remoteOKAdapter struct{}

func (remoteOKAdapter) Source() Source { return SourceRemoteOK }

func (remoteOKAdapter) Normalize(rp source.RawPosting) (*Job, bool) {
	var post struct {
		ID          string `mapstructure:"id"`
		Position    string `mapstructure:"position"`
		Company     string `mapstructure:"company"`
		Location    string `mapstructure:"location"`
		Description string `mapstructure:"description"`
		URL         string `mapstructure:"url"`
		Date        string `mapstructure:"date"`
	}
	if err := decodeWeak(rp.Fields, &post); err != nil {
		return nil, false
	}

	loc := location.Normalize(post.Location)
	// Everything on the board is remote even when a region is listed.
	loc.Type = location.TypeRemote

	j := &Job{
		Title:       post.Position,
		Company:     post.Company,
		Location:    loc,
		Source:      SourceRemoteOK,
		ApplyURL:    post.URL,
		Description: post.Description,
		PostedAt:    parseTime(post.Date),
	}
	return finish(j, post.ID, rp)
}

type wwrAdapter struct{}

func (wwrAdapter) Source() Source { return SourceWeWorkRemotely }

func (wwrAdapter) Normalize(rp source.RawPosting) (*Job, bool) {
	var post struct {
		Title       string `mapstructure:"title"`
		Company     string `mapstructure:"company"`
		Link        string `mapstructure:"link"`
		Description string `mapstructure:"description"`
		PubDate     string `mapstructure:"pub_date"`
		Region      string `mapstructure:"region"`
	}
	if err := decodeWeak(rp.Fields, &post); err != nil {
		return nil, false
	}

	loc := location.Normalize(post.Region)
	loc.Type = location.TypeRemote

	j := &Job{
		Title:       post.Title,
		Company:     post.Company,
		Location:    loc,
		Source:      SourceWeWorkRemotely,
		ApplyURL:    post.Link,
		Description: post.Description,
		PostedAt:    parseTime(post.PubDate),
	}
	return finish(j, post.Link, rp)
}

type workdayAdapter struct{}

func (workdayAdapter) Source() Source { return SourceWorkday }

// Workday list responses are deeply nested and vary by tenant; gjson paths
// are more robust here than struct decoding.
func (workdayAdapter) Normalize(rp source.RawPosting) (*Job, bool) {
	company, _ := rp.Fields["company"].(string)
	host, _ := rp.Fields["host"].(string)

	title := gjson.GetBytes(rp.Raw, "title").String()
	externalPath := gjson.GetBytes(rp.Raw, "externalPath").String()
	locText := gjson.GetBytes(rp.Raw, "locationsText").String()
	postedOn := gjson.GetBytes(rp.Raw, "postedOn").String()

	applyURL := ""
	if host != "" && externalPath != "" {
		applyURL = "https://" + host + externalPath
	}

	j := &Job{
		Title:       title,
		Company:     strings.Title(company), //nolint:staticcheck
		Location:    location.Normalize(locText),
		Source:      SourceWorkday,
		ApplyURL:    applyURL,
		Description: gjson.GetBytes(rp.Raw, "jobDescription").String(),
		PostedAt:    parseTime(postedOn),
	}

	nativeID := gjson.GetBytes(rp.Raw, "bulletFields.0").String()
	return finish(j, nativeID, rp)
}

// decodeWeak decodes a loose field map with weak typing so numeric ids a
// board serves as JSON numbers still land in string fields.
func decodeWeak(in map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("build decoder: %w", err)
	}
	return dec.Decode(in)
}

// parseTime accepts the handful of timestamp shapes the boards serve.
func parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}

	for _, layout := range []string{
		time.RFC3339,
		"2006-01-02T15:04:05-07:00",
		"2006-01-02 15:04:05",
		"2006-01-02",
		time.RFC1123Z,
		time.RFC1123,
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}

	// Epoch seconds.
	if n, err := strconv.ParseInt(s, 10, 64); err == nil && n > 0 {
		return time.Unix(n, 0).UTC()
	}

	return time.Time{}
}
