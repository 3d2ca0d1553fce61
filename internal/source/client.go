package source

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	userAgent      = "resumi/job-discovery (job recommendation engine)"
	requestTimeout = 15 * time.Second
	maxRetries     = 2 // 3 attempts total
	retryWait      = 500 * time.Millisecond
	retryMaxWait   = 5 * time.Second
)

// NewHTTPClient builds the resty client shared by collectors: bounded retry
// with backoff on transport errors and 5xx, nothing else.
func NewHTTPClient() *resty.Client {
	return resty.New().
		SetTimeout(requestTimeout).
		SetHeader("User-Agent", userAgent).
		SetRetryCount(maxRetries).
		SetRetryWaitTime(retryWait).
		SetRetryMaxWaitTime(retryMaxWait).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return r.StatusCode() >= http.StatusInternalServerError
		})
}

// fetcher bundles the policy machinery every collector shares: robots check
// before the request, interval wait, then the HTTP call itself.
type fetcher struct {
	name     string
	domain   string
	interval time.Duration
	http     *resty.Client
	limits   *Limiters
	robots   *Robots
	logger   *zap.Logger
}

// get performs a policy-checked GET and returns the response body. Returns
// ErrPolicySkip when the domain's robots policy disallows the URL.
func (f *fetcher) get(ctx context.Context, url string) ([]byte, error) {
	return f.do(ctx, url, func() (*resty.Response, error) {
		return f.http.R().SetContext(ctx).Get(url)
	})
}

// postJSON performs a policy-checked POST with a JSON body.
func (f *fetcher) postJSON(ctx context.Context, url string, body any) ([]byte, error) {
	return f.do(ctx, url, func() (*resty.Response, error) {
		return f.http.R().
			SetContext(ctx).
			SetHeader("Content-Type", "application/json").
			SetBody(body).
			Post(url)
	})
}

func (f *fetcher) do(ctx context.Context, url string, send func() (*resty.Response, error)) ([]byte, error) {
	if !f.robots.Allowed(ctx, url) {
		return nil, fmt.Errorf("%w: %s", ErrPolicySkip, url)
	}

	if err := f.limits.Wait(ctx, f.domain, f.interval); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	f.logger.Debug("fetching", zap.String("source", f.name), zap.String("url", url))

	resp, err := send()
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", url, err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("request %s: bad status %s", url, resp.Status())
	}

	return resp.Body(), nil
}
