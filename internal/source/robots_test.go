package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const robotsBody = `User-agent: *
Disallow: /private/
Allow: /
`

func TestAllowedFollowsPolicy(t *testing.T) {
	var fetches atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/robots.txt", r.URL.Path)
		fetches.Add(1)
		w.Write([]byte(robotsBody)) //nolint:errcheck
	}))
	defer srv.Close()

	robots := NewRobots(userAgent, NewHTTPClient(), zap.NewNop())
	ctx := context.Background()

	require.True(t, robots.Allowed(ctx, srv.URL+"/jobs"))
	require.False(t, robots.Allowed(ctx, srv.URL+"/private/listings"))
	require.True(t, robots.Allowed(ctx, srv.URL+"/jobs?page=2"))

	// One robots.txt fetch per domain, cached afterwards.
	require.Equal(t, int32(1), fetches.Load())
}

func TestAllowedWhenRobotsMissing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	robots := NewRobots(userAgent, NewHTTPClient(), zap.NewNop())
	require.True(t, robots.Allowed(context.Background(), srv.URL+"/anything"))
}

func TestAllowedWhenFetchFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	url := srv.URL
	srv.Close()

	robots := NewRobots(userAgent, NewHTTPClient(), zap.NewNop())
	require.True(t, robots.Allowed(context.Background(), url+"/jobs"))
}

func TestAllowedUnparseableURL(t *testing.T) {
	robots := NewRobots(userAgent, NewHTTPClient(), zap.NewNop())
	require.True(t, robots.Allowed(context.Background(), "::not-a-url"))
}
