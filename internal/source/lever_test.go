package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLeverFetchSkipsNullElements(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/robots.txt":
			w.Write([]byte("User-agent: *\nAllow: /\n")) //nolint:errcheck
		case "/v0/postings/acme":
			w.Write([]byte(`[null, {"id": "p1", "text": "Backend Engineer", "hostedUrl": "https://jobs.lever.co/acme/p1"}, null]`)) //nolint:errcheck
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewLever([]string{"acme"}, srv.URL, testDeps())

	postings, next, err := c.Fetch(context.Background(), "")
	require.NoError(t, err)
	require.Empty(t, next)
	require.Len(t, postings, 1)
	require.Equal(t, "lever", postings[0].Source)
	require.Equal(t, "acme", postings[0].Fields["company"])
	require.Equal(t, "Backend Engineer", postings[0].Fields["text"])
}
