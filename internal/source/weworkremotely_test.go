package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

const wwrFixture = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Remote Programming Jobs</title>
    <item>
      <title>Acme Corp: Senior Go Developer</title>
      <link>https://weworkremotely.example.com/jobs/1</link>
      <description>Build backend services in Go.</description>
      <pubDate>Mon, 02 Mar 2026 10:00:00 +0000</pubDate>
      <region>Anywhere in the World</region>
    </item>
    <item>
      <title>Untitled listing</title>
      <link>https://weworkremotely.example.com/jobs/2</link>
      <description>No company prefix.</description>
      <pubDate>Tue, 03 Mar 2026 10:00:00 +0000</pubDate>
      <region>USA Only</region>
    </item>
  </channel>
</rss>`

func TestWeWorkRemotelyFetchParsesFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/robots.txt":
			w.Write([]byte("User-agent: *\nAllow: /\n")) //nolint:errcheck
		case "/categories/remote-programming-jobs.rss":
			w.Write([]byte(wwrFixture)) //nolint:errcheck
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewWeWorkRemotely([]string{"/categories/remote-programming-jobs.rss"}, srv.URL, testDeps())

	postings, next, err := c.Fetch(context.Background(), "")
	require.NoError(t, err)
	require.Empty(t, next)
	require.Len(t, postings, 2)

	require.Equal(t, "weworkremotely", postings[0].Source)
	require.Equal(t, "Acme Corp", postings[0].Fields["company"])
	require.Equal(t, "Senior Go Developer", postings[0].Fields["title"])
	require.Equal(t, "Anywhere in the World", postings[0].Fields["region"])

	// Items without the "Company: Title" prefix keep an empty company.
	require.Equal(t, "", postings[1].Fields["company"])
	require.Equal(t, "Untitled listing", postings[1].Fields["title"])
}

func TestSplitWWRTitle(t *testing.T) {
	cases := []struct {
		in      string
		company string
		title   string
	}{
		{"Acme: Senior Engineer", "Acme", "Senior Engineer"},
		{"Acme: Platform: Lead", "Acme", "Platform: Lead"},
		{"No separator here", "", "No separator here"},
		{": Leading separator", "", ": Leading separator"},
	}

	for _, tc := range cases {
		company, title := splitWWRTitle(tc.in)
		require.Equal(t, tc.company, company, tc.in)
		require.Equal(t, tc.title, title, tc.in)
	}
}
