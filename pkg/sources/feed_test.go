package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newsbrief-hq/newsbrief/pkg/httpclient"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Example Feed</title>
    <link>http://news.example.com/</link>
    <item>
      <title>Feed headline number one arrives</title>
      <link>http://news.example.com/story/one</link>
    </item>
    <item>
      <title></title>
      <link>http://news.example.com/story/untitled</link>
    </item>
    <item>
      <title>Feed headline number two arrives</title>
      <link>http://news.example.com/story/two</link>
    </item>
  </channel>
</rss>`

func TestFeedStrategyParsesEntries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(sampleRSS)) //nolint:errcheck
	}))
	defer srv.Close()

	strat := NewFeedStrategy(httpclient.NewRestyClient(5 * time.Second))
	src := Source{Name: "feedsite", ContentURL: "http://news.example.com/", FeedURL: srv.URL + "/rss.xml"}

	headlines, err := strat.Fetch(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, headlines, 2, "entries missing required fields are skipped")

	assert.Equal(t, "Feed headline number one arrives", headlines[0].Title)
	assert.Equal(t, "http://news.example.com/story/one", headlines[0].Link)
}

func TestFeedStrategyAcceptsAny2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNonAuthoritativeInfo)
		w.Write([]byte(sampleRSS)) //nolint:errcheck
	}))
	defer srv.Close()

	strat := NewFeedStrategy(httpclient.NewRestyClient(5 * time.Second))
	headlines, err := strat.Fetch(context.Background(), Source{Name: "odd-status", FeedURL: srv.URL})
	require.NoError(t, err)
	assert.Len(t, headlines, 2)
}

func TestFeedStrategyMalformedXMLFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("this is not a feed")) //nolint:errcheck
	}))
	defer srv.Close()

	strat := NewFeedStrategy(httpclient.NewRestyClient(5 * time.Second))
	_, err := strat.Fetch(context.Background(), Source{Name: "bad", FeedURL: srv.URL})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}

func TestFeedStrategyNon2xxFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	strat := NewFeedStrategy(httpclient.NewRestyClient(5 * time.Second))
	_, err := strat.Fetch(context.Background(), Source{Name: "gone", FeedURL: srv.URL})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 410")
}

func TestFeedStrategyAppliesOnlyWithFeedURL(t *testing.T) {
	strat := NewFeedStrategy(nil)
	assert.False(t, strat.Applies(Source{ContentURL: "http://x"}))
	assert.True(t, strat.Applies(Source{FeedURL: "http://x/rss"}))
}

// End-to-end fallback: a source whose feed endpoint serves malformed
// XML must still produce headlines via the scrape path.
func TestFetcherFeedFallsBackToScrape(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/feed", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("<<< definitely not xml >>>")) //nolint:errcheck
	})
	mux.HandleFunc("/news", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`<html><body><h3><a href="/story/fallback-worked">Fallback scraping produced this headline</a></h3></body></html>`)) //nolint:errcheck
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := httpclient.NewRestyClient(5 * time.Second)
	f := NewFetcher(
		[]Strategy{NewFeedStrategy(client), NewScrapeStrategy(client)},
		DefaultLimits(),
		nil,
	)

	res := f.Fetch(context.Background(), Source{
		Name:       "x",
		ContentURL: srv.URL + "/news",
		Selector:   "h3 a",
		FeedURL:    srv.URL + "/feed",
	})

	assert.Empty(t, res.Error)
	require.Len(t, res.Headlines, 1)
	assert.Equal(t, "Fallback scraping produced this headline", res.Headlines[0].Title)
	assert.Equal(t, srv.URL+"/story/fallback-worked", res.Headlines[0].Link)
}
