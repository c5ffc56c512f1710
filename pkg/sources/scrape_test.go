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

const frontPageHTML = `<!DOCTYPE html>
<html><body>
<nav><a href="/home">Home</a></nav>
<h3 class="promo"><a href="/story/first-big-story">The first big story of the day</a></h3>
<h3 class="promo"><a href="https://elsewhere.example.com/abs">An absolute link to another domain</a></h3>
<h2 class="alt"><a href="/story/alternate-markup">Alternate markup headline entry</a></h2>
<h3 class="promo"><a href="/story/blank"></a></h3>
<span class="naked">A headline span with no anchor at all</span>
</body></html>`

func TestScrapeStrategyExtractsHeadlines(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("User-Agent"), "Mozilla/5.0")
		w.Write([]byte(frontPageHTML)) //nolint:errcheck
	}))
	defer srv.Close()

	strat := NewScrapeStrategy(httpclient.NewRestyClient(5 * time.Second))
	src := Source{
		Name:       "test site",
		ContentURL: srv.URL + "/front",
		Selector:   "h3.promo a, h2.alt a",
	}

	headlines, err := strat.Fetch(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, headlines, 3)

	assert.Equal(t, "The first big story of the day", headlines[0].Title)
	assert.Equal(t, srv.URL+"/story/first-big-story", headlines[0].Link, "relative links resolve against the content URL")
	assert.Equal(t, "https://elsewhere.example.com/abs", headlines[1].Link, "absolute links pass through")
	assert.Equal(t, srv.URL+"/story/alternate-markup", headlines[2].Link, "comma-joined selectors act as a union")
}

func TestScrapeStrategyDescendantAnchor(t *testing.T) {
	page := `<html><body><h3 class="wrap">Headline wrapped around anchor <a href="/story/nested">link</a></h3></body></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(page)) //nolint:errcheck
	}))
	defer srv.Close()

	strat := NewScrapeStrategy(httpclient.NewRestyClient(5 * time.Second))
	headlines, err := strat.Fetch(context.Background(), Source{
		Name:       "nested",
		ContentURL: srv.URL,
		Selector:   "h3.wrap",
	})
	require.NoError(t, err)
	require.Len(t, headlines, 1)
	assert.Equal(t, srv.URL+"/story/nested", headlines[0].Link)
}

func TestScrapeStrategyNon2xxFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	strat := NewScrapeStrategy(httpclient.NewRestyClient(5 * time.Second))
	_, err := strat.Fetch(context.Background(), Source{
		Name:       "blocked",
		ContentURL: srv.URL,
		Selector:   "h3 a",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
}

func TestScrapeStrategyAlwaysApplies(t *testing.T) {
	strat := NewScrapeStrategy(nil)
	assert.True(t, strat.Applies(Source{}))
}
