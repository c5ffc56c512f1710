package sources

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newsbrief-hq/newsbrief/internal/domain"
)

// stubStrategy is a canned Strategy for policy tests.
type stubStrategy struct {
	name      string
	applies   bool
	headlines []domain.Headline
	err       error
	calls     int
}

func (s *stubStrategy) Name() string        { return s.name }
func (s *stubStrategy) Applies(Source) bool { return s.applies }

func (s *stubStrategy) Fetch(context.Context, Source) ([]domain.Headline, error) {
	s.calls++
	return s.headlines, s.err
}

func goodHeadlines(n int) []domain.Headline {
	out := make([]domain.Headline, n)
	for i := range out {
		out[i] = domain.Headline{
			Title: fmt.Sprintf("A sufficiently long headline number %d", i),
			Link:  fmt.Sprintf("http://news.example.com/story-%d", i),
		}
	}
	return out
}

func TestFetchFirstStrategyWins(t *testing.T) {
	feed := &stubStrategy{name: "feed", applies: true, headlines: goodHeadlines(3)}
	scrape := &stubStrategy{name: "scrape", applies: true, headlines: goodHeadlines(5)}

	f := NewFetcher([]Strategy{feed, scrape}, DefaultLimits(), nil)
	res := f.Fetch(context.Background(), Source{Name: "site"})

	assert.Empty(t, res.Error)
	assert.Len(t, res.Headlines, 3)
	assert.Equal(t, 1, feed.calls)
	assert.Equal(t, 0, scrape.calls, "fallback must not run when the preferred strategy succeeds")
}

func TestFetchFallsBackOnError(t *testing.T) {
	feed := &stubStrategy{name: "feed", applies: true, err: errors.New("malformed xml")}
	scrape := &stubStrategy{name: "scrape", applies: true, headlines: goodHeadlines(2)}

	f := NewFetcher([]Strategy{feed, scrape}, DefaultLimits(), nil)
	res := f.Fetch(context.Background(), Source{Name: "site"})

	assert.Empty(t, res.Error)
	assert.Len(t, res.Headlines, 2)
	assert.Equal(t, 1, feed.calls)
	assert.Equal(t, 1, scrape.calls)
}

func TestFetchFallsBackOnEmptyResult(t *testing.T) {
	feed := &stubStrategy{name: "feed", applies: true, headlines: nil}
	scrape := &stubStrategy{name: "scrape", applies: true, headlines: goodHeadlines(1)}

	f := NewFetcher([]Strategy{feed, scrape}, DefaultLimits(), nil)
	res := f.Fetch(context.Background(), Source{Name: "site"})

	assert.Empty(t, res.Error)
	assert.Len(t, res.Headlines, 1)
	assert.Equal(t, 1, scrape.calls)
}

func TestFetchSkipsInapplicableStrategies(t *testing.T) {
	feed := &stubStrategy{name: "feed", applies: false, headlines: goodHeadlines(3)}
	scrape := &stubStrategy{name: "scrape", applies: true, headlines: goodHeadlines(1)}

	f := NewFetcher([]Strategy{feed, scrape}, DefaultLimits(), nil)
	res := f.Fetch(context.Background(), Source{Name: "site"})

	assert.Equal(t, 0, feed.calls)
	assert.Len(t, res.Headlines, 1)
	assert.Empty(t, res.Error)
}

func TestFetchAllStrategiesFail(t *testing.T) {
	feed := &stubStrategy{name: "feed", applies: true, err: errors.New("feed down")}
	scrape := &stubStrategy{name: "scrape", applies: true, err: errors.New("status 503")}

	f := NewFetcher([]Strategy{feed, scrape}, DefaultLimits(), nil)
	res := f.Fetch(context.Background(), Source{Name: "site"})

	assert.Empty(t, res.Headlines)
	assert.Contains(t, res.Error, "status 503")
}

func TestNormalize(t *testing.T) {
	raw := []domain.Headline{
		{Title: "  Spaced \t out\n headline   text ", Link: "http://x.example/a"},
		{Title: "short", Link: "http://x.example/b"},
		{Title: "A perfectly fine long headline", Link: ""},
		{Title: "Another perfectly fine headline", Link: "/relative/only"},
		{Title: "The one that makes it through", Link: "http://x.example/c"},
	}

	f := NewFetcher(nil, DefaultLimits(), nil)
	out := f.normalize(raw)

	require.Len(t, out, 2)
	assert.Equal(t, "Spaced out headline text", out[0].Title)
	assert.Equal(t, "The one that makes it through", out[1].Title)
}

func TestNormalizeDropsBlankTitles(t *testing.T) {
	// A zero minimum length must not let whitespace-only titles through.
	f := NewFetcher(nil, Limits{MaxHeadlines: 10, MinTitleLen: 0}, nil)
	out := f.normalize([]domain.Headline{
		{Title: " \t ", Link: "http://x.example/story"},
		{Title: "", Link: "http://x.example/other"},
		{Title: "x", Link: "http://x.example/short"},
	})

	require.Len(t, out, 1)
	assert.Equal(t, "x", out[0].Title)
}

func TestNormalizeAppliesCap(t *testing.T) {
	f := NewFetcher(nil, Limits{MaxHeadlines: 4, MinTitleLen: 10}, nil)
	out := f.normalize(goodHeadlines(20))
	assert.Len(t, out, 4)
}

func TestResolveURL(t *testing.T) {
	tests := []struct {
		raw  string
		base string
		want string
	}{
		{raw: "/story/1", base: "http://news.example.com/front", want: "http://news.example.com/story/1"},
		{raw: "http://other.example.com/x", base: "http://news.example.com/", want: "http://other.example.com/x"},
		{raw: "story/2", base: "http://news.example.com/front/", want: "http://news.example.com/front/story/2"},
		{raw: "", base: "http://news.example.com/", want: ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, resolveURL(tt.raw, tt.base), "resolve %q against %q", tt.raw, tt.base)
	}
}
