package sources

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/newsbrief-hq/newsbrief/internal/domain"
	"github.com/newsbrief-hq/newsbrief/internal/logger"
	"github.com/newsbrief-hq/newsbrief/pkg/httpclient"
)

const (
	// browserUserAgent mimics a desktop browser; some outlets reject the
	// default Go client identification outright.
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	defaultFetchTimeout = 30 * time.Second
	defaultMaxHeadlines = 10
	defaultMinTitleLen  = 10
)

// Strategy is one way of acquiring headlines for a source. Strategies
// are tried in order; the first one that yields at least one usable
// headline wins and the rest are skipped.
type Strategy interface {
	Name() string
	// Applies reports whether the source carries the configuration this
	// strategy needs.
	Applies(src Source) bool
	Fetch(ctx context.Context, src Source) ([]domain.Headline, error)
}

// Limits bounds the normalized output of a source fetch.
type Limits struct {
	// MaxHeadlines caps the result list per source.
	MaxHeadlines int
	// MinTitleLen drops navigation/boilerplate fragments below this
	// rune count.
	MinTitleLen int
}

// DefaultLimits returns the standard per-source bounds.
func DefaultLimits() Limits {
	return Limits{MaxHeadlines: defaultMaxHeadlines, MinTitleLen: defaultMinTitleLen}
}

// Fetcher resolves headlines for one source by walking its strategy
// list. Fetches are independent and side-effect free; failures are
// converted to data on the returned SourceResult.
type Fetcher struct {
	strategies []Strategy
	limits     Limits
	log        logger.Logger
}

// NewFetcher builds a Fetcher over the given ordered strategies.
func NewFetcher(strategies []Strategy, limits Limits, log logger.Logger) *Fetcher {
	if limits.MaxHeadlines <= 0 {
		limits.MaxHeadlines = defaultMaxHeadlines
	}
	if limits.MinTitleLen < 0 {
		limits.MinTitleLen = 0
	}
	return &Fetcher{
		strategies: strategies,
		limits:     limits,
		log:        logger.Ensure(log),
	}
}

// DefaultFetcher wires the feed-then-scrape strategy order with the
// given HTTP client.
func DefaultFetcher(client httpclient.Client, log logger.Logger) *Fetcher {
	if client == nil {
		client = httpclient.NewRestyClient(defaultFetchTimeout)
	}
	return NewFetcher(
		[]Strategy{
			NewFeedStrategy(client),
			NewScrapeStrategy(client),
		},
		DefaultLimits(),
		log,
	)
}

// Fetch runs the strategy list for one source and returns its result.
// An error from every applicable strategy marks the source failed; the
// harvest itself is never aborted from here.
func (f *Fetcher) Fetch(ctx context.Context, src Source) domain.SourceResult {
	result := domain.SourceResult{Source: src.Name, Headlines: []domain.Headline{}}

	var lastErr error
	for _, strat := range f.strategies {
		if !strat.Applies(src) {
			continue
		}

		raw, err := strat.Fetch(ctx, src)
		if err != nil {
			f.log.WarnObj("source fetch attempt failed", "source_fetch_error", map[string]any{
				"source":   src.Name,
				"strategy": strat.Name(),
				"error":    err.Error(),
			})
			lastErr = err
			continue
		}

		headlines := f.normalize(raw)
		if len(headlines) == 0 {
			// Structurally fine but nothing usable: treat as a failed
			// attempt so the next strategy gets its turn.
			f.log.DebugObj("source fetch attempt yielded no usable headlines", "source_fetch_empty", map[string]any{
				"source":   src.Name,
				"strategy": strat.Name(),
			})
			continue
		}

		f.log.DebugObj("source fetch succeeded", "source_fetch_ok", map[string]any{
			"source":    src.Name,
			"strategy":  strat.Name(),
			"headlines": len(headlines),
		})
		result.Headlines = headlines
		return result
	}

	if lastErr != nil {
		result.Error = lastErr.Error()
	} else {
		result.Error = "no headlines found"
	}
	return result
}

// normalize cleans raw extracted entries: whitespace-collapsed titles,
// minimum length filter, absolute-link requirement and the per-source
// cap.
func (f *Fetcher) normalize(raw []domain.Headline) []domain.Headline {
	out := make([]domain.Headline, 0, len(raw))
	for _, h := range raw {
		title := collapseWhitespace(h.Title)
		if title == "" || len([]rune(title)) < f.limits.MinTitleLen {
			continue
		}
		link := strings.TrimSpace(h.Link)
		if link == "" || !isAbsoluteURL(link) {
			continue
		}

		out = append(out, domain.Headline{Title: title, Link: link})
		if len(out) >= f.limits.MaxHeadlines {
			break
		}
	}
	return out
}

// collapseWhitespace folds runs of whitespace into single spaces and
// trims the ends.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// isAbsoluteURL reports whether the link parses as an absolute URL.
func isAbsoluteURL(link string) bool {
	u, err := url.Parse(link)
	return err == nil && u.IsAbs()
}

// resolveURL resolves a possibly relative URL against a base URL.
func resolveURL(raw, base string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	if parsed.IsAbs() {
		return parsed.String()
	}

	baseURL, err := url.Parse(base)
	if err != nil {
		return raw
	}

	return baseURL.ResolveReference(parsed).String()
}

// fetchHeaders returns the request headers used for outbound fetches.
func fetchHeaders() map[string]string {
	return map[string]string{
		"User-Agent": browserUserAgent,
		"Accept":     "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
	}
}

// responseSnippet returns a truncated snippet of the response body for
// error messages.
func responseSnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}
