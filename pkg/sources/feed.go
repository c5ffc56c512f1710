package sources

import (
	"context"
	"fmt"

	"github.com/mmcdole/gofeed"

	"github.com/newsbrief-hq/newsbrief/internal/domain"
	"github.com/newsbrief-hq/newsbrief/pkg/httpclient"
)

// feedStrategy acquires headlines from a source's RSS/Atom feed. It is
// the preferred path for sources that declare a feed URL.
type feedStrategy struct {
	client httpclient.Client
}

// NewFeedStrategy builds the RSS/Atom acquisition strategy.
func NewFeedStrategy(client httpclient.Client) Strategy {
	return &feedStrategy{client: client}
}

func (s *feedStrategy) Name() string { return "feed" }

// Applies reports whether the source declares a feed URL.
func (s *feedStrategy) Applies(src Source) bool { return src.FeedURL != "" }

// Fetch retrieves and parses the feed document. Entries missing a title
// or link are skipped; a structural parse error fails the attempt so
// the scrape fallback runs.
func (s *feedStrategy) Fetch(ctx context.Context, src Source) ([]domain.Headline, error) {
	resp, err := s.client.Get(ctx, src.FeedURL, fetchHeaders())
	if err != nil {
		return nil, fmt.Errorf("fetch %s feed: %w", src.Name, err)
	}

	body := resp.Body()
	if code := resp.StatusCode(); code < 200 || code > 299 {
		return nil, fmt.Errorf("%s feed returned status %d body: %s", src.Name, code, responseSnippet(body))
	}

	feed, err := gofeed.NewParser().ParseString(string(body))
	if err != nil {
		return nil, fmt.Errorf("parse %s feed: %w", src.Name, err)
	}

	headlines := make([]domain.Headline, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil || item.Title == "" || item.Link == "" {
			continue
		}
		headlines = append(headlines, domain.Headline{
			Title: item.Title,
			Link:  resolveURL(item.Link, src.ContentURL),
		})
	}
	return headlines, nil
}
