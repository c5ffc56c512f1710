package sources

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/newsbrief-hq/newsbrief/internal/domain"
	"github.com/newsbrief-hq/newsbrief/pkg/httpclient"
)

const maxHTMLBodyBytes = 1 << 20 // 1 MiB

// scrapeStrategy acquires headlines by fetching the source's content
// page and selecting nodes with the configured CSS selector. It is the
// fallback when no feed is configured or the feed path fails.
type scrapeStrategy struct {
	client httpclient.Client
}

// NewScrapeStrategy builds the direct HTML acquisition strategy.
func NewScrapeStrategy(client httpclient.Client) Strategy {
	return &scrapeStrategy{client: client}
}

func (s *scrapeStrategy) Name() string { return "scrape" }

// Applies always holds: every source carries a content URL and selector.
func (s *scrapeStrategy) Applies(Source) bool { return true }

// Fetch retrieves the content page and extracts (title, link) pairs for
// every node matching the selector. Comma-joined selectors are
// evaluated as a union by goquery. Relative anchor targets are resolved
// against the content URL.
func (s *scrapeStrategy) Fetch(ctx context.Context, src Source) ([]domain.Headline, error) {
	resp, err := s.client.Get(ctx, src.ContentURL, fetchHeaders())
	if err != nil {
		return nil, fmt.Errorf("fetch %s page: %w", src.Name, err)
	}

	body := resp.Body()
	if code := resp.StatusCode(); code < 200 || code > 299 {
		return nil, fmt.Errorf("%s page returned status %d body: %s", src.Name, code, responseSnippet(body))
	}
	if len(body) > maxHTMLBodyBytes {
		body = body[:maxHTMLBodyBytes]
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse %s html: %w", src.Name, err)
	}

	var headlines []domain.Headline
	doc.Find(src.Selector).Each(func(_ int, sel *goquery.Selection) {
		title := strings.TrimSpace(sel.Text())
		link := anchorTarget(sel)
		if title == "" || link == "" {
			return
		}
		headlines = append(headlines, domain.Headline{
			Title: title,
			Link:  resolveURL(link, src.ContentURL),
		})
	})

	return headlines, nil
}

// anchorTarget finds the href for a matched node: the node itself when
// it is an anchor, otherwise the first descendant or enclosing anchor.
func anchorTarget(sel *goquery.Selection) string {
	if href, ok := sel.Attr("href"); ok {
		return strings.TrimSpace(href)
	}
	if href, ok := sel.Find("a").First().Attr("href"); ok {
		return strings.TrimSpace(href)
	}
	if href, ok := sel.Closest("a").Attr("href"); ok {
		return strings.TrimSpace(href)
	}
	return ""
}
