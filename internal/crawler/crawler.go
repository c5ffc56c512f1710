// Package crawler runs the per-source fetch fan-out and assembles the
// harvest report.
package crawler

import (
	"context"
	"sync"
	"time"

	"github.com/newsbrief-hq/newsbrief/internal/domain"
	"github.com/newsbrief-hq/newsbrief/internal/logger"
	"github.com/newsbrief-hq/newsbrief/pkg/sources"
)

const maxSourceWorkers = 8

// SourceFetcher resolves headlines for one source. Implementations must
// contain failures in the returned result rather than propagating them.
type SourceFetcher interface {
	Fetch(ctx context.Context, src sources.Source) domain.SourceResult
}

// Crawler fans out fetches over every registered source and joins the
// results into a Report. Concurrent fetches share no mutable state;
// each worker writes only its own slot of the output slice.
type Crawler struct {
	registry *sources.Registry
	fetcher  SourceFetcher
	log      logger.Logger
}

// New builds a Crawler over the given registry and fetcher.
func New(registry *sources.Registry, fetcher SourceFetcher, log logger.Logger) *Crawler {
	return &Crawler{
		registry: registry,
		fetcher:  fetcher,
		log:      logger.Ensure(log),
	}
}

// Harvest fetches every source concurrently and returns one result per
// source in registry order, regardless of completion order. A slow or
// failing source delays only the final join, never its peers.
func (c *Crawler) Harvest(ctx context.Context) domain.Report {
	srcs := c.registry.All()
	out := make([]domain.SourceResult, len(srcs))

	workerCount := min(len(srcs), maxSourceWorkers)

	jobCh := make(chan int)
	var wg sync.WaitGroup

	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobCh {
				out[idx] = c.fetcher.Fetch(ctx, srcs[idx])
			}
		}()
	}

	start := time.Now()
	for idx := range srcs {
		if ctx.Err() != nil {
			// Leave untouched slots as failed results below.
			break
		}
		jobCh <- idx
	}
	close(jobCh)

	wg.Wait()

	for i := range out {
		if out[i].Source == "" {
			out[i] = domain.SourceResult{
				Source:    srcs[i].Name,
				Headlines: []domain.Headline{},
				Error:     "harvest canceled",
			}
		}
	}

	report := domain.Report{GeneratedAt: time.Now().UTC(), Results: out}

	c.log.InfoObj("harvest completed", "harvest_done", map[string]any{
		"sources":   len(srcs),
		"headlines": report.HeadlineCount(),
		"elapsed":   time.Since(start).String(),
	})

	return report
}
