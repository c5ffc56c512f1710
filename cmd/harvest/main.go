package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/newsbrief-hq/newsbrief/internal/config"
	"github.com/newsbrief-hq/newsbrief/internal/crawler"
	"github.com/newsbrief-hq/newsbrief/internal/logger"
	"github.com/newsbrief-hq/newsbrief/pkg/httpclient"
	"github.com/newsbrief-hq/newsbrief/pkg/publishers"
	"github.com/newsbrief-hq/newsbrief/pkg/sources"
)

// One-shot harvest: fetch every configured source once, print the
// report to stdout and optionally deliver it to configured sinks.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logg := logger.NopLogger{}

	registry := sources.DefaultRegistry()
	if cfg.SourcesFile != "" {
		registry, err = sources.LoadRegistry(cfg.SourcesFile)
		if err != nil {
			log.Fatalf("load sources: %v", err)
		}
	}

	client := httpclient.NewRestyClient(cfg.FetchTimeout)
	fetcher := sources.NewFetcher(
		[]sources.Strategy{
			sources.NewFeedStrategy(client),
			sources.NewScrapeStrategy(client),
		},
		sources.Limits{MaxHeadlines: cfg.MaxHeadlines, MinTitleLen: cfg.MinTitleLen},
		logg,
	)

	ctx := context.Background()
	report := crawler.New(registry, fetcher, logg).Harvest(ctx)

	fmt.Printf("Headline report (%s)\n", report.GeneratedAt.Format(time.RFC1123))
	for _, res := range report.Results {
		fmt.Printf("\n=== %s ===\n", res.Source)
		if res.Error != "" {
			fmt.Printf("  fetch failed: %s\n", res.Error)
			continue
		}
		for i, h := range res.Headlines {
			fmt.Printf("%d. %s (%s)\n", i+1, h.Title, h.Link)
		}
	}

	if cfg.PublishersFile == "" {
		return
	}

	pubCfgs, err := publishers.LoadConfigs(cfg.PublishersFile)
	if err != nil {
		log.Fatalf("load publishers: %v", err)
	}
	sinks, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), pubCfgs, logg)
	if err != nil {
		log.Fatalf("build publishers: %v", err)
	}
	publishers.PublishReport(ctx, sinks, report, logg)
}
