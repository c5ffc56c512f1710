package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/newsbrief-hq/newsbrief/internal/config"
	"github.com/newsbrief-hq/newsbrief/internal/crawler"
	"github.com/newsbrief-hq/newsbrief/internal/logger"
	"github.com/newsbrief-hq/newsbrief/pkg/httpclient"
	"github.com/newsbrief-hq/newsbrief/pkg/publishers"
	"github.com/newsbrief-hq/newsbrief/pkg/sources"
)

// Harvest daemon: runs the source fan-out on a cron schedule and
// delivers every report to the configured sinks.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logg, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	registry := sources.DefaultRegistry()
	if cfg.SourcesFile != "" {
		registry, err = sources.LoadRegistry(cfg.SourcesFile)
		if err != nil {
			log.Fatalf("load sources: %v", err)
		}
	}

	if cfg.PublishersFile == "" {
		log.Fatal("PUBLISHERS_FILE is required for the harvest daemon")
	}
	pubCfgs, err := publishers.LoadConfigs(cfg.PublishersFile)
	if err != nil {
		log.Fatalf("load publishers: %v", err)
	}
	sinks, err := publishers.BuildAll(context.Background(), publishers.DefaultRegistry(), pubCfgs, logg)
	if err != nil {
		log.Fatalf("build publishers: %v", err)
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
	harvester := crawler.New(registry, fetcher, logg)

	run := func() {
		ctx := context.Background()
		report := harvester.Harvest(ctx)
		publishers.PublishReport(ctx, sinks, report, logg)
	}

	c := cron.New()
	if _, err := c.AddFunc(cfg.CronSpec, run); err != nil {
		log.Fatalf("schedule harvest: %v", err)
	}

	logg.InfoObj("harvest daemon started", "daemon_start", map[string]any{
		"cron":    cfg.CronSpec,
		"sources": registry.Len(),
		"sinks":   len(sinks),
	})

	// First run immediately so a fresh deployment publishes without
	// waiting out the schedule.
	run()
	c.Start()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	<-c.Stop().Done()
	logg.InfoObj("harvest daemon stopped", "daemon_stop", nil)
}
