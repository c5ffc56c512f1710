package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/newsbrief-hq/newsbrief/internal/ai"
	"github.com/newsbrief-hq/newsbrief/internal/api"
	"github.com/newsbrief-hq/newsbrief/internal/config"
	"github.com/newsbrief-hq/newsbrief/internal/crawler"
	"github.com/newsbrief-hq/newsbrief/internal/logger"
	"github.com/newsbrief-hq/newsbrief/pkg/httpclient"
	"github.com/newsbrief-hq/newsbrief/pkg/publishers"
	"github.com/newsbrief-hq/newsbrief/pkg/sources"
)

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

	gateway, err := ai.NewGateway(cfg.AISettings(), logg)
	if err != nil {
		log.Fatalf("init generation gateway: %v", err)
	}

	var sinks []publishers.Publisher
	if cfg.PublishersFile != "" {
		pubCfgs, err := publishers.LoadConfigs(cfg.PublishersFile)
		if err != nil {
			log.Fatalf("load publishers: %v", err)
		}
		sinks, err = publishers.BuildAll(context.Background(), publishers.DefaultRegistry(), pubCfgs, logg)
		if err != nil {
			log.Fatalf("build publishers: %v", err)
		}
	}

	r := gin.Default()
	server := api.NewServer(harvester, gateway, sinks, logg)
	server.RegisterRoutes(r)

	addr := ":" + cfg.AppPort
	logg.InfoObj("starting api server", "server_start", map[string]any{
		"addr":    addr,
		"sources": registry.Len(),
		"sinks":   len(sinks),
	})
	if err := r.Run(addr); err != nil {
		log.Fatalf("server exit: %v", err)
	}
}
