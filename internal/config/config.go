// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/newsbrief-hq/newsbrief/internal/ai"
)

// Config holds every runtime setting. Values come from environment
// variables (a .env file is loaded by the entrypoints before this runs)
// with sensible defaults for local development.
type Config struct {
	AppPort  string
	LogLevel string

	// SourcesFile optionally overrides the built-in source registry.
	SourcesFile string
	// PublishersFile optionally enables report sinks.
	PublishersFile string

	FetchTimeout time.Duration
	MaxHeadlines int
	MinTitleLen  int

	AIProvider  string
	AIAPIKey    string
	AIModel     string
	AIMaxTokens int
	AITimeout   time.Duration

	// CronSpec drives the harvest daemon schedule.
	CronSpec string
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_PORT", "8000")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("FETCH_TIMEOUT", "30s")
	v.SetDefault("MAX_HEADLINES_PER_SOURCE", 10)
	v.SetDefault("MIN_HEADLINE_LENGTH", 10)
	v.SetDefault("AI_PROVIDER", ai.ProviderOpenAI)
	v.SetDefault("AI_MAX_TOKENS", 1024)
	v.SetDefault("AI_TIMEOUT", "60s")
	v.SetDefault("HARVEST_CRON", "*/30 * * * *")

	cfg := &Config{
		AppPort:        v.GetString("APP_PORT"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		SourcesFile:    v.GetString("SOURCES_FILE"),
		PublishersFile: v.GetString("PUBLISHERS_FILE"),
		FetchTimeout:   v.GetDuration("FETCH_TIMEOUT"),
		MaxHeadlines:   v.GetInt("MAX_HEADLINES_PER_SOURCE"),
		MinTitleLen:    v.GetInt("MIN_HEADLINE_LENGTH"),
		AIProvider:     strings.ToLower(strings.TrimSpace(v.GetString("AI_PROVIDER"))),
		AIModel:        v.GetString("AI_MODEL"),
		AIMaxTokens:    v.GetInt("AI_MAX_TOKENS"),
		AITimeout:      v.GetDuration("AI_TIMEOUT"),
		CronSpec:       v.GetString("HARVEST_CRON"),
	}

	cfg.AIAPIKey = resolveAIKey(v, cfg.AIProvider)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveAIKey picks the backend credential: the generic AI_API_KEY
// wins, otherwise the provider's conventional variable. An empty result
// is not an error; it disables the generation gateway.
func resolveAIKey(v *viper.Viper, provider string) string {
	if key := v.GetString("AI_API_KEY"); key != "" {
		return key
	}
	switch provider {
	case ai.ProviderClaude:
		return v.GetString("ANTHROPIC_API_KEY")
	default:
		return v.GetString("OPENAI_API_KEY")
	}
}

func (c *Config) validate() error {
	if c.AppPort == "" {
		return fmt.Errorf("APP_PORT cannot be empty")
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("FETCH_TIMEOUT must be positive, got %v", c.FetchTimeout)
	}
	if c.MaxHeadlines <= 0 {
		return fmt.Errorf("MAX_HEADLINES_PER_SOURCE must be positive, got %d", c.MaxHeadlines)
	}
	if c.MinTitleLen < 0 {
		return fmt.Errorf("MIN_HEADLINE_LENGTH cannot be negative, got %d", c.MinTitleLen)
	}
	if c.AITimeout <= 0 {
		return fmt.Errorf("AI_TIMEOUT must be positive, got %v", c.AITimeout)
	}
	return nil
}

// AISettings maps the config to gateway settings.
func (c *Config) AISettings() ai.Settings {
	return ai.Settings{
		Provider:  c.AIProvider,
		APIKey:    c.AIAPIKey,
		Model:     c.AIModel,
		MaxTokens: c.AIMaxTokens,
		Timeout:   c.AITimeout,
	}
}
