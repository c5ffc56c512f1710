// Package ai provides the generation gateway: the boundary component
// that forwards prompts to a hosted text-generation backend and applies
// light post-processing to the returned text. The gateway owns no state
// between calls; every call is a single request/response round trip
// with no retry and no caching.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/newsbrief-hq/newsbrief/internal/logger"
)

// ErrNotConfigured is returned by every gateway operation when no
// backend credential is configured. Callers surface it as a structured
// configuration error, never as a crash.
var ErrNotConfigured = errors.New("generation backend not configured")

// Backend provider identifiers.
const (
	ProviderOpenAI = "openai"
	ProviderClaude = "claude"
)

const (
	defaultMaxTokens = 1024
	defaultTimeout   = 60 * time.Second

	minHeadlineCount     = 1
	maxHeadlineCount     = 10
	defaultHeadlineCount = 3

	defaultSummaryLength = "3 sentences"
	defaultHeadlineStyle = "neutral and informative"
)

// Generator is the raw prompt-to-text contract a backend implements.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Settings configures the gateway backend. An empty APIKey yields a
// disabled gateway whose operations report ErrNotConfigured.
type Settings struct {
	Provider  string
	APIKey    string
	Model     string
	MaxTokens int
	Timeout   time.Duration
}

// Validate checks the settings for a configured backend.
func (s Settings) Validate() error {
	switch s.Provider {
	case ProviderOpenAI, ProviderClaude:
	default:
		return fmt.Errorf("unknown generation provider %q", s.Provider)
	}
	if s.MaxTokens <= 0 {
		return fmt.Errorf("max tokens must be positive, got %d", s.MaxTokens)
	}
	if s.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", s.Timeout)
	}
	return nil
}

// Gateway wraps a Generator with prompt templating, per-call timeouts
// and output post-processing.
type Gateway struct {
	gen     Generator
	timeout time.Duration
	log     logger.Logger
}

// NewGateway builds a gateway for the configured backend. A missing
// API key produces a gateway that is wired but disabled.
func NewGateway(st Settings, log logger.Logger) (*Gateway, error) {
	log = logger.Ensure(log)

	if st.MaxTokens <= 0 {
		st.MaxTokens = defaultMaxTokens
	}
	if st.Timeout <= 0 {
		st.Timeout = defaultTimeout
	}
	if st.Provider == "" {
		st.Provider = ProviderOpenAI
	}

	if st.APIKey == "" {
		log.WarnObj("generation backend disabled: no credential configured", "ai_disabled", map[string]any{
			"provider": st.Provider,
		})
		return &Gateway{gen: disabledGenerator{}, timeout: st.Timeout, log: log}, nil
	}

	if err := st.Validate(); err != nil {
		return nil, err
	}

	var gen Generator
	switch st.Provider {
	case ProviderClaude:
		gen = newClaudeGenerator(st, log)
	default:
		gen = newOpenAIGenerator(st, log)
	}

	log.InfoObj("generation backend configured", "ai_configured", map[string]any{
		"provider":   st.Provider,
		"model":      st.Model,
		"max_tokens": st.MaxTokens,
	})

	return &Gateway{gen: gen, timeout: st.Timeout, log: log}, nil
}

// NewGatewayWithGenerator builds a gateway over an explicit generator.
// Used by tests and custom wiring.
func NewGatewayWithGenerator(gen Generator, timeout time.Duration, log logger.Logger) *Gateway {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Gateway{gen: gen, timeout: timeout, log: logger.Ensure(log)}
}

// Configured reports whether a backend credential is wired in.
func (g *Gateway) Configured() bool {
	_, disabled := g.gen.(disabledGenerator)
	return !disabled
}

// Chat forwards the prompt verbatim and returns the model text.
func (g *Gateway) Chat(ctx context.Context, prompt string) (string, error) {
	return g.generate(ctx, prompt)
}

// Summarize asks for a summary of the article at the requested length
// ("3 sentences" when empty).
func (g *Gateway) Summarize(ctx context.Context, articleText, summaryLength string) (string, error) {
	if strings.TrimSpace(summaryLength) == "" {
		summaryLength = defaultSummaryLength
	}
	return g.generate(ctx, summarizePrompt(articleText, summaryLength))
}

// Headlines asks for count distinct headlines in the requested style
// and returns a renumbered list capped at count. The result may be
// shorter when the model output carries fewer distinct lines.
func (g *Gateway) Headlines(ctx context.Context, textContent string, count int, style string) ([]string, error) {
	if count < minHeadlineCount || count > maxHeadlineCount {
		count = defaultHeadlineCount
	}
	if strings.TrimSpace(style) == "" {
		style = defaultHeadlineStyle
	}

	raw, err := g.generate(ctx, headlinePrompt(textContent, count, style))
	if err != nil {
		return nil, err
	}
	return parseHeadlineList(raw, count), nil
}

// AnalyzeHeadlines submits one prompt embedding every harvested
// headline and returns the model's free-text analysis unparsed.
func (g *Gateway) AnalyzeHeadlines(ctx context.Context, headlines []string) (string, error) {
	return g.generate(ctx, analysisPrompt(headlines))
}

func (g *Gateway) generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	text, err := g.gen.Generate(ctx, prompt)
	if err != nil {
		if !errors.Is(err, ErrNotConfigured) {
			g.log.ErrorObj("generation call failed", "ai_generate_error", map[string]any{
				"elapsed": time.Since(start).String(),
				"error":   err.Error(),
			})
		}
		return "", err
	}

	g.log.DebugObj("generation call completed", "ai_generate_ok", map[string]any{
		"elapsed":       time.Since(start).String(),
		"output_length": len(text),
	})
	return strings.TrimSpace(text), nil
}

// disabledGenerator reports the missing-credential condition for every
// call.
type disabledGenerator struct{}

func (disabledGenerator) Generate(context.Context, string) (string, error) {
	return "", ErrNotConfigured
}
