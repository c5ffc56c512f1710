package ai

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/newsbrief-hq/newsbrief/internal/logger"
)

const defaultClaudeModel = "claude-sonnet-4-5-20250929"

// claudeGenerator implements Generator against Anthropic's Messages API.
type claudeGenerator struct {
	client anthropic.Client
	model  string
	tokens int
	log    logger.Logger
}

func newClaudeGenerator(st Settings, log logger.Logger) Generator {
	model := st.Model
	if model == "" {
		model = defaultClaudeModel
	}
	return &claudeGenerator{
		client: anthropic.NewClient(option.WithAPIKey(st.APIKey)),
		model:  model,
		tokens: st.MaxTokens,
		log:    logger.Ensure(log),
	}
}

// Generate submits the prompt as a single user message and returns the
// first text block of the response.
func (g *claudeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	message, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(g.model),
		MaxTokens: int64(g.tokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("claude api error: %w", err)
	}

	if len(message.Content) == 0 {
		return "", fmt.Errorf("claude api returned empty response")
	}

	textBlock, ok := message.Content[0].AsAny().(anthropic.TextBlock)
	if !ok {
		return "", fmt.Errorf("claude api returned unexpected response type")
	}
	return textBlock.Text, nil
}
