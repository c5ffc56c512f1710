package ai

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/newsbrief-hq/newsbrief/internal/logger"
)

const defaultOpenAIModel = "gpt-4o-mini"

// openaiGenerator implements Generator against the OpenAI chat
// completions API.
type openaiGenerator struct {
	client *openai.Client
	model  string
	tokens int
	log    logger.Logger
}

func newOpenAIGenerator(st Settings, log logger.Logger) Generator {
	model := st.Model
	if model == "" {
		model = defaultOpenAIModel
	}
	return &openaiGenerator{
		client: openai.NewClient(st.APIKey),
		model:  model,
		tokens: st.MaxTokens,
		log:    logger.Ensure(log),
	}
}

// Generate submits the prompt as a single user message and returns the
// first choice's content.
func (g *openaiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     g.model,
		MaxTokens: g.tokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai api error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai api returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
