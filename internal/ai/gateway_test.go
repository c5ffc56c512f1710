package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubGenerator records the last prompt and returns canned output.
type stubGenerator struct {
	output string
	err    error
	prompt string
}

func (s *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.output, s.err
}

func TestGatewayDisabledWithoutCredential(t *testing.T) {
	gw, err := NewGateway(Settings{Provider: ProviderOpenAI}, nil)
	require.NoError(t, err)
	assert.False(t, gw.Configured())

	_, err = gw.Chat(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = gw.Summarize(context.Background(), "some article", "")
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = gw.Headlines(context.Background(), "some text", 3, "")
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = gw.AnalyzeHeadlines(context.Background(), []string{"one"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestNewGatewayRejectsUnknownProvider(t *testing.T) {
	_, err := NewGateway(Settings{Provider: "gemini", APIKey: "k"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown generation provider")
}

func TestChatTrimsOutput(t *testing.T) {
	gen := &stubGenerator{output: "  the reply \n"}
	gw := NewGatewayWithGenerator(gen, time.Second, nil)

	got, err := gw.Chat(context.Background(), "prompt text")
	require.NoError(t, err)
	assert.Equal(t, "the reply", got)
	assert.Equal(t, "prompt text", gen.prompt)
	assert.True(t, gw.Configured())
}

func TestSummarizeDefaultsLength(t *testing.T) {
	gen := &stubGenerator{output: "A short summary."}
	gw := NewGatewayWithGenerator(gen, time.Second, nil)

	_, err := gw.Summarize(context.Background(), "long article body", "  ")
	require.NoError(t, err)
	assert.Contains(t, gen.prompt, "into 3 sentences")
	assert.Contains(t, gen.prompt, "long article body")

	_, err = gw.Summarize(context.Background(), "long article body", "one paragraph")
	require.NoError(t, err)
	assert.Contains(t, gen.prompt, "into one paragraph")
}

func TestHeadlinesClampsCountAndStyle(t *testing.T) {
	gen := &stubGenerator{output: "1. One\n2. Two\n3. Three\n4. Four\n5. Five"}
	gw := NewGatewayWithGenerator(gen, time.Second, nil)

	// Out-of-range counts fall back to the default of 3.
	got, err := gw.Headlines(context.Background(), "body", 0, "")
	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Contains(t, gen.prompt, "Generate 3 distinct news headlines")
	assert.Contains(t, gen.prompt, "should be neutral and informative")

	got, err = gw.Headlines(context.Background(), "body", 99, "dramatic")
	require.NoError(t, err)
	assert.Len(t, got, 3)

	got, err = gw.Headlines(context.Background(), "body", 5, "dramatic")
	require.NoError(t, err)
	assert.Len(t, got, 5)
	assert.Contains(t, gen.prompt, "should be dramatic")
	assert.Equal(t, "5. Five", got[4])
}

func TestHeadlinesPropagatesBackendError(t *testing.T) {
	gen := &stubGenerator{err: errors.New("rate limited")}
	gw := NewGatewayWithGenerator(gen, time.Second, nil)

	_, err := gw.Headlines(context.Background(), "body", 3, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestAnalyzeHeadlinesEmbedsAllLines(t *testing.T) {
	gen := &stubGenerator{output: "Overall Dominant Theme: tests"}
	gw := NewGatewayWithGenerator(gen, time.Second, nil)

	_, err := gw.AnalyzeHeadlines(context.Background(), []string{"First story", " ", "Second story"})
	require.NoError(t, err)

	assert.Contains(t, gen.prompt, "- First story\n- Second story")
	assert.NotContains(t, gen.prompt, "-  ", "blank headlines are dropped, not rendered")
}
