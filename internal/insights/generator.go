package insights

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
)

// Generator is the capability boundary to the external language model.
// Alerting and analysis never depend on it; only the chat endpoint does.
type Generator interface {
	GenerateInsight(ctx context.Context, system, prompt string) (string, error)
}

// LLMGenerator implements Generator over a langchaingo chat model.
type LLMGenerator struct {
	model       llms.Model
	temperature float64
	maxTokens   int
}

// NewLLMGenerator creates a generator with the defaults used for
// procurement insights.
func NewLLMGenerator(model llms.Model) *LLMGenerator {
	return &LLMGenerator{
		model:       model,
		temperature: 0.7,
		maxTokens:   200,
	}
}

// SetTemperature sets the sampling temperature for completions.
func (g *LLMGenerator) SetTemperature(temp float64) {
	g.temperature = temp
}

// SetMaxTokens sets the completion token budget.
func (g *LLMGenerator) SetMaxTokens(tokens int) {
	g.maxTokens = tokens
}

// GenerateInsight sends one system+user exchange to the model and returns
// the first choice. No retries; a failed call surfaces as an error for
// the caller to degrade on.
func (g *LLMGenerator) GenerateInsight(ctx context.Context, system, prompt string) (string, error) {
	content := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, system),
		llms.TextParts(schema.ChatMessageTypeHuman, prompt),
	}

	resp, err := g.model.GenerateContent(ctx, content,
		llms.WithMaxTokens(g.maxTokens),
		llms.WithTemperature(g.temperature),
	)
	if err != nil {
		return "", fmt.Errorf("completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from model")
	}
	return resp.Choices[0].Content, nil
}
