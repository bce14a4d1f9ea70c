// Package llmservice wraps the chat model completion call.
package llmservice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"

	"ragbot/internal/config"
	"ragbot/internal/models"
)

// Generator sends an assembled prompt to the language model and returns the
// trimmed completion. An empty completion becomes a sentinel error string so
// the failure stays observable without crashing the caller.
type Generator struct {
	llm     llms.Model
	timeout time.Duration
}

// NewGenerator wraps any langchaingo model; tests pass fakes here.
func NewGenerator(llm llms.Model, timeout time.Duration) *Generator {
	return &Generator{llm: llm, timeout: timeout}
}

// NewChatGenerator builds the generator named by the config.
func NewChatGenerator(cfg *config.LLMConfig) (*Generator, error) {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if cfg.Provider == "openai" {
		llm, err := openai.New(
			openai.WithBaseURL(cfg.BaseURL),
			openai.WithToken(strings.TrimPrefix(cfg.Key, "Bearer ")),
			openai.WithModel(cfg.Model),
		)
		if err != nil {
			return nil, err
		}
		return NewGenerator(llm, timeout), nil
	}

	opts := []ollama.Option{ollama.WithModel(cfg.Model)}
	if cfg.BaseURL != "" {
		opts = append(opts, ollama.WithServerURL(cfg.BaseURL))
	}
	llm, err := ollama.New(opts...)
	if err != nil {
		return nil, err
	}
	return NewGenerator(llm, timeout), nil
}

// Generate runs the completion under a bounded wait.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	messages := []llms.MessageContent{
		{
			Role:  schema.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextContent{Text: prompt}},
		},
	}

	res, err := g.llm.GenerateContent(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	if len(res.Choices) == 0 {
		return models.EmptyLLMResponse, nil
	}
	answer := strings.TrimSpace(res.Choices[0].Content)
	if answer == "" {
		return models.EmptyLLMResponse, nil
	}
	return answer, nil
}
