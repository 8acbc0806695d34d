// internal/genai/openai.go
package genai

import (
	"context"
	"errors"

	"medassist-workers/internal/common/logger"

	openai "github.com/sashabaranov/go-openai"
)

const systemPrompt = "You are a careful medical triage assistant. Reply with JSON only."

// OpenAIGenerator uses the chat completion API. BaseURL overrides the
// endpoint for compatible gateways.
type OpenAIGenerator struct {
	opts   Options
	client *openai.Client
	logger logger.Logger
}

func NewOpenAIGenerator(opts Options, log logger.Logger) *OpenAIGenerator {
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	if opts.Model == "" {
		opts.Model = "gpt-4o-mini"
	}
	return &OpenAIGenerator{
		opts:   opts,
		client: openai.NewClientWithConfig(cfg),
		logger: log.With(map[string]interface{}{"component": "genai.openai"}),
	}
}

func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: g.opts.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   g.opts.MaxTokens,
		Temperature: float32(g.opts.Temperature),
	}

	return withRetry(ctx, g.opts.MaxRetries, func() (string, error) {
		resp, err := g.client.CreateChatCompletion(ctx, req)
		if err != nil {
			var apiErr *openai.APIError
			if errors.As(err, &apiErr) {
				g.logger.Warn("openai api error", map[string]interface{}{
					"status": apiErr.HTTPStatusCode,
					"type":   apiErr.Type,
				})
			}
			return "", err
		}
		if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
			return "", errors.New("no choices returned")
		}
		return resp.Choices[0].Message.Content, nil
	})
}
