// internal/genai/http.go
package genai

import (
	"context"
	"errors"
	"strings"
	"time"

	commonhttp "medassist-workers/internal/common/http"
	"medassist-workers/internal/common/logger"
)

// HTTPGenerator talks to a generic generation service exposing
// POST {baseURL}/api/ai/generate.
type HTTPGenerator struct {
	opts   Options
	client *commonhttp.Client
	logger logger.Logger
}

type generateRequest struct {
	Prompt      string  `json:"prompt"`
	Model       string  `json:"model,omitempty"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

type generateResponse struct {
	Text       string   `json:"text"`
	Confidence float64  `json:"confidence"`
	Sources    []string `json:"sources"`
}

// NewHTTPGenerator builds the client. timeout bounds a single attempt; the
// caller's context bounds the whole call.
func NewHTTPGenerator(opts Options, timeout time.Duration, log logger.Logger) *HTTPGenerator {
	client := commonhttp.NewClient(timeout)
	if opts.APIKey != "" {
		client.WithHeader("Authorization", "Bearer "+opts.APIKey)
	}
	return &HTTPGenerator{
		opts:   opts,
		client: client,
		logger: log.With(map[string]interface{}{"component": "genai.http"}),
	}
}

func (g *HTTPGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	url := strings.TrimRight(g.opts.BaseURL, "/") + "/api/ai/generate"
	body := generateRequest{
		Prompt:      prompt,
		Model:       g.opts.Model,
		MaxTokens:   g.opts.MaxTokens,
		Temperature: g.opts.Temperature,
	}

	return withRetry(ctx, g.opts.MaxRetries, func() (string, error) {
		var resp generateResponse
		if err := g.client.PostJSON(ctx, url, body, &resp); err != nil {
			var statusErr *commonhttp.StatusError
			if errors.As(err, &statusErr) {
				g.logger.Warn("generation service returned error status", map[string]interface{}{
					"status": statusErr.StatusCode,
				})
			}
			return "", err
		}
		if strings.TrimSpace(resp.Text) == "" {
			return "", errors.New("empty generation")
		}
		return resp.Text, nil
	})
}
