// internal/genai/generator.go
package genai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"medassist-workers/internal/common/config"
	"medassist-workers/internal/common/logger"
)

var (
	ErrLLMTimeout         = errors.New("LLM_TIMEOUT")
	ErrLLMSynthesisFailed = errors.New("LLM_SYNTHESIS_FAILED")
)

// Generator produces free text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Options are shared by every backend.
type Options struct {
	BaseURL     string
	APIKey      string
	Model       string
	MaxRetries  int
	MaxTokens   int
	Temperature float64
}

func optionsFromConfig(cfg config.GenAIConfig) Options {
	return Options{
		BaseURL:     cfg.BaseURL,
		APIKey:      cfg.APIKey,
		Model:       cfg.Model,
		MaxRetries:  cfg.MaxRetries,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
	}
}

// New returns the configured backend, or nil when generation is disabled.
func New(cfg config.GenAIConfig, log logger.Logger) (Generator, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	opts := optionsFromConfig(cfg)
	switch cfg.Provider {
	case "http":
		return NewHTTPGenerator(opts, config.GetDuration(cfg.Timeout), log), nil
	case "openai":
		return NewOpenAIGenerator(opts, log), nil
	default:
		return nil, fmt.Errorf("unknown genai provider %q", cfg.Provider)
	}
}

// withRetry runs call up to maxRetries+1 times with exponential backoff and
// maps the final failure onto the package sentinels.
func withRetry(ctx context.Context, maxRetries int, call func() (string, error)) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", ErrLLMTimeout
			}
		}

		text, err := call()
		if err == nil {
			return text, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			break
		}
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return "", ErrLLMTimeout
	}
	return "", fmt.Errorf("%w: %v", ErrLLMSynthesisFailed, lastErr)
}
