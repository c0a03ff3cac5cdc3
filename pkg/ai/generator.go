// Package ai adapts text-generation providers to a single Generator
// capability used by the tailoring pipeline.
package ai

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"resumetuner/pkg/config"
)

// Generator produces text from a fixed instruction and a stage input.
type Generator interface {
	Generate(ctx context.Context, instruction, input string) (string, error)
}

// New builds the Generator selected by cfg.Provider.
func New(ctx context.Context, cfg config.AIConfig) (Generator, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		c := NewClient(cfg.BaseURL, cfg.APIKey, cfg.Model, cfg.Timeout)
		c.Temperature = cfg.Temperature
		c.MaxTokens = cfg.MaxTokens
		return c, nil
	case config.ProviderAnthropic:
		return NewAnthropicClient(cfg), nil
	case config.ProviderGemini:
		return NewGeminiClient(ctx, cfg)
	default:
		return nil, errors.Errorf("unknown ai provider %q", cfg.Provider)
	}
}

// stripCodeFences removes one pair of Markdown code fences wrapping the
// whole text, which chat models add even when told not to.
func stripCodeFences(s string) string {
	t := strings.TrimSpace(s)
	if !strings.HasPrefix(t, "```") || !strings.HasSuffix(t, "```") || len(t) < 6 {
		return s
	}
	t = strings.TrimSuffix(t, "```")
	nl := strings.IndexByte(t, '\n')
	if nl < 0 {
		return s
	}
	// the opening fence line may carry a language tag
	return strings.TrimSpace(t[nl+1:])
}
