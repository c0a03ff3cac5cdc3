package ai

import (
	"context"

	"github.com/pkg/errors"
	"google.golang.org/genai"

	"resumetuner/pkg/config"
)

// GeminiClient generates text with the Gemini API.
type GeminiClient struct {
	client      *genai.Client
	model       string
	temperature float32
	maxTokens   int32
}

func NewGeminiClient(ctx context.Context, cfg config.AIConfig) (*GeminiClient, error) {
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create gemini client")
	}
	return &GeminiClient{
		client:      client,
		model:       cfg.Model,
		temperature: float32(cfg.Temperature),
		maxTokens:   int32(cfg.MaxTokens),
	}, nil
}

func (c *GeminiClient) Generate(ctx context.Context, instruction, input string) (string, error) {
	gc := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(instruction, genai.RoleUser),
		Temperature:       &c.temperature,
	}
	if c.maxTokens > 0 {
		gc.MaxOutputTokens = c.maxTokens
	}
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(input), gc)
	if err != nil {
		return "", errors.Wrap(err, "gemini generate content failed")
	}
	return stripCodeFences(resp.Text()), nil
}
