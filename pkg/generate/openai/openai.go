// Package openai implements pkg/generate's Generator client for OpenAI's chat completions API
package openai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/recruitkit/cvrag/pkg/generate"
)

// DefaultModel is the default model used for generation.
const DefaultModel = "gpt-4o-mini"

// Generator wraps OpenAI's chat completions API.
type Generator struct {
	client openai.Client
	model  string
}

// GeneratorConfig holds configuration for the OpenAI generator.
type GeneratorConfig struct {
	// APIKey authenticates against the OpenAI API.
	APIKey string

	// BaseURL overrides the API endpoint, e.g. for OpenAI-compatible
	// gateways. Empty means the library default.
	BaseURL string

	// Model is the generation model to use.
	// Defaults to DefaultModel if empty.
	Model string
}

// NewGenerator creates a new generator using OpenAI's chat completions API.
func NewGenerator(cfg GeneratorConfig) (*Generator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &Generator{
		client: openai.NewClient(opts...),
		model:  model,
	}, nil
}

// Generate returns the model's output for the given prompt.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", generate.ErrGeneration, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", generate.ErrGeneration)
	}

	return resp.Choices[0].Message.Content, nil
}

// Close releases resources held by the generator.
func (g *Generator) Close() error {
	return nil
}

var _ generate.Generator = (*Generator)(nil)
