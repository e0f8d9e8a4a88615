// Package generate wraps external language-model generation.
package generate

import (
	"context"
	"errors"
)

// ErrGeneration is returned when the language model call fails.
var ErrGeneration = errors.New("generation failed")

// Generator produces text from a prompt.
type Generator interface {
	// Generate returns the model's output for the given prompt.
	Generate(ctx context.Context, prompt string) (string, error)

	// Close releases any resources held by the generator.
	Close() error
}
