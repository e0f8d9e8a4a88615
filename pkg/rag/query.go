package rag

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/recruitkit/cvrag/pkg/embeddings"
	"github.com/recruitkit/cvrag/pkg/generate"
	"github.com/recruitkit/cvrag/pkg/vector"
)

// DefaultTopK is the default retrieval count: small enough to keep prompt
// size bounded, large enough to usually cover multi-paragraph answers.
const DefaultTopK = 4

// QuerierConfig holds the collaborators and policy for the query pipeline.
type QuerierConfig struct {
	// Embedder embeds the query text.
	Embedder embeddings.Embedder

	// VectorDriver serves the similarity search.
	VectorDriver vector.Driver

	// Generator produces the grounded answer.
	Generator generate.Generator

	// TopK is the retrieval count. Defaults to DefaultTopK.
	TopK int

	// Logger is the provided zap logger.
	Logger *zap.Logger
}

// Querier runs the query pipeline: embed, search, prompt, generate.
type Querier struct {
	config QuerierConfig
}

// NewQuerier validates collaborators and creates the query pipeline.
func NewQuerier(c QuerierConfig) (*Querier, error) {
	if c.Embedder == nil {
		return nil, fmt.Errorf("embedder is required")
	}
	if c.VectorDriver == nil {
		return nil, fmt.Errorf("vector driver is required")
	}
	if c.Generator == nil {
		return nil, fmt.Errorf("generator is required")
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	if c.TopK <= 0 {
		c.TopK = DefaultTopK
	}

	return &Querier{config: c}, nil
}

// Answer returns a grounded answer for query. The stages run strictly in
// order — embed, search, generate — and the first failure aborts the run.
// When generation fails the caller gets the error, never a degraded answer.
func (q *Querier) Answer(ctx context.Context, query string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", fmt.Errorf("%w: query text must be provided", ErrInvalidArgument)
	}

	queryEmbedding, err := q.config.Embedder.Embed(ctx, query)
	if err != nil {
		return "", fmt.Errorf("embedding query: %w", err)
	}

	// Empty results are not short-circuited: the prompt contract makes the
	// model answer "cannot find the information" on empty context.
	results, err := q.config.VectorDriver.Query(ctx, queryEmbedding, q.config.TopK)
	if err != nil {
		return "", fmt.Errorf("searching records: %w", err)
	}

	contexts := make([]string, len(results))
	for i, result := range results {
		contexts[i] = result.Text
	}

	prompt := BuildPrompt(contexts, query)

	answer, err := q.config.Generator.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generating answer: %w", err)
	}

	q.config.Logger.Debug("query answered",
		zap.Int("retrieved", len(results)),
		zap.Int("prompt_len", len(prompt)),
	)

	return answer, nil
}
