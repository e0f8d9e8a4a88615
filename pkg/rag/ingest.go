// Package rag implements the two core pipelines of the CV screening service:
// document ingestion (fetch, extract, chunk, embed, persist) and query
// answering (embed, search, prompt, generate).
package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/recruitkit/cvrag/pkg/blob"
	"github.com/recruitkit/cvrag/pkg/chunker"
	"github.com/recruitkit/cvrag/pkg/embeddings"
	"github.com/recruitkit/cvrag/pkg/eventstream"
	"github.com/recruitkit/cvrag/pkg/extract"
	"github.com/recruitkit/cvrag/pkg/vector"
)

const (
	// DefaultSuffix is the object-name suffix marking supported documents.
	DefaultSuffix = ".pdf"

	// DefaultConcurrency bounds parallel embedding calls per document to
	// respect upstream rate limits.
	DefaultConcurrency = 4
)

// IngestStatus is the terminal outcome of one ingestion run.
type IngestStatus string

const (
	// StatusCompleted means every chunk of the document was persisted.
	StatusCompleted IngestStatus = "completed"

	// StatusSkipped means the document was filtered (unsupported suffix)
	// or produced no chunks. Not an error.
	StatusSkipped IngestStatus = "skipped"

	// StatusFailed means a pipeline stage failed and nothing was persisted.
	StatusFailed IngestStatus = "failed"
)

// IngestResult reports the outcome of one ingestion run.
type IngestResult struct {
	Status IngestStatus `json:"status"`

	// Chunks is the number of records persisted. Zero unless Completed.
	Chunks int `json:"chunks"`
}

// IngestorConfig holds the collaborators and policy for the ingestion pipeline.
type IngestorConfig struct {
	// Fetcher retrieves object content from blob storage.
	Fetcher blob.Fetcher

	// Extractor converts document bytes to plain text.
	Extractor extract.Extractor

	// Embedder produces one vector per chunk.
	Embedder embeddings.Embedder

	// VectorDriver persists the embedded chunks.
	VectorDriver vector.Driver

	// Suffix filters object names; non-matching objects are skipped.
	// Defaults to DefaultSuffix.
	Suffix string

	// Concurrency bounds parallel embedding calls.
	// Defaults to DefaultConcurrency.
	Concurrency int

	// Logger is the provided zap logger.
	Logger *zap.Logger
}

// Ingestor runs the document ingestion pipeline. A document is either fully
// indexed or not indexed at all: a failure at any stage aborts the run with
// nothing persisted, so retrieval never sees a half-indexed document.
type Ingestor struct {
	config IngestorConfig
}

// NewIngestor validates collaborators and creates the ingestion pipeline.
func NewIngestor(c IngestorConfig) (*Ingestor, error) {
	if c.Fetcher == nil {
		return nil, fmt.Errorf("blob fetcher is required")
	}
	if c.Extractor == nil {
		return nil, fmt.Errorf("extractor is required")
	}
	if c.Embedder == nil {
		return nil, fmt.Errorf("embedder is required")
	}
	if c.VectorDriver == nil {
		return nil, fmt.Errorf("vector driver is required")
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	if c.Suffix == "" {
		c.Suffix = DefaultSuffix
	}
	if c.Concurrency <= 0 {
		c.Concurrency = DefaultConcurrency
	}

	return &Ingestor{config: c}, nil
}

// Ingest runs the full pipeline for one object-finalized event. The returned
// error is non-nil exactly when the result status is StatusFailed.
func (in *Ingestor) Ingest(ctx context.Context, event *eventstream.ObjectFinalizedEvent) (IngestResult, error) {
	if event == nil {
		return IngestResult{Status: StatusFailed}, eventstream.ErrNilEvent
	}

	logger := in.config.Logger.With(
		zap.String("bucket", event.Bucket),
		zap.String("name", event.Name),
	)

	if !strings.HasSuffix(strings.ToLower(event.Name), strings.ToLower(in.config.Suffix)) {
		logger.Debug("skipping unsupported object",
			zap.String("suffix", in.config.Suffix),
		)
		return IngestResult{Status: StatusSkipped}, nil
	}

	data, err := in.config.Fetcher.Fetch(ctx, event.Bucket, event.Name)
	if err != nil {
		return IngestResult{Status: StatusFailed}, fmt.Errorf("fetching object: %w", err)
	}

	text, err := in.config.Extractor.Extract(ctx, data)
	if err != nil {
		return IngestResult{Status: StatusFailed}, fmt.Errorf("extracting text: %w", err)
	}

	chunks := chunker.Split(text, event.Name)
	if len(chunks) == 0 {
		logger.Info("no chunks extracted, skipping")
		return IngestResult{Status: StatusSkipped}, nil
	}

	docs, err := in.embedChunks(ctx, chunks)
	if err != nil {
		return IngestResult{Status: StatusFailed}, err
	}

	if err := in.config.VectorDriver.Add(ctx, docs); err != nil {
		return IngestResult{Status: StatusFailed}, fmt.Errorf("persisting records: %w", err)
	}

	logger.Info("document indexed",
		zap.Int("chunks", len(docs)),
	)

	return IngestResult{Status: StatusCompleted, Chunks: len(docs)}, nil
}

// embedChunks embeds all chunks with bounded concurrency. Chunks are
// independent until the final batch upsert, so calls run in parallel; a
// single failure fails the whole document (no partial commit).
func (in *Ingestor) embedChunks(ctx context.Context, chunks []chunker.Chunk) ([]vector.Document, error) {
	docs := make([]vector.Document, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(in.config.Concurrency)

	for i, chunk := range chunks {
		g.Go(func() error {
			embedding, err := in.config.Embedder.Embed(gctx, chunk.Text)
			if err != nil {
				return fmt.Errorf("embedding chunk %d: %w", chunk.Index, err)
			}
			docs[i] = vector.Document{
				ID:        uuid.NewString(),
				Text:      chunk.Text,
				Source:    chunk.Source,
				Embedding: embedding,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return docs, nil
}

// Handler adapts the Ingestor to the eventstream.Handler contract.
// Skipped outcomes are not errors; failures propagate for the transport to
// log. No retry is scheduled here — redelivery is the transport's policy.
func (in *Ingestor) Handler() eventstream.Handler {
	return func(ctx context.Context, event *eventstream.ObjectFinalizedEvent) error {
		_, err := in.Ingest(ctx, event)
		return err
	}
}
