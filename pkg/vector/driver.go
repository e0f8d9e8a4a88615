// Package vector provides interfaces and implementations for vector storage of CV chunks.
package vector

import "context"

// Document represents a stored chunk with its embedding and provenance metadata.
type Document struct {
	// ID is a unique identifier for the record.
	ID string

	// Text is the chunk text that was embedded.
	Text string

	// Source is the storage path of the document the chunk came from.
	Source string

	// Embedding is the vector representation of Text.
	Embedding []float32
}

// QueryResult represents a search result with similarity score.
type QueryResult struct {
	Document

	// Score represents the similarity score (higher = more similar).
	Score float32
}

// Driver handles storage and retrieval of vector embeddings.
type Driver interface {
	// Add stores documents with their embeddings in one batch. There is no
	// uniqueness constraint on text; re-adding the same content produces
	// duplicate records.
	Add(ctx context.Context, docs []Document) error

	// Query finds the topK most similar documents to the given embedding,
	// most similar first.
	Query(ctx context.Context, embedding []float32, topK int) ([]QueryResult, error)

	// Close releases any resources held by the driver.
	Close() error
}
