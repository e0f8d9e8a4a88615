// Package extract converts raw document bytes into plain text.
package extract

import (
	"context"
	"errors"
)

// ErrExtraction is returned when a document cannot be converted to text.
var ErrExtraction = errors.New("text extraction failed")

// Extractor converts raw binary document content into plain text.
type Extractor interface {
	// Extract returns the plain-text representation of data.
	Extract(ctx context.Context, data []byte) (string, error)
}
