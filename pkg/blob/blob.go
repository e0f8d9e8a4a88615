// Package blob abstracts the blob store that holds uploaded CV documents.
//
// The store itself is an external collaborator; this package only defines
// the fetch contract the ingestion pipeline needs, plus a filesystem
// implementation for local development and tests.
package blob

import (
	"context"
	"errors"
)

// ErrNotFound is returned when the requested object does not exist.
var ErrNotFound = errors.New("object not found")

// Fetcher retrieves raw object content from a bucket.
type Fetcher interface {
	// Fetch returns the full content of the named object.
	Fetch(ctx context.Context, bucket, name string) ([]byte, error)
}
