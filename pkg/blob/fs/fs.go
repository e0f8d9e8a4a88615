// Package fs provides a filesystem implementation of the blob.Fetcher interface.
//
// Buckets map to directories under a configured root and object names map to
// file paths within them. This is the local-dev story; cloud deployments sit
// behind the same Fetcher contract.
package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/recruitkit/cvrag/pkg/blob"
)

// Fetcher reads objects from the local filesystem.
type Fetcher struct {
	root string
}

// NewFetcher creates a filesystem fetcher rooted at root.
// An empty root resolves buckets relative to the working directory.
func NewFetcher(root string) *Fetcher {
	return &Fetcher{root: root}
}

// Fetch reads the object at <root>/<bucket>/<name>.
func (f *Fetcher) Fetch(_ context.Context, bucket, name string) ([]byte, error) {
	path := filepath.Join(f.root, bucket, filepath.FromSlash(name))

	// Object names come from external events; refuse escapes from the root.
	base := filepath.Join(f.root, bucket)
	if rel, err := filepath.Rel(base, path); err != nil || strings.HasPrefix(rel, "..") {
		return nil, fmt.Errorf("%w: %s/%s", blob.ErrNotFound, bucket, name)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s/%s", blob.ErrNotFound, bucket, name)
		}
		return nil, fmt.Errorf("reading object %s/%s: %w", bucket, name, err)
	}

	return data, nil
}

var _ blob.Fetcher = (*Fetcher)(nil)
