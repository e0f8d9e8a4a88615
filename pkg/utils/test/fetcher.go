package testutils

import (
	"context"
	"fmt"

	"github.com/recruitkit/cvrag/pkg/blob"
)

// MockFetcher is a test blob fetcher serving objects from a map.
type MockFetcher struct {
	// Objects maps "bucket/name" to content.
	Objects map[string][]byte
}

func NewMockFetcher() *MockFetcher {
	return &MockFetcher{Objects: make(map[string][]byte)}
}

// Put registers object content for later Fetch calls.
func (m *MockFetcher) Put(bucket, name string, data []byte) {
	m.Objects[bucket+"/"+name] = data
}

func (m *MockFetcher) Fetch(_ context.Context, bucket, name string) ([]byte, error) {
	data, ok := m.Objects[bucket+"/"+name]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", blob.ErrNotFound, bucket, name)
	}
	return data, nil
}
