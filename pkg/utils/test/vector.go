package testutils

import (
	"context"
	"fmt"
	"sync"

	"github.com/recruitkit/cvrag/pkg/vector"
)

// MockVectorDriver is a test vector driver
type MockVectorDriver struct {
	// Results is returned (truncated to topK) by Query.
	Results []vector.QueryResult

	// FailAdd/FailQuery force the corresponding operation to error.
	FailAdd   bool
	FailQuery bool

	mu         sync.Mutex
	documents  []vector.Document
	addBatches int
	queries    int
}

func NewMockVectorDriver() *MockVectorDriver {
	return &MockVectorDriver{}
}

func (m *MockVectorDriver) Add(_ context.Context, docs []vector.Document) error {
	if m.FailAdd {
		return fmt.Errorf("%w: mock add failure", vector.ErrConnection)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.documents = append(m.documents, docs...)
	m.addBatches++
	return nil
}

func (m *MockVectorDriver) Query(_ context.Context, _ []float32, topK int) ([]vector.QueryResult, error) {
	if m.FailQuery {
		return nil, fmt.Errorf("%w: mock query failure", vector.ErrConnection)
	}

	m.mu.Lock()
	m.queries++
	m.mu.Unlock()

	if len(m.Results) < topK {
		return m.Results, nil
	}
	return m.Results[:topK], nil
}

// Documents returns every document added so far.
func (m *MockVectorDriver) Documents() []vector.Document {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]vector.Document, len(m.documents))
	copy(out, m.documents)
	return out
}

// AddBatches returns the number of Add calls.
func (m *MockVectorDriver) AddBatches() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.addBatches
}

// Queries returns the number of Query calls.
func (m *MockVectorDriver) Queries() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queries
}

func (m *MockVectorDriver) Close() error {
	return nil
}
