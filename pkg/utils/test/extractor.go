package testutils

import (
	"context"
	"fmt"

	"github.com/recruitkit/cvrag/pkg/extract"
)

// MockExtractor is a test extractor that returns canned text regardless of
// the document bytes.
type MockExtractor struct {
	// Text is returned by Extract.
	Text string

	// Fail forces Extract to error with extract.ErrExtraction.
	Fail bool
}

func NewMockExtractor(text string) *MockExtractor {
	return &MockExtractor{Text: text}
}

func (m *MockExtractor) Extract(_ context.Context, _ []byte) (string, error) {
	if m.Fail {
		return "", fmt.Errorf("%w: mock extraction failure", extract.ErrExtraction)
	}
	return m.Text, nil
}
