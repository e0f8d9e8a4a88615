// Package pdf implements pkg/extract's Extractor for PDF documents.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"

	"github.com/recruitkit/cvrag/pkg/extract"
)

// Extractor extracts plain text from PDF bytes.
type Extractor struct{}

// NewExtractor creates a PDF text extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses data as a PDF and returns its plain-text content.
// A corrupt or unparseable file fails with extract.ErrExtraction.
func (e *Extractor) Extract(_ context.Context, data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: opening pdf: %v", extract.ErrExtraction, err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("%w: reading pdf text: %v", extract.ErrExtraction, err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("%w: buffering pdf text: %v", extract.ErrExtraction, err)
	}

	return buf.String(), nil
}

var _ extract.Extractor = (*Extractor)(nil)
