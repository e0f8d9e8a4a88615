// Package chunker splits extracted document text into retrieval-sized units.
//
// Chunking is paragraph-level: a blank line is the delimiter. CVs are short,
// structured documents whose paragraph boundaries roughly align with semantic
// sections (experience entries, skills blocks), so paragraph chunks are a
// reasonable retrieval target without overlap.
package chunker

import "strings"

// Delimiter separates paragraphs in extracted document text.
const Delimiter = "\n\n"

// Chunk is a bounded unit of document text used as the atomic retrieval target.
type Chunk struct {
	// Index is the zero-based position of the chunk within its document.
	Index int

	// Text is the trimmed paragraph text. Never empty.
	Text string

	// Source identifies the document the chunk came from (storage path).
	Source string
}

// Split breaks text into paragraph chunks attributed to source.
// Each segment is trimmed of surrounding whitespace; empty segments are
// dropped. Returns nil for text with no non-empty paragraphs.
func Split(text, source string) []Chunk {
	var chunks []Chunk
	for _, segment := range strings.Split(text, Delimiter) {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		chunks = append(chunks, Chunk{
			Index:  len(chunks),
			Text:   segment,
			Source: source,
		})
	}
	return chunks
}
