package chunker_test

import (
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/recruitkit/cvrag/pkg/chunker"
)

func TestChunker(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Chunker Suite")
}

var _ = Describe("Split", func() {
	It("splits paragraphs on blank lines", func() {
		chunks := chunker.Split("Experienced engineer.\n\nSkills: Go, Rust.", "cvs/jane.pdf")

		Expect(chunks).To(HaveLen(2))
		Expect(chunks[0].Text).To(Equal("Experienced engineer."))
		Expect(chunks[1].Text).To(Equal("Skills: Go, Rust."))
	})

	It("assigns ordered indices and provenance", func() {
		chunks := chunker.Split("one\n\ntwo\n\nthree", "cvs/a.pdf")

		for i, ch := range chunks {
			Expect(ch.Index).To(Equal(i))
			Expect(ch.Source).To(Equal("cvs/a.pdf"))
		}
	})

	It("drops empty segments", func() {
		chunks := chunker.Split("first\n\n\n\n   \n\nsecond", "cvs/a.pdf")

		Expect(chunks).To(HaveLen(2))
		Expect(chunks[0].Text).To(Equal("first"))
		Expect(chunks[1].Text).To(Equal("second"))
	})

	It("trims surrounding whitespace from each chunk", func() {
		chunks := chunker.Split("  padded  \n\n\ttabbed\t", "cvs/a.pdf")

		Expect(chunks[0].Text).To(Equal("padded"))
		Expect(chunks[1].Text).To(Equal("tabbed"))
	})

	It("returns nil for empty input", func() {
		Expect(chunker.Split("", "cvs/a.pdf")).To(BeNil())
		Expect(chunker.Split("   \n\n  ", "cvs/a.pdf")).To(BeNil())
	})

	It("recovers the original text up to surrounding whitespace when rejoined", func() {
		text := "Experienced engineer.\n\nSkills: Go, Rust.\n\nEducation: BSc."
		chunks := chunker.Split(text, "cvs/a.pdf")

		parts := make([]string, len(chunks))
		for i, ch := range chunks {
			parts[i] = ch.Text
		}
		Expect(strings.Join(parts, chunker.Delimiter)).To(Equal(text))
	})

	It("never returns a chunk that is empty after trimming", func() {
		chunks := chunker.Split("a\n\n \n\nb\n\n\n\nc", "cvs/a.pdf")

		for _, ch := range chunks {
			Expect(strings.TrimSpace(ch.Text)).NotTo(BeEmpty())
		}
	})
})
