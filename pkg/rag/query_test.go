package rag_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/recruitkit/cvrag/pkg/rag"
	testutils "github.com/recruitkit/cvrag/pkg/utils/test"
	"github.com/recruitkit/cvrag/pkg/vector"
)

var _ = Describe("Querier", func() {
	var (
		embedder  *testutils.MockEmbedder
		store     *testutils.MockVectorDriver
		generator *testutils.MockGenerator
	)

	newQuerier := func() *rag.Querier {
		querier, err := rag.NewQuerier(rag.QuerierConfig{
			Embedder:     embedder,
			VectorDriver: store,
			Generator:    generator,
		})
		Expect(err).NotTo(HaveOccurred())
		return querier
	}

	BeforeEach(func() {
		embedder = testutils.NewMockEmbedder()
		store = testutils.NewMockVectorDriver()
		store.Results = []vector.QueryResult{
			{Document: vector.Document{Text: "Experienced engineer.", Source: "jane.pdf"}, Score: 0.9},
			{Document: vector.Document{Text: "Skills: Go, Rust.", Source: "jane.pdf"}, Score: 0.8},
		}
		generator = testutils.NewMockGenerator("The candidate knows Go and Rust.")
	})

	It("returns the generator's output unmodified", func() {
		answer, err := newQuerier().Answer(context.Background(), "What languages does the candidate know?")

		Expect(err).NotTo(HaveOccurred())
		Expect(answer).To(Equal("The candidate knows Go and Rust."))
	})

	It("issues exactly one embed, one search, and one generate call", func() {
		_, err := newQuerier().Answer(context.Background(), "What languages does the candidate know?")

		Expect(err).NotTo(HaveOccurred())
		Expect(embedder.Calls()).To(HaveLen(1))
		Expect(embedder.Calls()[0]).To(Equal("What languages does the candidate know?"))
		Expect(store.Queries()).To(Equal(1))
		Expect(generator.Prompts()).To(HaveLen(1))
	})

	It("includes every retrieved text and the literal question in the prompt", func() {
		_, err := newQuerier().Answer(context.Background(), "What languages does the candidate know?")

		Expect(err).NotTo(HaveOccurred())
		prompt := generator.Prompts()[0]
		Expect(prompt).To(ContainSubstring("Experienced engineer."))
		Expect(prompt).To(ContainSubstring("Skills: Go, Rust."))
		Expect(prompt).To(ContainSubstring("QUESTION: What languages does the candidate know?"))
	})

	It("rejects an empty query before any external call", func() {
		_, err := newQuerier().Answer(context.Background(), "")

		Expect(err).To(MatchError(rag.ErrInvalidArgument))
		Expect(embedder.Calls()).To(BeEmpty())
		Expect(store.Queries()).To(BeZero())
		Expect(generator.Prompts()).To(BeEmpty())
	})

	It("rejects a whitespace-only query", func() {
		_, err := newQuerier().Answer(context.Background(), "   \t ")

		Expect(err).To(MatchError(rag.ErrInvalidArgument))
		Expect(embedder.Calls()).To(BeEmpty())
	})

	It("still prompts with the instruction and question when retrieval is empty", func() {
		store.Results = nil

		answer, err := newQuerier().Answer(context.Background(), "Anything on file?")

		Expect(err).NotTo(HaveOccurred())
		Expect(answer).To(Equal("The candidate knows Go and Rust."))

		prompt := generator.Prompts()[0]
		Expect(prompt).To(ContainSubstring("Based ONLY on the following CV excerpts"))
		Expect(prompt).To(ContainSubstring("QUESTION: Anything on file?"))
	})

	It("fails when the search fails, without calling the generator", func() {
		store.FailQuery = true

		_, err := newQuerier().Answer(context.Background(), "question")

		Expect(err).To(MatchError(vector.ErrConnection))
		Expect(generator.Prompts()).To(BeEmpty())
	})

	It("surfaces generation failures instead of synthesizing an answer", func() {
		generator.Fail = true

		answer, err := newQuerier().Answer(context.Background(), "question")

		Expect(err).To(HaveOccurred())
		Expect(answer).To(BeEmpty())
	})
})
