package rag_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/recruitkit/cvrag/pkg/eventstream"
	"github.com/recruitkit/cvrag/pkg/rag"
	testutils "github.com/recruitkit/cvrag/pkg/utils/test"
)

var _ = Describe("Ingestor", func() {
	var (
		fetcher   *testutils.MockFetcher
		extractor *testutils.MockExtractor
		embedder  *testutils.MockEmbedder
		store     *testutils.MockVectorDriver
	)

	event := func(name string) *eventstream.ObjectFinalizedEvent {
		return &eventstream.ObjectFinalizedEvent{
			SchemaVersion: eventstream.SchemaVersionV1,
			EventType:     eventstream.EventTypeObjectFinalized,
			Bucket:        "cvs",
			Name:          name,
		}
	}

	newIngestor := func() *rag.Ingestor {
		ingestor, err := rag.NewIngestor(rag.IngestorConfig{
			Fetcher:      fetcher,
			Extractor:    extractor,
			Embedder:     embedder,
			VectorDriver: store,
		})
		Expect(err).NotTo(HaveOccurred())
		return ingestor
	}

	BeforeEach(func() {
		fetcher = testutils.NewMockFetcher()
		fetcher.Put("cvs", "jane.pdf", []byte("%PDF-1.4 raw bytes"))
		extractor = testutils.NewMockExtractor("Experienced engineer.\n\nSkills: Go, Rust.")
		embedder = testutils.NewMockEmbedder()
		store = testutils.NewMockVectorDriver()
	})

	It("indexes one record per chunk with the declared dimensionality", func() {
		result, err := newIngestor().Ingest(context.Background(), event("jane.pdf"))

		Expect(err).NotTo(HaveOccurred())
		Expect(result.Status).To(Equal(rag.StatusCompleted))
		Expect(result.Chunks).To(Equal(2))

		docs := store.Documents()
		Expect(docs).To(HaveLen(2))
		texts := []string{docs[0].Text, docs[1].Text}
		Expect(texts).To(ConsistOf("Experienced engineer.", "Skills: Go, Rust."))
		for _, doc := range docs {
			Expect(doc.Embedding).To(HaveLen(3))
			Expect(doc.Source).To(Equal("jane.pdf"))
			Expect(doc.ID).NotTo(BeEmpty())
		}
	})

	It("persists all records in a single batch", func() {
		_, err := newIngestor().Ingest(context.Background(), event("jane.pdf"))

		Expect(err).NotTo(HaveOccurred())
		Expect(store.AddBatches()).To(Equal(1))
	})

	It("gives each chunk a distinct embedding call", func() {
		embedder.Embeddings["Experienced engineer."] = []float32{1, 0, 0}
		embedder.Embeddings["Skills: Go, Rust."] = []float32{0, 1, 0}

		_, err := newIngestor().Ingest(context.Background(), event("jane.pdf"))

		Expect(err).NotTo(HaveOccurred())
		Expect(embedder.Calls()).To(ConsistOf("Experienced engineer.", "Skills: Go, Rust."))

		docs := store.Documents()
		Expect(docs[0].Embedding).NotTo(Equal(docs[1].Embedding))
	})

	It("skips objects without the supported suffix", func() {
		result, err := newIngestor().Ingest(context.Background(), event("notes.txt"))

		Expect(err).NotTo(HaveOccurred())
		Expect(result.Status).To(Equal(rag.StatusSkipped))
		Expect(store.Documents()).To(BeEmpty())
		Expect(embedder.Calls()).To(BeEmpty())
	})

	It("accepts the suffix case-insensitively", func() {
		fetcher.Put("cvs", "JANE.PDF", []byte("bytes"))

		result, err := newIngestor().Ingest(context.Background(), event("JANE.PDF"))

		Expect(err).NotTo(HaveOccurred())
		Expect(result.Status).To(Equal(rag.StatusCompleted))
	})

	It("skips documents that produce zero chunks", func() {
		extractor.Text = "   \n\n  "

		result, err := newIngestor().Ingest(context.Background(), event("jane.pdf"))

		Expect(err).NotTo(HaveOccurred())
		Expect(result.Status).To(Equal(rag.StatusSkipped))
		Expect(store.Documents()).To(BeEmpty())
	})

	It("fails when the object cannot be fetched", func() {
		result, err := newIngestor().Ingest(context.Background(), event("missing.pdf"))

		Expect(err).To(HaveOccurred())
		Expect(result.Status).To(Equal(rag.StatusFailed))
		Expect(store.Documents()).To(BeEmpty())
	})

	It("fails when extraction fails, persisting nothing", func() {
		extractor.Fail = true

		result, err := newIngestor().Ingest(context.Background(), event("jane.pdf"))

		Expect(err).To(HaveOccurred())
		Expect(result.Status).To(Equal(rag.StatusFailed))
		Expect(store.Documents()).To(BeEmpty())
	})

	It("persists nothing when any chunk's embedding fails", func() {
		embedder.FailOn = "Skills: Go, Rust."

		result, err := newIngestor().Ingest(context.Background(), event("jane.pdf"))

		Expect(err).To(HaveOccurred())
		Expect(result.Status).To(Equal(rag.StatusFailed))
		Expect(store.Documents()).To(BeEmpty())
		Expect(store.AddBatches()).To(BeZero())
	})

	It("fails when the batch upsert fails", func() {
		store.FailAdd = true

		result, err := newIngestor().Ingest(context.Background(), event("jane.pdf"))

		Expect(err).To(HaveOccurred())
		Expect(result.Status).To(Equal(rag.StatusFailed))
	})

	It("fails on a nil event", func() {
		result, err := newIngestor().Ingest(context.Background(), nil)

		Expect(err).To(MatchError(eventstream.ErrNilEvent))
		Expect(result.Status).To(Equal(rag.StatusFailed))
	})

	Describe("Handler", func() {
		It("treats skips as success and failures as errors", func() {
			handler := newIngestor().Handler()

			Expect(handler(context.Background(), event("notes.txt"))).To(Succeed())

			extractor.Fail = true
			Expect(handler(context.Background(), event("jane.pdf"))).NotTo(Succeed())
		})
	})
})
