package ollama_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/recruitkit/cvrag/pkg/generate"
	"github.com/recruitkit/cvrag/pkg/generate/ollama"
)

func TestOllamaGenerator(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Ollama Generator Suite")
}

var _ = Describe("Generator", func() {
	It("returns the response text verbatim", func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			Expect(r.URL.Path).To(Equal("/api/generate"))

			var req map[string]any
			Expect(json.NewDecoder(r.Body).Decode(&req)).To(Succeed())
			Expect(req["stream"]).To(BeFalse())
			Expect(req["prompt"]).To(ContainSubstring("QUESTION"))

			json.NewEncoder(w).Encode(map[string]any{
				"response": "The candidate knows Go and Rust.",
				"done":     true,
			})
		}))
		defer srv.Close()

		g, err := ollama.NewGenerator(ollama.GeneratorConfig{BaseURL: srv.URL})
		Expect(err).NotTo(HaveOccurred())

		answer, err := g.Generate(context.Background(), "CONTEXT...\nQUESTION: languages?")
		Expect(err).NotTo(HaveOccurred())
		Expect(answer).To(Equal("The candidate knows Go and Rust."))
	})

	It("fails with ErrGeneration on a non-200 response", func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		g, err := ollama.NewGenerator(ollama.GeneratorConfig{BaseURL: srv.URL})
		Expect(err).NotTo(HaveOccurred())

		_, err = g.Generate(context.Background(), "prompt")
		Expect(err).To(MatchError(generate.ErrGeneration))
	})
})
