package rag_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/recruitkit/cvrag/pkg/rag"
)

var _ = Describe("BuildPrompt", func() {
	It("orders instruction, context, then question", func() {
		prompt := rag.BuildPrompt([]string{"excerpt one", "excerpt two"}, "the question")

		instruction := strings.Index(prompt, "expert HR assistant")
		context := strings.Index(prompt, "excerpt one")
		question := strings.Index(prompt, "QUESTION: the question")

		Expect(instruction).To(BeNumerically(">=", 0))
		Expect(context).To(BeNumerically(">", instruction))
		Expect(question).To(BeNumerically(">", context))
	})

	It("separates excerpts with the context separator", func() {
		prompt := rag.BuildPrompt([]string{"a", "b"}, "q")

		Expect(prompt).To(ContainSubstring("a" + rag.ContextSeparator + "b"))
	})

	It("keeps the don't-know instruction with empty context", func() {
		prompt := rag.BuildPrompt(nil, "q")

		Expect(prompt).To(ContainSubstring("state that you cannot find the information"))
		Expect(prompt).To(ContainSubstring("QUESTION: q"))
	})
})
