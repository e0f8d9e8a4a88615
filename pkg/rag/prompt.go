package rag

import "strings"

const (
	// promptInstruction binds the model to the retrieved context. The
	// explicit "cannot find" clause defines the expected behavior when
	// retrieval comes back empty or irrelevant; the pipeline never
	// short-circuits on empty context itself.
	promptInstruction = "You are an expert HR assistant. Based ONLY on the following CV excerpts, " +
		"answer the user's question. If the context does not contain the answer, " +
		"state that you cannot find the information."

	// ContextSeparator separates retrieved excerpts within the prompt.
	ContextSeparator = "\n---\n"
)

// BuildPrompt assembles the generation prompt: the grounding instruction,
// the retrieved excerpts joined by ContextSeparator, then the literal
// question. The ordering is load-bearing; see promptInstruction.
func BuildPrompt(contexts []string, question string) string {
	var b strings.Builder
	b.WriteString(promptInstruction)
	b.WriteString("\n\nCONTEXT:\n")
	b.WriteString(strings.Join(contexts, ContextSeparator))
	b.WriteString("\n\nQUESTION: ")
	b.WriteString(question)
	return b.String()
}
