package supportanswer

import (
	"fmt"
	"strings"

	"github.com/lexora-cloud/lexsearch/internal/domain/support"
)

// answerPrompt binds the generated answer to the retrieved context. The
// formatting contract keeps store-policy answers scannable.
const answerPrompt = `You answer customer support questions for an online store.

Rules:
- Answer ONLY from the numbered context below. If the context does not
  contain the answer, say you don't have that information and suggest
  contacting support. Never invent policies, numbers, or dates.
- When comparing two or more named options, present them as a markdown table.
- Use bullet points for steps and lists.
- Put numbers, amounts, and dates in **bold**.
- End with "Sources: [n]" citing the numbered context entries you used.`

// buildContext concatenates the retrieved chunks into a numbered, titled
// grounding block.
func buildContext(question string, chunks []support.Chunk) string {
	var b strings.Builder
	b.WriteString("Context:\n")
	for i, c := range chunks {
		fmt.Fprintf(&b, "[%d] %s\n%s\n\n", i+1, c.Title(), c.Content())
	}
	b.WriteString("Question: ")
	b.WriteString(question)
	return b.String()
}
