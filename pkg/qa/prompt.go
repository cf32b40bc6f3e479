package qa

import (
	"strings"

	"ai-lecture-notes-be/pkg/budget"
)

// BuildPrompt assembles the grounded question prompt.
func BuildPrompt(ctx budget.Context, question string) string {
	var prompt strings.Builder

	prompt.WriteString("You are an Academic Assistant for a student.\n")
	prompt.WriteString("You have access to the following context:\n\n")

	prompt.WriteString("LECTURE NOTES:\n")
	prompt.WriteString(ctx.Notes)
	prompt.WriteString("\n\n")

	prompt.WriteString("LECTURE TRANSCRIPT:\n")
	prompt.WriteString(ctx.Transcript)
	prompt.WriteString("\n\n")

	prompt.WriteString("USER UPLOADED RESOURCES:\n")
	prompt.WriteString(ctx.Resources)
	prompt.WriteString("\n\n")

	prompt.WriteString("Student Question: ")
	prompt.WriteString(question)
	prompt.WriteString("\n\n")

	prompt.WriteString("INSTRUCTIONS:\n")
	prompt.WriteString("1. Answer the question accurately based ONLY on the provided context.\n")
	prompt.WriteString("2. Be concise but educational.\n")
	prompt.WriteString("3. ALWAYS cite your source using format like \"[Lecture]\", \"[Notes: Section Title]\", or \"[Resource: Title]\".\n")
	prompt.WriteString("4. If the answer is not in the context, say so politely.\n")

	return prompt.String()
}
