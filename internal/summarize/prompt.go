package summarize

import (
	"fmt"
	"strings"
)

// systemInstruction is sent with every completion call. The no-added-facts
// clause is a prompting contract; the model's compliance is not verifiable
// here.
const systemInstruction = "You are a careful summarizer. Avoid adding facts not present."

// stagePrompt builds the per-chunk prompt. The positional line is included
// only when the input was actually split.
func stagePrompt(chunk TextChunk, style Style) string {
	var sb strings.Builder
	sb.WriteString(style.Instruction())
	if chunk.Total > 1 {
		fmt.Fprintf(&sb, "\n\n(Part %d of %d)", chunk.Index+1, chunk.Total)
	}
	sb.WriteString("\n\n---\n")
	sb.WriteString(chunk.Content)
	return sb.String()
}

// synthesisPrompt asks the model to merge ordered partial summaries into one
// result under the same style contract.
func synthesisPrompt(partials []PartialSummary, style Style) string {
	var sb strings.Builder
	sb.WriteString(style.Instruction())
	sb.WriteString("\nYou are given partial summaries of several parts of a longer text, in their original order.\n")
	sb.WriteString("Merge them into ONE cohesive summary. Eliminate redundancy and keep it tight.\n")
	sb.WriteString("\nPARTIAL SUMMARIES:\n")
	for _, p := range partials {
		sb.WriteString("- ")
		sb.WriteString(p.Text)
		sb.WriteByte('\n')
	}
	return strings.TrimSpace(sb.String())
}
