package summarizer

import "strings"

const (
	captionLabel  = "This information is about: "
	contextLabel  = "RAG context:\n"
	contentLabel  = "Page content:\n"
	instruction   = "In summary:"
	promptDivider = "\n\n"
)

// BuildPrompt assembles the generation prompt from its parts in fixed order:
// caption line, retrieval block, page text, instruction. Empty parts are
// dropped and the rest keep their relative order.
func BuildPrompt(caption, ragContext, ocrText string) string {
	var parts []string
	if strings.TrimSpace(caption) != "" {
		parts = append(parts, captionLabel+caption)
	}
	if strings.TrimSpace(ragContext) != "" {
		parts = append(parts, contextLabel+ragContext)
	}
	if strings.TrimSpace(ocrText) != "" {
		parts = append(parts, contentLabel+ocrText)
	}
	parts = append(parts, instruction)
	return strings.Join(parts, promptDivider)
}
