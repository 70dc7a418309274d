package llm

import "context"

// Captioner describes a page image in a short sentence.
type Captioner interface {
	Caption(ctx context.Context, imagePath string) (string, error)
}

// Generator completes a text prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Embedder maps texts to vectors, one per input, in input order.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

const captionPrompt = "Describe this document page in one short sentence: its layout, figures and visual elements."

// emptyPlaceholder stands in for blank OCR text; embedding APIs reject empty input.
const emptyPlaceholder = "(empty page)"

func nonEmpty(texts []string) []string {
	out := make([]string, len(texts))
	for i, t := range texts {
		if t == "" {
			t = emptyPlaceholder
		}
		out[i] = t
	}
	return out
}
