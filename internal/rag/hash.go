package rag

import (
	"context"
	"hash/fnv"
	"strings"
	"unicode"

	"github.com/nguyentantai21042004/pagecast/internal/llm"
)

// DefaultHashDims is the vector width of the hashing embedder.
const DefaultHashDims = 512

type hashEmbedder struct {
	dims int
}

// NewHashEmbedder returns a local bag-of-words embedder using signed feature
// hashing. It needs no network access and is deterministic.
func NewHashEmbedder(dims int) llm.Embedder {
	if dims <= 0 {
		dims = DefaultHashDims
	}
	return &hashEmbedder{dims: dims}
}

func (h *hashEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = h.vector(t)
	}
	return out, nil
}

func (h *hashEmbedder) vector(text string) []float32 {
	v := make([]float32, h.dims)
	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	for _, tok := range tokens {
		f := fnv.New64a()
		_, _ = f.Write([]byte(tok))
		sum := f.Sum64()
		idx := int(sum % uint64(h.dims))
		if sum&(1<<63) != 0 {
			v[idx]--
		} else {
			v[idx]++
		}
	}
	return v
}
