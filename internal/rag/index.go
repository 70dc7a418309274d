package rag

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/nguyentantai21042004/pagecast/internal/llm"
	"github.com/nguyentantai21042004/pagecast/internal/logger"
	"github.com/nguyentantai21042004/pagecast/internal/models"
)

type entry struct {
	text   string
	vector []float32
	norm   float64
}

type implIndex struct {
	embedder llm.Embedder
	logger   logger.Logger

	mu      sync.RWMutex
	entries []entry
}

// Build replaces the index contents with the OCR texts of records.
func (ix *implIndex) Build(ctx context.Context, records []models.PageRecord) error {
	texts := make([]string, len(records))
	for i, r := range records {
		texts[i] = r.OCRText
	}

	var vectors [][]float32
	if len(texts) > 0 {
		var err error
		vectors, err = ix.embedder.Embed(ctx, texts)
		if err != nil {
			return fmt.Errorf("embed page texts: %w", err)
		}
		if len(vectors) != len(texts) {
			return fmt.Errorf("embed page texts: got %d vectors for %d texts", len(vectors), len(texts))
		}
	}

	entries := make([]entry, len(texts))
	for i, t := range texts {
		entries[i] = entry{text: t, vector: vectors[i], norm: norm(vectors[i])}
	}

	ix.mu.Lock()
	ix.entries = entries
	ix.mu.Unlock()

	ix.logger.Debug(ctx, "Retrieval index built with %d entries", len(entries))
	return nil
}

// Query returns up to k indexed texts ordered by cosine similarity to text.
func (ix *implIndex) Query(ctx context.Context, text string, k int) ([]string, error) {
	ix.mu.RLock()
	entries := ix.entries
	ix.mu.RUnlock()

	if len(entries) == 0 || k <= 0 {
		return nil, nil
	}

	vecs, err := ix.embedder.Embed(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(vecs) != 1 {
		return nil, fmt.Errorf("embed query: got %d vectors", len(vecs))
	}
	q := vecs[0]
	qn := norm(q)

	type scored struct {
		idx   int
		score float64
	}
	results := make([]scored, len(entries))
	for i, e := range entries {
		results[i] = scored{idx: i, score: cosine(q, qn, e.vector, e.norm)}
	}
	// Ties keep page order.
	sort.SliceStable(results, func(a, b int) bool {
		return results[a].score > results[b].score
	})

	k = min(k, len(results))
	out := make([]string, k)
	for i := 0; i < k; i++ {
		out[i] = entries[results[i].idx].text
	}
	return out, nil
}

func norm(v []float32) float64 {
	var s float64
	for _, x := range v {
		s += float64(x) * float64(x)
	}
	return math.Sqrt(s)
}

func cosine(a []float32, an float64, b []float32, bn float64) float64 {
	if an == 0 || bn == 0 {
		return 0
	}
	n := min(len(a), len(b))
	var dot float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
	}
	return dot / (an * bn)
}
