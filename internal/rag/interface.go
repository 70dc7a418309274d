package rag

import (
	"context"

	"github.com/nguyentantai21042004/pagecast/internal/models"
)

// Index is a per-run similarity index over page OCR texts.
// Build must complete before any Query; after that the index is read-only.
type Index interface {
	Build(ctx context.Context, records []models.PageRecord) error
	Query(ctx context.Context, text string, k int) ([]string, error)
}
