package summarizer

import (
	"context"
	"time"

	"github.com/nguyentantai21042004/pagecast/internal/models"
	"github.com/nguyentantai21042004/pagecast/internal/rag"
)

// Summarizer turns page records into per-page summaries.
type Summarizer interface {
	// Summarize captions, grounds and summarizes one page. It never fails:
	// collaborator errors come back as sentinel text with a non-OK status.
	Summarize(ctx context.Context, page models.PageRecord, useRetrieval bool) models.SummaryRecord
	// RunAll summarizes every page concurrently, bounding each page by timeout,
	// and returns exactly one record per page sorted by page number.
	RunAll(ctx context.Context, pages []models.PageRecord, useRetrieval bool, timeout time.Duration) []models.SummaryRecord
	// WithIndex returns a Summarizer that retrieves from index. Model handles
	// and their concurrency bounds stay shared with the receiver.
	WithIndex(index rag.Index) Summarizer
}
