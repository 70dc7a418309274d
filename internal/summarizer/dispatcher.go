package summarizer

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/nguyentantai21042004/pagecast/internal/models"
)

// RunAll fans Summarize out over pages. Retrieval is forced off for a
// single-page document.
func (s *implSummarizer) RunAll(ctx context.Context, pages []models.PageRecord, useRetrieval bool, timeout time.Duration) []models.SummaryRecord {
	if len(pages) <= 1 {
		useRetrieval = false
	}

	s.logger.Info(ctx, "Summarizing %d pages (retrieval: %t, timeout: %s)", len(pages), useRetrieval, timeout)

	results := make([]models.SummaryRecord, len(pages))
	var wg sync.WaitGroup

	for i, page := range pages {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = s.runWithTimeout(ctx, page, useRetrieval, timeout)
		}()
	}

	wg.Wait()

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].PageNumber < results[b].PageNumber
	})

	var timeouts, failures int
	for _, r := range results {
		switch r.Status {
		case models.StatusTimeout:
			timeouts++
		case models.StatusError:
			failures++
		}
	}
	s.logger.Info(ctx, "Summaries complete: %d ok, %d timed out, %d failed",
		len(results)-timeouts-failures, timeouts, failures)

	return results
}

// runWithTimeout bounds the wait on one page. The worker sends into a
// buffered channel so a completion after the deadline neither blocks nor
// reaches the already returned record.
func (s *implSummarizer) runWithTimeout(ctx context.Context, page models.PageRecord, useRetrieval bool, timeout time.Duration) models.SummaryRecord {
	workCtx := ctx
	if s.opts.HardCancel && timeout > 0 {
		var cancel context.CancelFunc
		workCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	done := make(chan models.SummaryRecord, 1)
	go func() {
		defer func() {
			if v := recover(); v != nil {
				s.logger.Error(ctx, "Page %d summarizer panicked: %v", page.PageNumber, v)
				done <- errorRecord(page.PageNumber, fmt.Sprintf("panic: %v", v))
			}
		}()
		done <- s.Summarize(workCtx, page, useRetrieval)
	}()

	var expired <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case rec := <-done:
		return rec
	case <-expired:
		s.logger.Error(ctx, "Page %d timed out after %s", page.PageNumber, timeout)
		return timeoutRecord(page.PageNumber, "timed out after "+timeout.String())
	case <-ctx.Done():
		return errorRecord(page.PageNumber, ctx.Err().Error())
	}
}
