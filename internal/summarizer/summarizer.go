package summarizer

import (
	"context"
	"errors"
	"strings"

	"github.com/nguyentantai21042004/pagecast/internal/models"
)

// Summarize runs caption -> retrieval -> prompt -> generation for one page.
func (s *implSummarizer) Summarize(ctx context.Context, page models.PageRecord, useRetrieval bool) models.SummaryRecord {
	caption, err := s.caption(ctx, page.ImagePath)
	if err != nil {
		s.logger.Error(ctx, "Caption failed for page %d: %v", page.PageNumber, err)
		caption = models.SentinelError
	}

	ragContext := ""
	if useRetrieval && s.index != nil {
		chunks, err := s.index.Query(ctx, page.OCRText, s.opts.RetrievalK)
		if err != nil {
			s.logger.Warn(ctx, "Retrieval failed for page %d, continuing without context: %v", page.PageNumber, err)
		} else {
			ragContext = strings.Join(chunks, "\n")
		}
	}

	prompt := BuildPrompt(caption, ragContext, page.OCRText)
	s.logger.Debug(ctx, "Page %d prompt: %d chars (context: %t)", page.PageNumber, len(prompt), ragContext != "")

	text, err := s.generate(ctx, prompt)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return timeoutRecord(page.PageNumber, err.Error())
		}
		s.logger.Error(ctx, "Generation failed for page %d: %v", page.PageNumber, err)
		return errorRecord(page.PageNumber, err.Error())
	}

	return models.SummaryRecord{
		PageNumber: page.PageNumber,
		Text:       strings.TrimSpace(text),
		Status:     models.StatusOK,
	}
}

func (s *implSummarizer) caption(ctx context.Context, imagePath string) (string, error) {
	if err := s.captionSem.acquire(ctx); err != nil {
		return "", err
	}
	defer s.captionSem.release()
	return s.captioner.Caption(ctx, imagePath)
}

func (s *implSummarizer) generate(ctx context.Context, prompt string) (string, error) {
	if err := s.generateSem.acquire(ctx); err != nil {
		return "", err
	}
	defer s.generateSem.release()
	return s.generator.Generate(ctx, prompt)
}

func timeoutRecord(page int, reason string) models.SummaryRecord {
	return models.SummaryRecord{
		PageNumber: page,
		Text:       models.SentinelTimeout,
		Status:     models.StatusTimeout,
		Reason:     reason,
	}
}

func errorRecord(page int, reason string) models.SummaryRecord {
	return models.SummaryRecord{
		PageNumber: page,
		Text:       models.SentinelError,
		Status:     models.StatusError,
		Reason:     reason,
	}
}
