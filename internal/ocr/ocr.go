package ocr

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nguyentantai21042004/pagecast/internal/models"
	"github.com/otiai10/gosseract/v2"
)

func (e *implExtractor) ExtractAll(ctx context.Context, pages []models.PageRecord) ([]models.PageRecord, error) {
	start := time.Now()
	out := make([]models.PageRecord, len(pages))
	failed := 0

	for i, page := range pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		text, err := e.recognize(page.ImagePath, e.languages)
		if err != nil {
			e.logger.Warn(ctx, "OCR failed for page %d: %v", page.PageNumber, err)
			text = models.SentinelOCRFailed
			failed++
		}

		page.OCRText = strings.TrimSpace(text)
		out[i] = page
		e.logger.Debug(ctx, "Page %d OCR: %d chars", page.PageNumber, len(page.OCRText))
	}

	e.logger.Info(ctx, "OCR finished for %d pages (%d failed) in %s", len(pages), failed, time.Since(start).Round(time.Millisecond))
	return out, nil
}

// tesseract runs one image through a fresh client; clients are not safe for
// concurrent use.
func tesseract(imagePath string, languages []string) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if len(languages) > 0 {
		if err := client.SetLanguage(languages...); err != nil {
			return "", fmt.Errorf("set language: %w", err)
		}
	}
	if err := client.SetImage(imagePath); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("tesseract: %w", err)
	}
	return text, nil
}
