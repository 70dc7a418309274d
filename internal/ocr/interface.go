package ocr

import (
	"context"

	"github.com/nguyentantai21042004/pagecast/internal/models"
)

// Extractor reads the text off rendered page images.
type Extractor interface {
	// ExtractAll fills OCRText for every page. A page that cannot be read
	// gets the OCR-failed sentinel instead of aborting the run.
	ExtractAll(ctx context.Context, pages []models.PageRecord) ([]models.PageRecord, error)
}
