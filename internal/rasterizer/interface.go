package rasterizer

import (
	"context"

	"github.com/nguyentantai21042004/pagecast/internal/models"
)

// Rasterizer renders every page of a PDF to page_<N>.png.
type Rasterizer interface {
	// Rasterize writes the images into imagesDir and returns one record per
	// page, numbered from 1, with OCRText still empty.
	Rasterize(ctx context.Context, pdfPath, imagesDir string) ([]models.PageRecord, error)
}
