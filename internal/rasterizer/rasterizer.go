package rasterizer

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/gen2brain/go-fitz"
	"github.com/nguyentantai21042004/pagecast/internal/models"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

func (r *implRasterizer) Rasterize(ctx context.Context, pdfPath, imagesDir string) ([]models.PageRecord, error) {
	start := time.Now()

	pageCount, err := r.validate(pdfPath)
	if err != nil {
		return nil, err
	}
	r.logger.Info(ctx, "Rendering %d pages at %.0f DPI: %s", pageCount, r.dpi, pdfPath)

	if err := os.MkdirAll(imagesDir, 0755); err != nil {
		return nil, fmt.Errorf("create images dir: %w", err)
	}

	doc, err := fitz.New(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer doc.Close()

	n := doc.NumPage()
	if n == 0 {
		return nil, fmt.Errorf("%w: %s", models.ErrNoPages, pdfPath)
	}

	pages := make([]models.PageRecord, 0, n)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pageNumber := i + 1
		imagePath := filepath.Join(imagesDir, fmt.Sprintf("page_%d.png", pageNumber))
		if err := r.renderPage(doc, i, imagePath); err != nil {
			return nil, fmt.Errorf("render page %d: %w", pageNumber, err)
		}

		pages = append(pages, models.PageRecord{
			PageNumber: pageNumber,
			ImagePath:  imagePath,
		})
	}

	r.logger.Info(ctx, "Rendered %d pages in %s", len(pages), time.Since(start).Round(time.Millisecond))
	return pages, nil
}

// validate runs pdfcpu's relaxed validation and returns the page count.
func (r *implRasterizer) validate(pdfPath string) (int, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	if err := api.ValidateFile(pdfPath, conf); err != nil {
		return 0, fmt.Errorf("%w: %s: %v", models.ErrInvalidPDF, pdfPath, err)
	}

	count, err := api.PageCountFile(pdfPath)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", models.ErrInvalidPDF, pdfPath, err)
	}
	if count == 0 {
		return 0, fmt.Errorf("%w: %s", models.ErrNoPages, pdfPath)
	}
	return count, nil
}

func (r *implRasterizer) renderPage(doc *fitz.Document, index int, imagePath string) error {
	img, err := doc.ImageDPI(index, r.dpi)
	if err != nil {
		return err
	}

	f, err := os.Create(imagePath)
	if err != nil {
		return fmt.Errorf("create image: %w", err)
	}

	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	return f.Close()
}
