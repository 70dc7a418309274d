package processor

import (
	"context"

	"github.com/nguyentantai21042004/pagecast/internal/models"
)

// Processor drives a document through the pipeline.
type Processor interface {
	// Process renders, reads, summarizes and narrates one PDF into
	// <output>/<name>/<name>.mp4.
	Process(ctx context.Context, pdfPath string) error
	// Assemble rebuilds a video from an existing images folder and summary
	// file. Pages missing from the summary are narrated with silence.
	Assemble(ctx context.Context, imagesDir, summaryPath, outputPath string) (models.FinalVideo, error)
	// Archive moves a processed PDF into the archive folder.
	Archive(ctx context.Context, pdfPath string) error
}
