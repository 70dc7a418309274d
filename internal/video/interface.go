package video

import (
	"context"

	"github.com/nguyentantai21042004/pagecast/internal/models"
)

// Synthesizer renders pages into narrated video segments.
type Synthesizer interface {
	// Synthesize encodes one page. Empty text yields a short silent segment.
	Synthesize(ctx context.Context, page models.PageRecord, summaryText string) (models.Segment, error)
	// SynthesizeAll encodes every page in parallel and returns the segments
	// in page order. Pages missing from summaries get silence.
	SynthesizeAll(ctx context.Context, pages []models.PageRecord, summaries map[int]string) ([]models.Segment, error)
}

// Assembler joins segments into the final video.
type Assembler interface {
	Assemble(ctx context.Context, segments []models.Segment, outputPath string) (models.FinalVideo, error)
}
