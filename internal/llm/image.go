package llm

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/pagecast/internal/logger"
	"github.com/nguyentantai21042004/pagecast/internal/models"
)

// DefaultBlankThreshold is the mean channel brightness (0-255) above which a
// page counts as blank.
const DefaultBlankThreshold = 250.0

// sampleSide bounds how many pixels per axis are sampled for the brightness mean.
const sampleSide = 768

type blankFilter struct {
	next      Captioner
	threshold float64
	logger    logger.Logger
}

// NewBlankFilter wraps a Captioner so near-white pages short-circuit to the
// blank-image sentinel without a model call.
func NewBlankFilter(next Captioner, threshold float64, log logger.Logger) Captioner {
	if threshold <= 0 {
		threshold = DefaultBlankThreshold
	}
	return &blankFilter{next: next, threshold: threshold, logger: log}
}

func (f *blankFilter) Caption(ctx context.Context, imagePath string) (string, error) {
	mean, err := meanBrightness(imagePath)
	if err != nil {
		return "", fmt.Errorf("inspect image: %w", err)
	}
	if mean > f.threshold {
		f.logger.Warn(ctx, "Skipping blank image: %s", imagePath)
		return models.SentinelBlankImage, nil
	}
	return f.next.Caption(ctx, imagePath)
}

func meanBrightness(path string) (float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return 0, err
	}

	b := img.Bounds()
	stepX := max(1, b.Dx()/sampleSide)
	stepY := max(1, b.Dy()/sampleSide)

	var sum float64
	var n int
	for y := b.Min.Y; y < b.Max.Y; y += stepY {
		for x := b.Min.X; x < b.Max.X; x += stepX {
			r, g, bl, _ := img.At(x, y).RGBA()
			sum += float64(r>>8+g>>8+bl>>8) / 3
			n++
		}
	}
	if n == 0 {
		return 0, fmt.Errorf("image %s has no pixels", path)
	}
	return sum / float64(n), nil
}

func mimeType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	default:
		return "image/png"
	}
}
