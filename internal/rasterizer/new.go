package rasterizer

import (
	"github.com/nguyentantai21042004/pagecast/internal/logger"
)

// DefaultDPI matches the resolution OCR works best at.
const DefaultDPI = 300

type implRasterizer struct {
	dpi    float64
	logger logger.Logger
}

// New creates a Rasterizer rendering at dpi.
func New(dpi float64, log logger.Logger) Rasterizer {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return &implRasterizer{
		dpi:    dpi,
		logger: log,
	}
}
