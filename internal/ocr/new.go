package ocr

import (
	"github.com/nguyentantai21042004/pagecast/internal/logger"
)

type implExtractor struct {
	languages []string
	logger    logger.Logger
	recognize func(imagePath string, languages []string) (string, error)
}

// New creates a tesseract-backed Extractor. languages are tesseract codes
// such as "eng" or "eng+vie".
func New(languages []string, log logger.Logger) Extractor {
	return &implExtractor{
		languages: languages,
		logger:    log,
		recognize: tesseract,
	}
}
