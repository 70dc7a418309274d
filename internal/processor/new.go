package processor

import (
	"github.com/nguyentantai21042004/pagecast/internal/config"
	"github.com/nguyentantai21042004/pagecast/internal/llm"
	"github.com/nguyentantai21042004/pagecast/internal/logger"
	"github.com/nguyentantai21042004/pagecast/internal/ocr"
	"github.com/nguyentantai21042004/pagecast/internal/rasterizer"
	"github.com/nguyentantai21042004/pagecast/internal/speech"
	"github.com/nguyentantai21042004/pagecast/internal/summarizer"
	"github.com/nguyentantai21042004/pagecast/pkg/executor"
)

// Dependencies are the collaborators a Processor drives. Rasterizer, OCR,
// Embedder and Summarizer are only used by Process; Assemble needs just
// Speech and Executor. A nil Embedder disables retrieval.
type Dependencies struct {
	Rasterizer rasterizer.Rasterizer
	OCR        ocr.Extractor
	Embedder   llm.Embedder
	Summarizer summarizer.Summarizer
	Speech     speech.Synthesizer
	Executor   executor.Executor
}

type implProcessor struct {
	cfg        *config.Config
	rasterizer rasterizer.Rasterizer
	ocr        ocr.Extractor
	embedder   llm.Embedder
	summarizer summarizer.Summarizer
	speech     speech.Synthesizer
	executor   executor.Executor
	logger     logger.Logger
}

// New creates a new Processor instance
func New(cfg *config.Config, deps Dependencies, log logger.Logger) Processor {
	return &implProcessor{
		cfg:        cfg,
		rasterizer: deps.Rasterizer,
		ocr:        deps.OCR,
		embedder:   deps.Embedder,
		summarizer: deps.Summarizer,
		speech:     deps.Speech,
		executor:   deps.Executor,
		logger:     log,
	}
}
