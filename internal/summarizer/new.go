package summarizer

import (
	"github.com/nguyentantai21042004/pagecast/internal/llm"
	"github.com/nguyentantai21042004/pagecast/internal/logger"
	"github.com/nguyentantai21042004/pagecast/internal/rag"
)

// DefaultRetrievalK is how many neighbour pages ground each prompt.
const DefaultRetrievalK = 3

// Options tunes summarization.
type Options struct {
	RetrievalK int
	// HardCancel cancels a page's model calls when its timeout fires. When
	// false the call runs to completion and its result is discarded.
	HardCancel bool
	// ModelConcurrency caps in-flight calls per model; 1 serializes them.
	ModelConcurrency int
}

type implSummarizer struct {
	captioner llm.Captioner
	generator llm.Generator
	index     rag.Index
	opts      Options
	logger    logger.Logger

	captionSem  *semaphore
	generateSem *semaphore
}

// New creates a Summarizer. index may be nil when retrieval is never used.
func New(captioner llm.Captioner, generator llm.Generator, index rag.Index, opts Options, log logger.Logger) Summarizer {
	if opts.RetrievalK <= 0 {
		opts.RetrievalK = DefaultRetrievalK
	}
	if opts.ModelConcurrency <= 0 {
		opts.ModelConcurrency = 1
	}

	return &implSummarizer{
		captioner:   captioner,
		generator:   generator,
		index:       index,
		opts:        opts,
		logger:      log,
		captionSem:  newSemaphore(opts.ModelConcurrency),
		generateSem: newSemaphore(opts.ModelConcurrency),
	}
}

func (s *implSummarizer) WithIndex(index rag.Index) Summarizer {
	run := *s
	run.index = index
	return &run
}
