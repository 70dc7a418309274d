package rag

import (
	"github.com/nguyentantai21042004/pagecast/internal/llm"
	"github.com/nguyentantai21042004/pagecast/internal/logger"
)

// New creates an in-memory Index backed by the given embedder.
func New(embedder llm.Embedder, log logger.Logger) Index {
	return &implIndex{
		embedder: embedder,
		logger:   log,
	}
}
