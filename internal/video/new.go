package video

import (
	"github.com/nguyentantai21042004/pagecast/internal/config"
	"github.com/nguyentantai21042004/pagecast/internal/logger"
	"github.com/nguyentantai21042004/pagecast/internal/speech"
	"github.com/nguyentantai21042004/pagecast/pkg/executor"
)

type implSynthesizer struct {
	workDir  string
	cfg      config.FFmpegConfig
	parallel int
	executor executor.Executor
	tts      speech.Synthesizer
	logger   logger.Logger
}

// NewSynthesizer creates a Synthesizer writing audio and segments into workDir.
func NewSynthesizer(workDir string, cfg *config.Config, exec executor.Executor, tts speech.Synthesizer, log logger.Logger) Synthesizer {
	parallel := cfg.Performance.MaxConcurrent
	if parallel <= 0 {
		parallel = 1
	}
	return &implSynthesizer{
		workDir:  workDir,
		cfg:      cfg.FFmpeg,
		parallel: parallel,
		executor: exec,
		tts:      tts,
		logger:   log,
	}
}

type implAssembler struct {
	workDir  string
	cfg      config.FFmpegConfig
	executor executor.Executor
	logger   logger.Logger
}

// NewAssembler creates an Assembler that keeps its concat manifest in workDir.
func NewAssembler(workDir string, cfg *config.Config, exec executor.Executor, log logger.Logger) Assembler {
	return &implAssembler{
		workDir:  workDir,
		cfg:      cfg.FFmpeg,
		executor: exec,
		logger:   log,
	}
}
