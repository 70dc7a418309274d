package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/nguyentantai21042004/pagecast/internal/config"
	"github.com/nguyentantai21042004/pagecast/internal/llm"
	"github.com/nguyentantai21042004/pagecast/internal/logger"
	"github.com/nguyentantai21042004/pagecast/internal/ocr"
	"github.com/nguyentantai21042004/pagecast/internal/processor"
	"github.com/nguyentantai21042004/pagecast/internal/rag"
	"github.com/nguyentantai21042004/pagecast/internal/rasterizer"
	"github.com/nguyentantai21042004/pagecast/internal/speech"
	"github.com/nguyentantai21042004/pagecast/internal/summarizer"
	"github.com/nguyentantai21042004/pagecast/pkg/executor"
)

// app holds everything a command needs once config is loaded.
type app struct {
	cfg  *config.Config
	log  logger.Logger
	proc processor.Processor
}

// newApp loads config and wires the pipeline. Caption, text and embedding
// backends are only built when withModels is set; assemble runs without them.
func newApp(withModels bool) (*app, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	if err := ensureDirectories(cfg); err != nil {
		return nil, err
	}

	exec := executor.New()
	b := &backends{cfg: cfg, log: log}

	tts, err := b.speech(exec)
	if err != nil {
		return nil, err
	}

	deps := processor.Dependencies{
		Speech:   tts,
		Executor: exec,
	}
	if withModels {
		if err := b.addModels(&deps); err != nil {
			return nil, err
		}
	}

	return &app{cfg: cfg, log: log, proc: processor.New(cfg, deps, log)}, nil
}

// backends builds each provider at most once.
type backends struct {
	cfg *config.Config
	log logger.Logger

	gemini *llm.Gemini
	openai *llm.OpenAI
}

// addModels fills in everything Process needs on top of narration.
func (b *backends) addModels(deps *processor.Dependencies) error {
	captioner, err := b.captioner()
	if err != nil {
		return err
	}
	generator, err := b.generator()
	if err != nil {
		return err
	}
	embedder, err := b.embedder()
	if err != nil {
		return err
	}

	deps.Rasterizer = rasterizer.New(b.cfg.Render.DPI, b.log)
	deps.OCR = ocr.New(strings.Split(b.cfg.OCR.Language, "+"), b.log)
	deps.Embedder = embedder
	deps.Summarizer = summarizer.New(
		llm.NewBlankFilter(captioner, llm.DefaultBlankThreshold, b.log),
		generator,
		nil,
		summarizer.Options{
			RetrievalK:       b.cfg.Summarize.RetrievalK,
			HardCancel:       b.cfg.Summarize.HardCancel,
			ModelConcurrency: b.cfg.Summarize.ModelConcurrency,
		},
		b.log,
	)
	return nil
}

func (b *backends) geminiBackend() (*llm.Gemini, error) {
	if b.gemini == nil {
		g, err := llm.NewGemini(llm.GeminiOptions{
			APIKeys:        b.cfg.Gemini.APIKeys,
			Model:          b.cfg.Gemini.Model,
			VisionModel:    b.cfg.Gemini.VisionModel,
			EmbeddingModel: b.cfg.Gemini.EmbeddingModel,
		}, b.log)
		if err != nil {
			return nil, err
		}
		b.gemini = g
	}
	return b.gemini, nil
}

func (b *backends) openaiBackend() (*llm.OpenAI, error) {
	if b.openai == nil {
		o, err := llm.NewOpenAI(llm.OpenAIOptions{
			APIKey:         b.cfg.OpenAI.APIKey,
			BaseURL:        b.cfg.OpenAI.BaseURL,
			ChatModel:      b.cfg.OpenAI.ChatModel,
			VisionModel:    b.cfg.OpenAI.VisionModel,
			EmbeddingModel: b.cfg.OpenAI.EmbeddingModel,
		})
		if err != nil {
			return nil, err
		}
		b.openai = o
	}
	return b.openai, nil
}

func (b *backends) captioner() (llm.Captioner, error) {
	if b.cfg.Models.Caption == "openai" {
		return b.openaiBackend()
	}
	return b.geminiBackend()
}

func (b *backends) generator() (llm.Generator, error) {
	if b.cfg.Models.Text == "openai" {
		return b.openaiBackend()
	}
	return b.geminiBackend()
}

func (b *backends) embedder() (llm.Embedder, error) {
	switch b.cfg.Models.Embedding {
	case "openai":
		return b.openaiBackend()
	case "gemini":
		return b.geminiBackend()
	default:
		return rag.NewHashEmbedder(rag.DefaultHashDims), nil
	}
}

func (b *backends) speech(exec executor.Executor) (speech.Synthesizer, error) {
	if b.cfg.Speech.Provider == "command" {
		return speech.NewCommand(exec, b.cfg.Speech.Command, b.cfg.FFmpeg.Binary, b.cfg.Speech.CommandVoice, b.log), nil
	}
	if b.cfg.OpenAI.APIKey == "" {
		return nil, fmt.Errorf("speech: OPENAI_API_KEY is required for the openai provider")
	}
	cli := llm.NewOpenAIClient(b.cfg.OpenAI.APIKey, b.cfg.OpenAI.BaseURL)
	return speech.NewOpenAI(cli, b.cfg.Speech.Model, b.cfg.Speech.Voice, b.log), nil
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Work,
		cfg.Paths.Output,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
