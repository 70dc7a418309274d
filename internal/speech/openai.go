package speech

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nguyentantai21042004/pagecast/internal/logger"
	"github.com/sashabaranov/go-openai"
)

type implOpenAI struct {
	cli    *openai.Client
	model  string
	voice  string
	logger logger.Logger
}

// NewOpenAI creates a Synthesizer backed by the /audio/speech endpoint.
// Output is always mp3.
func NewOpenAI(cli *openai.Client, model, voice string, log logger.Logger) Synthesizer {
	return &implOpenAI{
		cli:    cli,
		model:  model,
		voice:  voice,
		logger: log,
	}
}

func (s *implOpenAI) Synthesize(ctx context.Context, text, outPath string) error {
	s.logger.Debug(ctx, "Requesting speech (%s/%s) for %s: %d chars", s.model, s.voice, filepath.Base(outPath), len(text))

	resp, err := s.cli.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(s.model),
		Input:          text,
		Voice:          openai.SpeechVoice(s.voice),
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return fmt.Errorf("openai speech: %w", err)
	}
	defer resp.Close()

	// A partial mp3 at outPath would be treated as cached audio on the next run.
	tmp, err := os.CreateTemp(filepath.Dir(outPath), filepath.Base(outPath)+".*.part")
	if err != nil {
		return fmt.Errorf("create audio file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := io.Copy(tmp, resp); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write audio: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close audio file: %w", err)
	}
	if err := os.Rename(tmpPath, outPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("finalize audio file: %w", err)
	}
	return nil
}
