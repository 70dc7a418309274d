package speech

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/nguyentantai21042004/pagecast/internal/logger"
	"github.com/nguyentantai21042004/pagecast/pkg/executor"
)

type implCommand struct {
	executor executor.Executor
	command  string
	ffmpeg   string
	voice    string
	logger   logger.Logger
}

// NewCommand creates an offline Synthesizer that shells out to an
// espeak-compatible binary for wav output and converts it to mp3 with ffmpeg.
// voice is passed through as -v when set.
func NewCommand(exec executor.Executor, command, ffmpeg, voice string, log logger.Logger) Synthesizer {
	return &implCommand{
		executor: exec,
		command:  command,
		ffmpeg:   ffmpeg,
		voice:    voice,
		logger:   log,
	}
}

func (s *implCommand) Synthesize(ctx context.Context, text, outPath string) error {
	base := strings.TrimSuffix(outPath, ".mp3")
	wavPath := base + "_tts.wav"
	textPath := base + "_tts.txt"

	// Text goes through a file: summaries often start with "- " bullets,
	// which espeak would parse as options.
	if err := os.WriteFile(textPath, []byte(text), 0644); err != nil {
		return fmt.Errorf("write narration text: %w", err)
	}
	defer s.removeTemp(ctx, textPath)

	args := []string{"-w", wavPath, "-f", textPath}
	if s.voice != "" {
		args = append(args, "-v", s.voice)
	}

	if _, err := s.executor.Execute(ctx, s.command, args...); err != nil {
		return fmt.Errorf("%s: %w", s.command, err)
	}
	defer s.removeTemp(ctx, wavPath)

	convert := []string{
		"-y",
		"-i", wavPath,
		"-codec:a", "libmp3lame",
		"-q:a", "4",
		outPath,
	}
	if _, err := s.executor.Execute(ctx, s.ffmpeg, convert...); err != nil {
		return fmt.Errorf("convert speech to mp3: %w", err)
	}

	return nil
}

func (s *implCommand) removeTemp(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.logger.Warn(ctx, "Failed to remove %s: %v", path, err)
	}
}
