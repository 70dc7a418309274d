package video

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// silenceSeconds is the length of the placeholder track for pages with no text.
const silenceSeconds = "0.5"

// narration returns the audio track for a page, synthesizing speech only when
// page_N.mp3 is not already on disk.
func (s *implSynthesizer) narration(ctx context.Context, pageNumber int, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return s.silence(ctx, pageNumber)
	}

	audioPath := filepath.Join(s.workDir, fmt.Sprintf("page_%d.mp3", pageNumber))
	if info, err := os.Stat(audioPath); err == nil && info.Size() > 0 {
		s.logger.Debug(ctx, "Reusing existing audio: %s", audioPath)
		return audioPath, nil
	}

	s.logger.Info(ctx, "Synthesizing speech for page %d", pageNumber)
	if err := s.tts.Synthesize(ctx, text, audioPath); err != nil {
		return "", fmt.Errorf("synthesize speech for page %d: %w", pageNumber, err)
	}
	return audioPath, nil
}

// silence writes a short stereo 44.1 kHz silent mp3.
func (s *implSynthesizer) silence(ctx context.Context, pageNumber int) (string, error) {
	audioPath := filepath.Join(s.workDir, fmt.Sprintf("silence_page_%d.mp3", pageNumber))

	args := []string{
		"-y",
		"-f", "lavfi",
		"-i", "anullsrc=channel_layout=stereo:sample_rate=44100",
		"-t", silenceSeconds,
		"-q:a", "9",
		"-acodec", "libmp3lame",
		audioPath,
	}

	s.logger.Debug(ctx, "Page %d has no text, generating %ss of silence", pageNumber, silenceSeconds)
	if _, err := s.executor.Execute(ctx, s.cfg.Binary, args...); err != nil {
		return "", fmt.Errorf("generate silence for page %d: %w", pageNumber, err)
	}
	return audioPath, nil
}
