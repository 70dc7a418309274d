package video

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/nguyentantai21042004/pagecast/internal/models"
	"golang.org/x/sync/errgroup"
)

const softwareEncoder = "libx264"

func (s *implSynthesizer) Synthesize(ctx context.Context, page models.PageRecord, summaryText string) (models.Segment, error) {
	if err := os.MkdirAll(s.workDir, 0755); err != nil {
		return models.Segment{}, fmt.Errorf("create work dir: %w", err)
	}

	audioPath, err := s.narration(ctx, page.PageNumber, summaryText)
	if err != nil {
		return models.Segment{}, err
	}

	videoPath := filepath.Join(s.workDir, fmt.Sprintf("segment_page_%d.mp4", page.PageNumber))
	if err := s.encode(ctx, page.ImagePath, audioPath, videoPath); err != nil {
		return models.Segment{}, fmt.Errorf("encode page %d: %w", page.PageNumber, err)
	}

	duration, err := s.probeDuration(ctx, videoPath)
	if err != nil {
		return models.Segment{}, fmt.Errorf("probe page %d: %w", page.PageNumber, err)
	}

	s.logger.Info(ctx, "Segment ready for page %d (%s)", page.PageNumber, duration.Round(time.Millisecond))
	return models.Segment{
		PageNumber: page.PageNumber,
		VideoPath:  videoPath,
		AudioPath:  audioPath,
		Duration:   duration,
	}, nil
}

func (s *implSynthesizer) SynthesizeAll(ctx context.Context, pages []models.PageRecord, summaries map[int]string) ([]models.Segment, error) {
	segments := make([]models.Segment, len(pages))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallel)

	for i, page := range pages {
		g.Go(func() error {
			seg, err := s.Synthesize(gctx, page, summaries[page.PageNumber])
			if err != nil {
				return err
			}
			segments[i] = seg
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(segments, func(a, b int) bool {
		return segments[a].PageNumber < segments[b].PageNumber
	})
	return segments, nil
}

// encode loops the still image for the length of the audio track. If a
// hardware encoder is configured and fails, it retries with libx264.
func (s *implSynthesizer) encode(ctx context.Context, imagePath, audioPath, outputPath string) error {
	_, err := s.executor.Execute(ctx, s.cfg.Binary, s.encodeArgs(s.cfg.Encoder, imagePath, audioPath, outputPath)...)
	if err == nil || s.cfg.Encoder == softwareEncoder {
		return err
	}

	s.logger.Warn(ctx, "Encoder %s failed, trying %s: %v", s.cfg.Encoder, softwareEncoder, err)
	if _, err := s.executor.Execute(ctx, s.cfg.Binary, s.encodeArgs(softwareEncoder, imagePath, audioPath, outputPath)...); err != nil {
		return fmt.Errorf("both %s and %s failed: %w", s.cfg.Encoder, softwareEncoder, err)
	}
	return nil
}

func (s *implSynthesizer) encodeArgs(encoder, imagePath, audioPath, outputPath string) []string {
	args := []string{
		"-y",
		"-loop", "1",
		"-i", imagePath,
		"-i", audioPath,
		// H.264 with yuv420p needs even dimensions
		"-vf", "scale=trunc(iw/2)*2:trunc(ih/2)*2",
		"-c:v", encoder,
	}
	if encoder == softwareEncoder {
		args = append(args, "-preset", s.cfg.Preset, "-tune", "stillimage")
	}
	args = append(args,
		"-c:a", s.cfg.AudioCodec,
		"-pix_fmt", s.cfg.PixelFormat,
		"-shortest",
		outputPath,
	)
	return args
}

func (s *implSynthesizer) probeDuration(ctx context.Context, path string) (time.Duration, error) {
	out, err := s.executor.Execute(ctx, s.cfg.Probe,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	if err != nil {
		return 0, err
	}

	seconds, err := strconv.ParseFloat(strings.TrimSpace(out), 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", strings.TrimSpace(out), err)
	}
	return time.Duration(seconds * float64(time.Second)), nil
}
