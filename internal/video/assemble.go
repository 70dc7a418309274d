package video

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/nguyentantai21042004/pagecast/internal/models"
)

const manifestName = "segments.txt"

// Assemble concatenates segments in page order by stream copy. On success the
// segments, their audio and the manifest are removed; on failure they stay on
// disk for inspection.
func (a *implAssembler) Assemble(ctx context.Context, segments []models.Segment, outputPath string) (models.FinalVideo, error) {
	if len(segments) == 0 {
		return models.FinalVideo{}, models.ErrNoContent
	}

	ordered := append([]models.Segment(nil), segments...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].PageNumber < ordered[j].PageNumber
	})

	manifestPath, err := a.writeManifest(ordered)
	if err != nil {
		return models.FinalVideo{}, err
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return models.FinalVideo{}, fmt.Errorf("create output dir: %w", err)
	}

	a.logger.Info(ctx, "Concatenating %d segments into %s", len(ordered), outputPath)

	args := []string{
		"-y",
		"-f", "concat",
		"-safe", "0",
		"-i", manifestPath,
		"-c", "copy",
		outputPath,
	}
	if _, err := a.executor.Execute(ctx, a.cfg.Binary, args...); err != nil {
		return models.FinalVideo{}, fmt.Errorf("concatenate segments: %w", err)
	}

	var total time.Duration
	for _, seg := range ordered {
		total += seg.Duration
	}

	a.cleanup(ctx, ordered, manifestPath)

	return models.FinalVideo{
		Path:     outputPath,
		Segments: len(ordered),
		Duration: total,
	}, nil
}

func (a *implAssembler) writeManifest(segments []models.Segment) (string, error) {
	if err := os.MkdirAll(a.workDir, 0755); err != nil {
		return "", fmt.Errorf("create work dir: %w", err)
	}

	var sb strings.Builder
	for _, seg := range segments {
		abs, err := filepath.Abs(seg.VideoPath)
		if err != nil {
			return "", fmt.Errorf("resolve segment path: %w", err)
		}
		sb.WriteString("file '")
		sb.WriteString(escapeConcatPath(abs))
		sb.WriteString("'\n")
	}

	manifestPath := filepath.Join(a.workDir, manifestName)
	if err := os.WriteFile(manifestPath, []byte(sb.String()), 0644); err != nil {
		return "", fmt.Errorf("write concat manifest: %w", err)
	}
	return manifestPath, nil
}

// escapeConcatPath quotes a path for the concat demuxer's single-quoted form.
func escapeConcatPath(p string) string {
	return strings.ReplaceAll(p, "'", `'\''`)
}
