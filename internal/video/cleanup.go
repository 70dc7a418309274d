package video

import (
	"context"
	"os"

	"github.com/nguyentantai21042004/pagecast/internal/models"
)

func (a *implAssembler) cleanup(ctx context.Context, segments []models.Segment, manifestPath string) {
	for _, seg := range segments {
		a.removeFile(ctx, seg.VideoPath)
		if seg.AudioPath != "" {
			a.removeFile(ctx, seg.AudioPath)
		}
	}
	a.removeFile(ctx, manifestPath)
}

// removeFile deletes an intermediate file, logs warning if it fails
func (a *implAssembler) removeFile(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		a.logger.Warn(ctx, "Failed to clean up %s: %v", path, err)
		return
	}
	a.logger.Debug(ctx, "Cleaned up: %s", path)
}
