package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Archive moves the processed PDF into the archived folder
func (p *implProcessor) Archive(ctx context.Context, pdfPath string) error {
	if err := os.MkdirAll(p.cfg.Paths.Archived, 0755); err != nil {
		return fmt.Errorf("create archived dir: %w", err)
	}

	destPath := filepath.Join(p.cfg.Paths.Archived, filepath.Base(pdfPath))
	p.logger.Info(ctx, "Moving to archived folder: %s -> %s", pdfPath, destPath)

	if err := os.Rename(pdfPath, destPath); err != nil {
		return fmt.Errorf("move to archived: %w", err)
	}

	return nil
}

// removeDir removes a working directory, logs warning if fails
func (p *implProcessor) removeDir(ctx context.Context, dir string) {
	if err := os.RemoveAll(dir); err != nil {
		p.logger.Warn(ctx, "Failed to remove %s: %v", dir, err)
	} else {
		p.logger.Debug(ctx, "Removed: %s", dir)
	}
}
