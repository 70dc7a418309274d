package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/nguyentantai21042004/pagecast/internal/watcher"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Process every PDF dropped into the input folder",
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	a, err := newApp(true)
	if err != nil {
		return err
	}

	for _, dir := range []string{a.cfg.Paths.Input, a.cfg.Paths.Archived} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	ctx, cancel := signalContext()
	defer cancel()

	handler := func(ctx context.Context, pdfPath string) error {
		if err := a.proc.Process(ctx, pdfPath); err != nil {
			return err
		}
		return a.proc.Archive(ctx, pdfPath)
	}

	w, err := watcher.New(a.cfg.Paths.Input, handler, a.log, a.cfg.Performance.MaxConcurrent)
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Stop()

	a.log.Info(ctx, "========================================")
	a.log.Info(ctx, "pagecast is ready (%s/%s, %d CPUs)", runtime.GOOS, runtime.GOARCH, runtime.NumCPU())
	a.log.Info(ctx, "Monitoring: %s", a.cfg.Paths.Input)
	a.log.Info(ctx, "Output: %s", a.cfg.Paths.Output)
	a.log.Info(ctx, "Models: caption=%s text=%s embedding=%s speech=%s",
		a.cfg.Models.Caption, a.cfg.Models.Text, a.cfg.Models.Embedding, a.cfg.Speech.Provider)
	a.log.Info(ctx, "Press Ctrl+C to stop")
	a.log.Info(ctx, "========================================")

	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("watcher: %w", err)
	}

	a.log.Info(context.Background(), "pagecast stopped")
	return nil
}
