package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <file.pdf>",
	Short: "Summarize and narrate one PDF",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocument,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runDocument(cmd *cobra.Command, args []string) error {
	pdfPath := args[0]
	if _, err := os.Stat(pdfPath); err != nil {
		return fmt.Errorf("input document %s: %w", pdfPath, err)
	}

	a, err := newApp(true)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	return a.proc.Process(ctx, pdfPath)
}
