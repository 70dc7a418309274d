package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	assembleImages  string
	assembleSummary string
	assembleOutput  string
)

var assembleCmd = &cobra.Command{
	Use:   "assemble",
	Short: "Rebuild a video from an images folder and a summary file",
	Long: `Assemble narrates an existing summary file over page_<N>.png images without
calling the summarization models again. Pages missing from the summary file
are shown with a short silence.`,
	RunE: runAssemble,
}

func init() {
	assembleCmd.Flags().StringVarP(&assembleImages, "images", "i", "", "folder of page_<N>.png images (required)")
	assembleCmd.Flags().StringVarP(&assembleSummary, "summary", "s", "", "summary file with --- Page N --- blocks (required)")
	assembleCmd.Flags().StringVarP(&assembleOutput, "output", "o", "", "output video path (required)")
	_ = assembleCmd.MarkFlagRequired("images")
	_ = assembleCmd.MarkFlagRequired("summary")
	_ = assembleCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(assembleCmd)
}

func runAssemble(cmd *cobra.Command, args []string) error {
	a, err := newApp(false)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	final, err := a.proc.Assemble(ctx, assembleImages, assembleSummary, assembleOutput)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s (%d segments, %s)\n", final.Path, final.Segments, final.Duration)
	return nil
}
