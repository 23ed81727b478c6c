package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobhunt/internal/observability"
	"github.com/jonathan/jobhunt/internal/pipeline"
)

var (
	extractAnalyze bool
	extractVerbose bool
)

var extractCmd = &cobra.Command{
	Use:   "extract <file.pdf>",
	Short: "Extract a résumé PDF and print the record as JSON",
	Long: "Extract text, skills, contact details, links and location from a PDF résumé. " +
		"With --analyze the configured LLM adds a structured analysis.",
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().BoolVar(&extractAnalyze, "analyze", false, "Enrich the extraction with an LLM analysis")
	extractCmd.Flags().BoolVarP(&extractVerbose, "verbose", "v", false, "Print progress and a summary to stderr")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(cmd.ErrOrStderr())
	opts := appOptions{withLLM: extractAnalyze, logOutput: cmd.ErrOrStderr()}
	if extractVerbose {
		opts.onProgress = func(e pipeline.ProgressEvent) { printer.PrintProgress(e.Step, e.Message) }
	}

	ctx := commandContext(cmd)
	a, err := newApp(ctx, cfg, opts)
	if err != nil {
		return err
	}
	defer a.Close()

	record, err := a.service.IngestResume(ctx, filepath.Base(args[0]), data)
	if err != nil {
		return err
	}
	if extractVerbose {
		printer.PrintResume(record)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(record)
}
