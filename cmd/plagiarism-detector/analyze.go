// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/plagiarism-detector/internal/history"
	"github.com/pdiddy/plagiarism-detector/internal/input"
	"github.com/pdiddy/plagiarism-detector/internal/report"
	"github.com/pdiddy/plagiarism-detector/pkg/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a text for plagiarism and machine generation",
	Long: `Analyze extracts up to three search phrases from the text, queries the
configured search provider once per phrase, scores the returned snippets
against the text, and runs the machine-generation heuristics.

Text comes from --text, --file (plain text or PDF; "-" for stdin), or stdin.
Once analysis has started the command exits 0; failures inside the pipeline
are reported in the result's error field.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringP("text", "t", "", "text to analyze")
	analyzeCmd.Flags().String("file", "", "read the text from a file (.pdf supported, - for stdin)")
	analyzeCmd.Flags().BoolP("paraphrase", "p", false, "include a paraphrased version of the text")
	analyzeCmd.Flags().StringP("format", "f", string(types.FormatJSON), "output format: json, pretty, yaml, or docx")
	analyzeCmd.Flags().StringP("output", "o", "", "write the report to a file instead of stdout (required for docx)")
	analyzeCmd.Flags().Bool("save", false, "save the analysis to history even when history.enabled is false")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	textFlag, _ := cmd.Flags().GetString("text")
	fileFlag, _ := cmd.Flags().GetString("file")
	paraphrase, _ := cmd.Flags().GetBool("paraphrase")
	formatFlag, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")
	save, _ := cmd.Flags().GetBool("save")

	format := types.OutputFormat(formatFlag)
	if err := checkFormat(format, output); err != nil {
		return err
	}

	text, err := input.ReadText(textFlag, fileFlag, pipedStdin())
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	a, err := newAnalyzer(ctx, cfg.Search)
	if err != nil {
		return err
	}

	start := time.Now()
	result := a.Analyze(ctx, types.AnalysisRequest{Text: text, IncludeParaphrase: paraphrase})
	elapsed := time.Since(start)
	logger.Debug("analysis finished",
		zap.Duration("elapsed", elapsed),
		zap.Int("matches", len(result.MatchedSources)),
		zap.Bool("failed", result.Failed()),
	)

	if save || cfg.History.Enabled {
		saveAnalysis(ctx, cfg.History, text, result, elapsed)
	}

	return writeReport(result, format, output, os.Stdout)
}

func checkFormat(format types.OutputFormat, output string) error {
	switch format {
	case types.FormatJSON, types.FormatPretty, types.FormatYAML:
		return nil
	case types.FormatDocx:
		if output == "" {
			return fmt.Errorf("docx format requires --output")
		}
		return nil
	default:
		return fmt.Errorf("unsupported format %q: use json, pretty, yaml, or docx", format)
	}
}

// pipedStdin returns os.Stdin when it is not a terminal.
func pipedStdin() io.Reader {
	info, err := os.Stdin.Stat()
	if err != nil || info.Mode()&os.ModeCharDevice != 0 {
		return nil
	}
	return os.Stdin
}

// saveAnalysis stores the result in history. Failures are logged; they never
// change the command's outcome.
func saveAnalysis(ctx context.Context, cfg types.HistoryConfig, text string, result types.AnalysisResult, elapsed time.Duration) {
	store, err := history.NewStore(cfg)
	if err != nil {
		logger.Warn("opening history failed", zap.Error(err))
		return
	}
	defer store.Close()

	id, err := store.Save(ctx, text, result, elapsed)
	if err != nil {
		logger.Warn("saving analysis failed", zap.Error(err))
		return
	}
	logger.Info("analysis saved", zap.String("id", id))
}

func writeReport(result types.AnalysisResult, format types.OutputFormat, output string, stdout io.Writer) error {
	if format == types.FormatDocx {
		if err := report.WriteDocx(output, result); err != nil {
			return err
		}
		logger.Info("report written", zap.String("path", output))
		return nil
	}

	if output == "" {
		return report.Format(stdout, result, format)
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("creating %s: %w", output, err)
	}
	if err := report.Format(f, result, format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", output, err)
	}
	logger.Info("report written", zap.String("path", output))
	return nil
}
