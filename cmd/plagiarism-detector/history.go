// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/plagiarism-detector/internal/history"
	"github.com/pdiddy/plagiarism-detector/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Review saved analyses (list, show, stats, export, cleanup)",
	Long: `History reads the local SQLite store written by analyze --save, by
analyze with history.enabled, and by serve. Use subcommands to list recent
analyses, inspect one, print statistics, export, or prune old records.`,
}

// --- list subcommand ---

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent analyses",
	RunE:  runHistoryList,
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	high, _ := cmd.Flags().GetBool("high")
	failed, _ := cmd.Flags().GetBool("failed")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	var recs []types.HistoryRecord
	switch {
	case high:
		recs, err = store.HighSimilarity(ctx, history.HighSimilarityThreshold)
	case failed:
		recs, err = store.Failed(ctx)
	default:
		recs, err = store.Recent(ctx, limit)
	}
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(recs)
	}
	if len(recs) == 0 {
		fmt.Println("No analyses found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-36s  %-20s  %-10s  %-5s  %-7s  %s\n",
		"ID", "Created", "Similarity", "AI", "Sources", "Text")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 110))
	for _, r := range recs {
		text := strings.Join(strings.Fields(r.Text), " ")
		text = preview(text, 30)
		ai := "no"
		if r.AIDetected {
			ai = "yes"
		}
		if r.Status == types.StatusFailed {
			ai = "-"
		}
		fmt.Fprintf(os.Stdout, "%-36s  %-20s  %9.2f%%  %-5s  %-7d  %s\n",
			r.ID, r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			r.SimilarityScore*100, ai, r.SourcesFound, text)
	}
	fmt.Fprintf(os.Stdout, "\n%d analyses\n", len(recs))
	return nil
}

// --- show subcommand ---

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one analysis with its matched sources",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := store.Get(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	if jsonOutput {
		return printJSON(rec)
	}

	fmt.Printf("ID:          %s\n", rec.ID)
	fmt.Printf("Created:     %s\n", rec.CreatedAt.Local().Format(time.RFC3339))
	fmt.Printf("Status:      %s\n", rec.Status)
	if rec.ErrorMessage != "" {
		fmt.Printf("Error:       %s\n", rec.ErrorMessage)
	}
	fmt.Printf("Similarity:  %.2f%%\n", rec.SimilarityScore*100)
	fmt.Printf("AI detected: %t (confidence %.2f%%)\n", rec.AIDetected, rec.AIConfidence*100)
	fmt.Printf("Processing:  %dms\n", rec.ProcessingMs)
	fmt.Printf("Text length: %d\n", rec.TextLength)

	if len(rec.Sources) > 0 {
		fmt.Println("\nSources:")
		for i, s := range rec.Sources {
			fmt.Printf("%d. %s (%.2f%%)\n   %s\n", i+1, s.Title, s.SimilarityPercentage, s.URL)
		}
	}
	return nil
}

// --- stats subcommand ---

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print aggregate statistics over saved analyses",
	RunE:  runHistoryStats,
}

func runHistoryStats(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	st, err := store.Statistics(context.Background())
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(st)
	}

	fmt.Printf("Total analyses:      %d\n", st.TotalAnalyses)
	fmt.Printf("Average similarity:  %.2f%%\n", st.AverageSimilarity*100)
	fmt.Printf("Last 7 days:         %d\n", st.RecentAnalyses)
	fmt.Printf("High similarity:     %d\n", st.HighSimilarityAnalyses)
	fmt.Printf("Failed:              %d\n", st.FailedAnalyses)
	fmt.Printf("Success rate:        %.2f%%\n", st.SuccessRate)
	if len(st.CommonDomains) > 0 {
		fmt.Println("\nCommon domains:")
		for _, d := range st.CommonDomains {
			fmt.Printf("  %-40s %d\n", d.Domain, d.Count)
		}
	}
	if len(st.DuplicateSources) > 0 {
		fmt.Println("\nSources matched more than once:")
		for _, u := range st.DuplicateSources {
			fmt.Printf("  %s\n", u)
		}
	}
	return nil
}

// --- export subcommand ---

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export saved analyses to YAML or JSON",
	RunE:  runHistoryExport,
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")

	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	switch format {
	case "yaml", "":
		if output == "" {
			output = "history-export.yaml"
		}
		err = store.ExportYAML(ctx, output)
	case "json":
		if output == "" {
			output = "history-export.json"
		}
		err = store.ExportJSON(ctx, output)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}
	fmt.Printf("Exported to %s\n", output)
	return nil
}

// --- cleanup subcommand ---

var historyCleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete analyses older than --older-than",
	RunE:  runHistoryCleanup,
}

func runHistoryCleanup(cmd *cobra.Command, args []string) error {
	olderThan, _ := cmd.Flags().GetDuration("older-than")
	if olderThan <= 0 {
		return fmt.Errorf("--older-than must be positive")
	}

	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.Cleanup(context.Background(), olderThan)
	if err != nil {
		return err
	}
	fmt.Printf("Deleted %d analyses\n", n)
	return nil
}

// --- shared helpers ---

// openHistory opens the configured store. Reading history does not require
// history.enabled; the flag only controls whether analyses are saved.
func openHistory() (*history.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return history.NewStore(cfg.History)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	historyListCmd.Flags().Int("limit", 10, "maximum number of analyses to list")
	historyListCmd.Flags().Bool("high", false, "list only analyses with similarity above 50%")
	historyListCmd.Flags().Bool("failed", false, "list only failed analyses")
	historyListCmd.Flags().Bool("json", false, "output as JSON")

	historyShowCmd.Flags().Bool("json", false, "output as JSON")
	historyStatsCmd.Flags().Bool("json", false, "output as JSON")

	historyExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	historyExportCmd.Flags().String("output", "", "export file (default history-export.<format>)")

	historyCleanupCmd.Flags().Duration("older-than", 30*24*time.Hour, "delete analyses older than this age")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyStatsCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyCleanupCmd)

	rootCmd.AddCommand(historyCmd)
}

// preview shortens text to at most max runes, marking the cut with "...".
func preview(text string, max int) string {
	r := []rune(text)
	if len(r) <= max {
		return text
	}
	return string(r[:max-3]) + "..."
}
