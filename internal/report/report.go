// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders an AnalysisResult as JSON, YAML, a human-readable
// terminal report, or a Word document.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/plagiarism-detector/pkg/types"
)

// snippetPreview is the number of snippet characters shown per source.
const snippetPreview = 100

// Format writes result to w in the given format. The docx format needs a file
// path and is handled by WriteDocx instead.
func Format(w io.Writer, result types.AnalysisResult, format types.OutputFormat) error {
	switch format {
	case types.FormatJSON, "":
		return FormatJSON(w, result)
	case types.FormatYAML:
		return FormatYAML(w, result)
	case types.FormatPretty:
		FormatText(w, result)
		return nil
	case types.FormatDocx:
		return fmt.Errorf("docx output requires an output file")
	default:
		return fmt.Errorf("unsupported format %q: use json, pretty, yaml, or docx", format)
	}
}

// FormatJSON writes result as indented JSON to w.
func FormatJSON(w io.Writer, result types.AnalysisResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(withSources(result))
}

// FormatYAML writes result as YAML to w.
func FormatYAML(w io.Writer, result types.AnalysisResult) error {
	data, err := yaml.Marshal(withSources(result))
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// FormatText writes a human-readable report to w. Colours are only emitted
// when w is a terminal that supports them.
func FormatText(w io.Writer, result types.AnalysisResult) {
	r := lipgloss.NewRenderer(w)
	heading := r.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	label := r.NewStyle().Foreground(lipgloss.Color("241"))
	alert := r.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))

	line := func(name, value string) {
		fmt.Fprintf(w, "%s %s\n", label.Render(name+":"), value)
	}

	fmt.Fprintln(w, heading.Render("=== Analysis Results ==="))
	line("Similarity Score", percent(result.SimilarityScore))
	line("AI Detected", yesNo(result.AIDetected))
	line("AI Confidence", percent(result.AIConfidence))
	line("Sources Found", fmt.Sprintf("%d", len(result.MatchedSources)))

	if len(result.MatchedSources) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, heading.Render("=== Matched Sources ==="))
		for i, s := range result.MatchedSources {
			fmt.Fprintf(w, "%d. %s\n", i+1, s.Title)
			fmt.Fprintf(w, "   URL: %s\n", s.SourceURL)
			fmt.Fprintf(w, "   Similarity: %.2f%%\n", s.SimilarityPercentage)
			fmt.Fprintf(w, "   Snippet: %s\n", truncate(s.MatchedText, snippetPreview))
			fmt.Fprintln(w)
		}
	}

	if result.ParaphrasedText != nil {
		fmt.Fprintln(w, heading.Render("=== Paraphrased Version ==="))
		fmt.Fprintln(w, *result.ParaphrasedText)
	}

	if result.Error != nil {
		fmt.Fprintln(w)
		fmt.Fprintln(w, alert.Render("ERROR: "+*result.Error))
	}
}

// withSources guarantees matchedSources serializes as a list, never null.
func withSources(result types.AnalysisResult) types.AnalysisResult {
	if result.MatchedSources == nil {
		result.MatchedSources = []types.ScoredMatch{}
	}
	return result
}

// percent renders a 0-1 fraction as a percentage with 2 decimals.
func percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return strings.TrimRightFunc(string(r[:max]), func(c rune) bool { return c == ' ' }) + "..."
}
