// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"time"

	"github.com/gingfrederik/docx"

	"github.com/pdiddy/plagiarism-detector/pkg/types"
)

const (
	bodySize    = 12
	detailSize  = 10
	titleSize   = 20
	sectionSize = 16
	sourceSize  = 14
)

// WriteDocx saves the human-readable report for result as a Word document.
func WriteDocx(path string, result types.AnalysisResult) error {
	f := docx.NewFile()

	addText(f, "Plagiarism Analysis Report", titleSize, "")
	addText(f, "Generated "+time.Now().Format(time.RFC1123), detailSize, "808080")
	f.AddParagraph()

	addText(f, "Similarity Score: "+percent(result.SimilarityScore), bodySize, "")
	addText(f, "AI Detected: "+yesNo(result.AIDetected), bodySize, "")
	addText(f, "AI Confidence: "+percent(result.AIConfidence), bodySize, "")
	addText(f, fmt.Sprintf("Sources Found: %d", len(result.MatchedSources)), bodySize, "")

	if len(result.MatchedSources) > 0 {
		f.AddParagraph()
		addText(f, "Matched Sources", sectionSize, "")
		for i, s := range result.MatchedSources {
			addText(f, fmt.Sprintf("%d. %s", i+1, s.Title), sourceSize, "")
			addText(f, s.SourceURL, detailSize, "0000FF")
			addText(f, fmt.Sprintf("Similarity: %.2f%%", s.SimilarityPercentage), bodySize, "")
			addText(f, s.MatchedText, detailSize, "")
		}
	}

	if result.ParaphrasedText != nil {
		f.AddParagraph()
		addText(f, "Paraphrased Version", sectionSize, "")
		addText(f, *result.ParaphrasedText, bodySize, "")
	}

	if result.Error != nil {
		f.AddParagraph()
		addText(f, "ERROR: "+*result.Error, bodySize, "FF0000")
	}

	if err := f.Save(path); err != nil {
		return fmt.Errorf("saving docx report %s: %w", path, err)
	}
	return nil
}

// addText appends a paragraph holding one run. An empty color keeps the default.
func addText(f *docx.File, text string, size int, color string) {
	run := f.AddParagraph().AddText(text)
	run.Size(size)
	if color != "" {
		run.Color(color)
	}
}
