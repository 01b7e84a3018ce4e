// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the plagiarism-detector pipeline:
// the analysis request and result records, search candidates, history records and
// configuration.
package types

// AnalysisRequest is one submission to analyze. Text may be empty; the pipeline
// degrades to an empty result rather than failing.
type AnalysisRequest struct {
	Text              string `json:"text" yaml:"text"`
	IncludeParaphrase bool   `json:"checkParaphrasing" yaml:"check_paraphrasing"`
}

// CandidateSource is the first item a search provider returned for one phrase.
type CandidateSource struct {
	SourceURL string `json:"link" yaml:"link"`
	Title     string `json:"title" yaml:"title"`
	Snippet   string `json:"snippet" yaml:"snippet"`
}

// ScoredMatch is a candidate whose snippet scored above the relevance floor.
type ScoredMatch struct {
	SourceURL string `json:"url" yaml:"url"`
	Title     string `json:"title" yaml:"title"`

	// SimilarityPercentage is the similarity score scaled to 0-100, 2 decimals.
	SimilarityPercentage float64 `json:"similarityPercentage" yaml:"similarity_percentage"`

	// MatchedText is the provider snippet the text was compared against.
	MatchedText string `json:"matchedText" yaml:"matched_text"`
}

// AiAssessment is the heuristic machine-generation estimate for a text.
type AiAssessment struct {
	IsLikelyGenerated bool    `json:"isLikelyGenerated" yaml:"is_likely_generated"`
	Confidence        float64 `json:"confidence" yaml:"confidence"`
}

// AnalysisResult is the sole output of an analysis.
type AnalysisResult struct {
	// SimilarityScore is the highest raw score (0-1) over every scored
	// candidate, including ones dropped by the relevance floor.
	SimilarityScore float64 `json:"similarityScore" yaml:"similarity_score"`

	// MatchedSources holds at most 5 matches, sorted by percentage descending.
	MatchedSources []ScoredMatch `json:"matchedSources" yaml:"matched_sources"`

	AIDetected   bool    `json:"aiDetected" yaml:"ai_detected"`
	AIConfidence float64 `json:"aiConfidence" yaml:"ai_confidence"`

	ParaphrasedText *string `json:"paraphrasedText,omitempty" yaml:"paraphrased_text,omitempty"`
	Error           *string `json:"error" yaml:"error,omitempty"`
}

// Failed reports whether the analysis ended in a degraded result.
func (r AnalysisResult) Failed() bool {
	return r.Error != nil
}

// OutputFormat selects how an AnalysisResult is rendered.
type OutputFormat string

const (
	// FormatJSON renders the structured record.
	FormatJSON OutputFormat = "json"
	// FormatPretty renders a human-readable report.
	FormatPretty OutputFormat = "pretty"
	FormatYAML   OutputFormat = "yaml"
	// FormatDocx writes the human-readable report to a Word document.
	FormatDocx OutputFormat = "docx"
)
