// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// AnalysisStatus is the outcome recorded for a stored analysis.
type AnalysisStatus string

const (
	StatusCompleted AnalysisStatus = "completed"
	StatusFailed    AnalysisStatus = "failed"
)

// HistoryRecord is one persisted analysis.
type HistoryRecord struct {
	ID              string         `json:"id" yaml:"id"`
	Text            string         `json:"text" yaml:"text"`
	TextLength      int            `json:"textLength" yaml:"text_length"`
	SimilarityScore float64        `json:"similarityScore" yaml:"similarity_score"`
	AIDetected      bool           `json:"aiDetected" yaml:"ai_detected"`
	AIConfidence    float64        `json:"aiConfidence" yaml:"ai_confidence"`
	SourcesFound    int            `json:"sourcesFound" yaml:"sources_found"`
	ProcessingMs    int64          `json:"processingTimeMs" yaml:"processing_ms"`
	Status          AnalysisStatus `json:"status" yaml:"status"`
	ErrorMessage    string         `json:"errorMessage,omitempty" yaml:"error_message,omitempty"`
	CreatedAt       time.Time      `json:"createdAt" yaml:"created_at"`

	// Sources is populated by lookups that load a single record.
	Sources []HistorySource `json:"sources,omitempty" yaml:"sources,omitempty"`
}

// HistorySource is a matched source stored with its analysis.
type HistorySource struct {
	URL                  string  `json:"url" yaml:"url"`
	Title                string  `json:"title" yaml:"title"`
	SimilarityPercentage float64 `json:"similarityPercentage" yaml:"similarity_percentage"`
	MatchedText          string  `json:"matchedText" yaml:"matched_text"`
	Domain               string  `json:"domain" yaml:"domain"`
}

// DomainCount is a source domain with the number of matches it produced.
type DomainCount struct {
	Domain string `json:"domain" yaml:"domain"`
	Count  int    `json:"count" yaml:"count"`
}

// Statistics summarizes the history store.
type Statistics struct {
	TotalAnalyses          int           `json:"totalSearches" yaml:"total_analyses"`
	AverageSimilarity      float64       `json:"averageSimilarity" yaml:"average_similarity"`
	RecentAnalyses         int           `json:"recentSearches" yaml:"recent_analyses"`
	HighSimilarityAnalyses int           `json:"highSimilaritySearches" yaml:"high_similarity_analyses"`
	FailedAnalyses         int           `json:"failedSearches" yaml:"failed_analyses"`
	SuccessRate            float64       `json:"successRate" yaml:"success_rate"`
	CommonDomains          []DomainCount `json:"commonDomains" yaml:"common_domains"`
	DuplicateSources       []string      `json:"duplicateSources" yaml:"duplicate_sources"`
}
