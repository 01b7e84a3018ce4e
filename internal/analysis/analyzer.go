// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analysis

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/pdiddy/plagiarism-detector/internal/search"
	"github.com/pdiddy/plagiarism-detector/pkg/types"
)

const (
	// RelevanceFloor is the raw score a candidate must exceed to be reported
	// as a matched source. Tunable; the value carries no calibration.
	RelevanceFloor = 0.10

	// MaxCandidates caps the candidates collected per analysis.
	MaxCandidates = 5
)

// Querier sends one phrase to a search provider. *search.Gateway implements it.
type Querier interface {
	QueryOnce(ctx context.Context, phrase string) search.Outcome
}

// Analyzer runs the full pipeline for one request at a time. It holds no
// per-request state and may be shared across goroutines.
type Analyzer struct {
	querier  Querier
	detector *Detector
	logger   *zap.Logger
}

// NewAnalyzer wires the pipeline. A nil detector uses NewDetector(nil); a nil
// logger discards output.
func NewAnalyzer(q Querier, d *Detector, logger *zap.Logger) *Analyzer {
	if d == nil {
		d = NewDetector(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{querier: q, detector: d, logger: logger}
}

// Analyze never fails: any error or panic raised while orchestrating is turned
// into a result with zeroed scores, no sources and Error set.
func (a *Analyzer) Analyze(ctx context.Context, req types.AnalysisRequest) (result types.AnalysisResult) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("analysis panicked", zap.Any("panic", r))
			result = failedResult(fmt.Errorf("%v", r))
		}
	}()

	result, err := a.analyze(ctx, req)
	if err != nil {
		a.logger.Error("analysis failed", zap.Error(err))
		return failedResult(err)
	}
	return result
}

func (a *Analyzer) analyze(ctx context.Context, req types.AnalysisRequest) (types.AnalysisResult, error) {
	if a.querier == nil {
		return types.AnalysisResult{}, errors.New("no search gateway configured")
	}

	phrases := ExtractPhrases(req.Text)
	a.logger.Debug("extracted search phrases", zap.Strings("phrases", phrases))

	candidates := a.collectCandidates(ctx, phrases)
	matches, maxScore := rankCandidates(req.Text, candidates)
	a.logger.Debug("scored candidates",
		zap.Int("candidates", len(candidates)),
		zap.Int("matches", len(matches)),
		zap.Float64("max_score", maxScore),
	)

	assessment := a.detector.Detect(req.Text)

	result := types.AnalysisResult{
		SimilarityScore: maxScore,
		MatchedSources:  matches,
		AIDetected:      assessment.IsLikelyGenerated,
		AIConfidence:    assessment.Confidence,
	}
	if req.IncludeParaphrase {
		p := Paraphrase(req.Text)
		result.ParaphrasedText = &p
	}
	return result, nil
}

// collectCandidates queries phrases in order and stops once MaxCandidates
// candidates are gathered.
func (a *Analyzer) collectCandidates(ctx context.Context, phrases []string) []types.CandidateSource {
	var candidates []types.CandidateSource
	for _, phrase := range phrases {
		out := a.querier.QueryOnce(ctx, phrase)
		if out.Found {
			candidates = append(candidates, out.Candidate)
		}
		if len(candidates) >= MaxCandidates {
			break
		}
	}
	return candidates
}

// rankCandidates scores each snippet against the submitted text. It returns the
// matches above RelevanceFloor, sorted by percentage descending, and the
// highest score seen over all candidates.
func rankCandidates(text string, candidates []types.CandidateSource) ([]types.ScoredMatch, float64) {
	matches := []types.ScoredMatch{}
	maxScore := 0.0

	for _, c := range candidates {
		score := Score(text, c.Snippet)
		if score > maxScore {
			maxScore = score
		}
		if score <= RelevanceFloor {
			continue
		}
		matches = append(matches, types.ScoredMatch{
			SourceURL:            c.SourceURL,
			Title:                c.Title,
			SimilarityPercentage: round(score*100, 2),
			MatchedText:          c.Snippet,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].SimilarityPercentage > matches[j].SimilarityPercentage
	})
	if len(matches) > MaxCandidates {
		matches = matches[:MaxCandidates]
	}
	return matches, round(maxScore, 4)
}

func failedResult(err error) types.AnalysisResult {
	msg := "Analysis failed: " + err.Error()
	return types.AnalysisResult{
		MatchedSources: []types.ScoredMatch{},
		Error:          &msg,
	}
}
