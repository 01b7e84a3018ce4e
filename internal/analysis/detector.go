// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analysis

import (
	"math"
	"math/rand/v2"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/plagiarism-detector/pkg/types"
)

// AIThreshold is the confidence above which a text is classified as likely
// machine-generated. Tunable; the value carries no calibration.
const AIThreshold = 0.5

const (
	repetitiveWeight = 0.3
	genericWeight    = 0.2
	structureWeight  = 0.2

	// noiseSpan bounds the random term added to every confidence: [0, noiseSpan).
	noiseSpan = 0.3

	sentenceLenTolerance  = 10
	sentenceSimilarRatio  = 0.7
	minSentences          = 3
	paragraphLenTolerance = 50
	paragraphSimilarRatio = 0.8
	minParagraphs         = 2
	minGenericPhrases     = 2
)

// genericPhrases are transition phrases over-represented in generated prose.
var genericPhrases = []string{
	"it is important to",
	"in conclusion",
	"furthermore",
	"moreover",
	"additionally",
	"it should be noted",
	"as mentioned earlier",
	"it is worth noting",
	"it is clear that",
	"it can be seen that",
}

// RandomSource yields uniformly distributed values in [0, 1).
// *rand.Rand from math/rand/v2 satisfies it.
type RandomSource interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// Detector estimates how likely a text is to be machine-generated from three
// structural heuristics plus a bounded random term. It is not deterministic
// unless constructed with a fixed RandomSource.
type Detector struct {
	rng RandomSource
}

// NewDetector returns a Detector drawing noise from rng. A nil rng uses the
// process-wide math/rand/v2 source.
func NewDetector(rng RandomSource) *Detector {
	if rng == nil {
		rng = globalSource{}
	}
	return &Detector{rng: rng}
}

// Detect scores text. The reported confidence is clamped to 1.0 and rounded to
// 4 decimals; classification compares that reported value with AIThreshold.
func (d *Detector) Detect(text string) types.AiAssessment {
	confidence := 0.0
	if repetitiveSentences(text) {
		confidence += repetitiveWeight
	}
	if genericPhraseCount(text) >= minGenericPhrases {
		confidence += genericWeight
	}
	if uniformParagraphs(text) {
		confidence += structureWeight
	}
	confidence += d.rng.Float64() * noiseSpan

	confidence = round(math.Min(confidence, 1.0), 4)
	return types.AiAssessment{
		IsLikelyGenerated: confidence > AIThreshold,
		Confidence:        confidence,
	}
}

// repetitiveSentences reports whether adjacent sentence lengths are mostly
// within sentenceLenTolerance characters of each other.
func repetitiveSentences(text string) bool {
	sentences := splitSentences(text)
	if len(sentences) < minSentences {
		return false
	}
	return similarAdjacentRatio(sentences, sentenceLenTolerance) > sentenceSimilarRatio
}

func genericPhraseCount(text string) int {
	lower := strings.ToLower(text)
	count := 0
	for _, p := range genericPhrases {
		if strings.Contains(lower, p) {
			count++
		}
	}
	return count
}

// uniformParagraphs reports whether adjacent paragraph lengths are mostly
// within paragraphLenTolerance characters of each other.
func uniformParagraphs(text string) bool {
	paragraphs := strings.Split(text, "\n\n")
	if len(paragraphs) < minParagraphs {
		return false
	}
	return similarAdjacentRatio(paragraphs, paragraphLenTolerance) > paragraphSimilarRatio
}

// similarAdjacentRatio is the fraction of adjacent pairs whose rune lengths
// differ by less than tolerance. parts must hold at least two elements.
func similarAdjacentRatio(parts []string, tolerance int) float64 {
	similar := 0
	for i := 1; i < len(parts); i++ {
		diff := utf8.RuneCountInString(parts[i]) - utf8.RuneCountInString(parts[i-1])
		if diff < 0 {
			diff = -diff
		}
		if diff < tolerance {
			similar++
		}
	}
	return float64(similar) / float64(len(parts)-1)
}
