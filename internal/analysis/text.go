// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analysis implements the text analysis and scoring pipeline: phrase
// extraction, snippet similarity, heuristic AI-generation detection,
// paraphrasing, and the aggregator that combines them into an AnalysisResult.
package analysis

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// MaxPhrases is the number of search phrases extracted per text.
	MaxPhrases = 3

	// PhraseWords is the number of leading words kept per phrase.
	PhraseWords = 8

	minSentenceLen   = 20
	maxSentenceLen   = 200
	minSentenceWords = 4
)

var sentenceEnd = regexp.MustCompile(`[.!?]+`)

// Normalize collapses whitespace runs to a single space, trims, and lowercases.
func Normalize(text string) string {
	return strings.ToLower(strings.Join(strings.Fields(text), " "))
}

// ExtractPhrases derives up to three search phrases from text. Sentences between
// 20 and 200 characters with more than four words contribute their first eight
// words. When no sentence qualifies, the first eight words of the whole text are
// used, so the result always holds at least one (possibly empty) phrase.
func ExtractPhrases(text string) []string {
	var phrases []string
	for _, segment := range splitSentences(text) {
		sentence := strings.TrimSpace(segment)
		n := utf8.RuneCountInString(sentence)
		if n <= minSentenceLen || n >= maxSentenceLen {
			continue
		}
		words := strings.Fields(sentence)
		if len(words) > minSentenceWords {
			phrases = append(phrases, leadingWords(words, PhraseWords))
		}
	}

	if len(phrases) == 0 {
		return []string{leadingWords(strings.Fields(text), PhraseWords)}
	}
	if len(phrases) > MaxPhrases {
		phrases = phrases[:MaxPhrases]
	}
	return phrases
}

// splitSentences splits on runs of sentence terminators. Segments are returned
// untrimmed and a trailing terminator yields a final empty segment.
func splitSentences(text string) []string {
	return sentenceEnd.Split(text, -1)
}

func leadingWords(words []string, n int) string {
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
