// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analysis

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fixedSource always returns v.
type fixedSource float64

func (f fixedSource) Float64() float64 { return float64(f) }

const (
	repetitiveText = "abcdefghij. abcdefghij. abcdefghij"
	genericText    = "It is important to note that furthermore this is a good example. Moreover, it is clear that this shows excellence."
)

func TestDetectBoundaries(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		noise        float64
		wantConf     float64
		wantDetected bool
	}{
		{"plain text no noise", "Just a plain sentence", 0.0, 0.0, false},
		{"plain text partial noise", "Just a plain sentence", 0.2999, 0.09, false},
		{"plain text max noise", "Just a plain sentence", 0.9999, 0.3, false},
		{"repetitive no noise", repetitiveText, 0.0, 0.3, false},
		{"repetitive partial noise", repetitiveText, 0.2999, 0.39, false},
		{"repetitive max noise", repetitiveText, 0.9999, 0.6, true},
		{"generic no noise", genericText, 0.0, 0.2, false},
		{"generic partial noise", genericText, 0.2999, 0.29, false},
		{"generic max noise rounds to threshold", genericText, 0.9999, 0.5, false},
		{"paragraphs no noise", "aaaa\n\nbbbb", 0.0, 0.2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewDetector(fixedSource(tt.noise)).Detect(tt.text)
			assert.InDelta(t, tt.wantConf, got.Confidence, 1e-4)
			assert.Equal(t, tt.wantDetected, got.IsLikelyGenerated)
		})
	}
}

func TestDetectCrossesThreshold(t *testing.T) {
	// Repetition and generic phrases together give 0.5; only the noise term
	// decides the classification.
	text := "It is important to see. Furthermore we act now. Moreover we do it"

	low := NewDetector(fixedSource(0.0)).Detect(text)
	assert.Equal(t, 0.5, low.Confidence)
	assert.False(t, low.IsLikelyGenerated, "0.5 is not above the threshold")

	high := NewDetector(fixedSource(0.2999)).Detect(text)
	assert.InDelta(t, 0.59, high.Confidence, 1e-4)
	assert.True(t, high.IsLikelyGenerated)
}

func TestDetectAllHeuristics(t *testing.T) {
	text := "It is important to see this. Furthermore we act now ok." +
		"\n\nMoreover we do it again now. Additionally it works well."
	got := NewDetector(fixedSource(0.2999)).Detect(text)
	assert.InDelta(t, 0.79, got.Confidence, 1e-4)
	assert.LessOrEqual(t, got.Confidence, 1.0)
	assert.True(t, got.IsLikelyGenerated)
}

func TestRepetitiveSentences(t *testing.T) {
	assert.True(t, repetitiveSentences(repetitiveText))
	// The trailing terminator adds an empty final segment that breaks the run.
	assert.False(t, repetitiveSentences(repetitiveText+"."))
	assert.False(t, repetitiveSentences("one. two"))
}

func TestUniformParagraphs(t *testing.T) {
	assert.True(t, uniformParagraphs("aaaa\n\nbbbb"))
	assert.False(t, uniformParagraphs("single paragraph"))
	assert.False(t, uniformParagraphs("a\n\n"+strings.Repeat("x", 60)))
}

func TestGenericPhraseCount(t *testing.T) {
	assert.Equal(t, 4, genericPhraseCount(genericText))
	assert.Equal(t, 0, genericPhraseCount("nothing generic here"))
}

func TestDetectStatistical(t *testing.T) {
	d := NewDetector(rand.New(rand.NewPCG(1, 2)))

	// Generic phrases alone contribute 0.2 and the noise stays below 0.3, so
	// the confidence never reaches the threshold.
	for range 1000 {
		got := d.Detect(genericText)
		assert.GreaterOrEqual(t, got.Confidence, 0.2)
		assert.Less(t, got.Confidence, 0.5)
		assert.False(t, got.IsLikelyGenerated)
	}

	// Adding sentence repetition puts the base at 0.5, so every trial with
	// non-zero noise is classified as generated.
	text := "It is important to see. Furthermore we act now. Moreover we do it"
	detected := 0
	for range 1000 {
		got := d.Detect(text)
		assert.Equal(t, got.Confidence > AIThreshold, got.IsLikelyGenerated)
		if got.IsLikelyGenerated {
			detected++
		}
	}
	assert.Greater(t, detected, 990)
}

func TestDetectDefaultSource(t *testing.T) {
	got := NewDetector(nil).Detect(genericText)
	assert.GreaterOrEqual(t, got.Confidence, 0.2)
	assert.Less(t, got.Confidence, 0.5)
}
