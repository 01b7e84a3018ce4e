// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "Some text here", "Some text here", 1.0},
		{"identical after normalization", "Some   TEXT here", "some text\nhere", 1.0},
		{"empty left", "", "text", 0.0},
		{"empty right", "text", "", 0.0},
		{"reordered words", "hello world", "world hello", 0.4545},
		{"one word differs", "the quick brown fox", "the quick red fox", 0.8333},
		{"disjoint", "abc", "xyz", 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.a, tt.b))
		})
	}
}

func TestScoreSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"hello world", "world hello"},
		{"the quick brown fox", "the quick red fox"},
		{"plagiarism detection", "detection of plagiarism"},
		{"abc", "abd"},
	}
	for _, p := range pairs {
		assert.Equal(t, Score(p[0], p[1]), Score(p[1], p[0]), "%q vs %q", p[0], p[1])
	}
}

func TestScoreRange(t *testing.T) {
	for _, b := range []string{"a", "a dog ran", "the cat sat", "completely different words"} {
		s := Score("the cat sat on the warm mat", b)
		assert.GreaterOrEqual(t, s, 0.0)
		assert.LessOrEqual(t, s, 1.0)
	}
}
