// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  Hello   World \n", "hello world"},
		{"Tabs\tand\nnewlines", "tabs and newlines"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		got := Normalize(tt.in)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, got, Normalize(got), "normalize must be idempotent")
	}
}

func TestExtractPhrases(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "qualifying sentences keep eight words",
			text: "The quick brown fox jumps over the lazy sleeping dog today. Short one. Another sentence that is long enough to count here.",
			want: []string{
				"The quick brown fox jumps over the lazy",
				"Another sentence that is long enough to count",
			},
		},
		{
			name: "at most three phrases",
			text: "First sentence has plenty of words in it. Second sentence has plenty of words in it. Third sentence has plenty of words in it. Fourth sentence has plenty of words in it.",
			want: []string{
				"First sentence has plenty of words in it",
				"Second sentence has plenty of words in it",
				"Third sentence has plenty of words in it",
			},
		},
		{
			name: "nine words are cut to eight",
			text: "One two three four five six seven eight nine. Eight words here and no more than that.",
			want: []string{
				"One two three four five six seven eight",
				"Eight words here and no more than that",
			},
		},
		{
			name: "fallback to leading words",
			text: "Too short. Also short! Tiny?",
			want: []string{"Too short. Also short! Tiny?"},
		},
		{
			name: "four words is not enough",
			text: "Extraordinarily lengthy vocabulary everywhere.",
			want: []string{"Extraordinarily lengthy vocabulary everywhere."},
		},
		{
			name: "empty text yields one empty phrase",
			text: "",
			want: []string{""},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractPhrases(tt.text))
		})
	}
}

func TestExtractPhrasesSkipsLongSentences(t *testing.T) {
	long := strings.Repeat("word ", 50) + "end."
	got := ExtractPhrases(long + " This sentence is fine and long enough.")
	assert.Equal(t, []string{"This sentence is fine and long enough"}, got)
}

func TestExtractPhrasesInvariants(t *testing.T) {
	texts := []string{
		"",
		"one",
		"A reasonably long sentence with words. Another one that qualifies too! And a third that also counts? Plus a fourth for good measure.",
	}
	for _, text := range texts {
		phrases := ExtractPhrases(text)
		assert.GreaterOrEqual(t, len(phrases), 1)
		assert.LessOrEqual(t, len(phrases), MaxPhrases)
		for _, p := range phrases {
			assert.LessOrEqual(t, len(strings.Fields(p)), PhraseWords)
		}
	}
}

func TestRound(t *testing.T) {
	assert.Equal(t, 0.4545, round(0.45454545, 4))
	assert.Equal(t, 45.45, round(45.454545, 2))
	assert.Equal(t, 1.0, round(0.99999, 4))
}
