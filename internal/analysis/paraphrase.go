// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analysis

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

type substitution struct {
	pattern     *regexp.Regexp
	replacement string
}

// substitutions are applied in order; each replaces whole words regardless of
// case with the lowercase replacement.
var substitutions = []substitution{
	wordSubstitution("important", "significant"),
	wordSubstitution("good", "excellent"),
	wordSubstitution("bad", "poor"),
	wordSubstitution("large", "substantial"),
	wordSubstitution("small", "minimal"),
	wordSubstitution("very", "extremely"),
	wordSubstitution("think", "believe"),
	wordSubstitution("say", "state"),
	wordSubstitution("show", "demonstrate"),
}

func wordSubstitution(word, replacement string) substitution {
	return substitution{
		pattern:     regexp.MustCompile(`(?i)` + regexp.QuoteMeta(word)),
		replacement: replacement,
	}
}

// Paraphrase rewrites text with a fixed table of lexical substitutions,
// leaving all other text and punctuation untouched.
func Paraphrase(text string) string {
	for _, s := range substitutions {
		text = s.replaceWords(text)
	}
	return text
}

// replaceWords replaces matches bounded on both sides by a non-word rune or
// the edge of text. Word runes are Unicode letters, digits and underscore, so
// a match inside "éGood" is left alone.
func (s substitution) replaceWords(text string) string {
	matches := s.pattern.FindAllStringIndex(text, -1)
	if matches == nil {
		return text
	}
	var b strings.Builder
	last := 0
	for _, m := range matches {
		if !wordBoundaryBefore(text, m[0]) || !wordBoundaryAfter(text, m[1]) {
			continue
		}
		b.WriteString(text[last:m[0]])
		b.WriteString(s.replacement)
		last = m[1]
	}
	b.WriteString(text[last:])
	return b.String()
}

func wordBoundaryBefore(text string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return !isWordRune(r)
}

func wordBoundaryAfter(text string, i int) bool {
	if i == len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[i:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
