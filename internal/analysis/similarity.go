// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analysis

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Score returns the similarity of two texts in [0, 1], rounded to 4 decimals.
// Both texts are normalized and compared rune by rune with the SequenceMatcher
// ratio 2*M/T, where M is the total size of the matching blocks and T the
// combined length. An empty input scores 0.
func Score(a, b string) float64 {
	if a == "" || b == "" {
		return 0.0
	}

	// Auto-junk is off: it only fires for sequences of 200+ elements and would
	// make the ratio depend on argument order.
	m := difflib.NewMatcherWithJunk(runes(Normalize(a)), runes(Normalize(b)), false, nil)
	return round(m.Ratio(), 4)
}

// runes splits s into one element per UTF-8 encoded rune.
func runes(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "")
}
