// Package textmatch provides the string similarity primitive used by the
// fuzzy catalog matcher.
package textmatch

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Similarity scores how close two strings are, in [0, 1]. Comparison is
// case-insensitive. Two empty strings are identical (1); one empty string
// against a non-empty one scores 0.
func Similarity(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	if a == b {
		return 1
	}
	longer, shorter := a, b
	if len(shorter) > len(longer) {
		longer, shorter = shorter, longer
	}
	if len(longer) == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(longer, shorter)
	return float64(len(longer)-dist) / float64(len(longer))
}
