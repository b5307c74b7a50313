// Package facets extracts independent search constraints (size, price,
// color, brand, gender, category) from free-text messages. Each extractor
// is a pure function over the message and can be called in any order.
package facets

import (
	"regexp"
	"strconv"
)

// Shoe sizes outside this range are treated as noise.
const (
	minShoeSize = 3
	maxShoeSize = 50
)

var sizePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bsize\s+(\d+(?:\.\d+)?)\b`),
	regexp.MustCompile(`(?i)\beu\s+(\d+(?:\.\d+)?)\b`),
	regexp.MustCompile(`(?i)\bus\s+(\d+(?:\.\d+)?)\b`),
	regexp.MustCompile(`(?i)\buk\s+(\d+(?:\.\d+)?)\b`),
	// Stand-alone numbers that could plausibly be sizes.
	regexp.MustCompile(`\b(\d{1,2}(?:\.\d+)?)\b`),
}

// ExtractSizes collects shoe size mentions like "size 42", "EU 40", "US 9.5"
// and bare numbers within the plausible size range. Each pattern contributes
// its first hit; results are deduplicated in encounter order.
func ExtractSizes(message string) []float64 {
	var sizes []float64
	seen := make(map[float64]bool)

	for _, pattern := range sizePatterns {
		m := pattern.FindStringSubmatch(message)
		if m == nil {
			continue
		}
		size, err := strconv.ParseFloat(m[1], 64)
		if err != nil || size < minShoeSize || size > maxShoeSize {
			continue
		}
		if !seen[size] {
			seen[size] = true
			sizes = append(sizes, size)
		}
	}

	return sizes
}
