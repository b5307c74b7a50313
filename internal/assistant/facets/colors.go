package facets

import (
	"regexp"
	"strings"
)

// Spelling variants mapped to the canonical form looked up in the catalog
// vocabulary. Both the variant and the canonical form are accepted as the
// catalog color.
var colorVariants = map[string]string{
	"grey":          "gray",
	"gray":          "grey",
	"multicolored":  "multicolor",
	"multi-color":   "multicolor",
	"multi-colored": "multicolor",
	"multi colored": "multicolor",
}

// DetectColors finds color mentions in the message using the live catalog
// color set as vocabulary. Matches are whole-word only, so "red" is not
// found inside "bored". Returned values keep the catalog's original casing.
func DetectColors(message string, availableColors []string) []string {
	if len(availableColors) == 0 {
		return nil
	}

	msg := strings.ToLower(message)
	var detected []string
	seen := make(map[string]bool)

	for _, color := range availableColors {
		if color == "" {
			continue
		}
		if wordBoundaryMatch(msg, strings.ToLower(color)) && !seen[color] {
			detected = append(detected, color)
			seen[color] = true
		}
	}

	for variant, canonical := range colorVariants {
		if !wordBoundaryMatch(msg, variant) {
			continue
		}
		for _, color := range availableColors {
			lower := strings.ToLower(color)
			if (lower == canonical || lower == variant) && !seen[color] {
				detected = append(detected, color)
				seen[color] = true
			}
		}
	}

	return detected
}

func wordBoundaryMatch(msg, word string) bool {
	re, err := regexp.Compile(`\b` + regexp.QuoteMeta(word) + `\b`)
	if err != nil {
		return false
	}
	return re.MatchString(msg)
}
