package facets

import (
	"regexp"
	"strings"

	"shoestore-assistant/internal/models"
)

var genderKeywords = []string{
	"men", "men's", "mens", "male", "man", "man's", "mans",
	"women", "women's", "womens", "female", "woman", "woman's", "womans",
	"unisex", "kids", "children", "child", "boy", "girl", "boys", "girls",
}

var categoryKeywords = []string{
	"running", "basketball", "casual", "formal", "sport", "athletic",
	"training", "walking", "hiking", "outdoor", "lifestyle", "skateboarding",
	"tennis", "football", "soccer", "golf", "gym", "fitness", "sneaker",
}

// ExtractBrands returns the lowercase brand names from the catalog slice
// that appear in the message.
func ExtractBrands(message string, catalog []models.CatalogEntry) []string {
	msg := strings.ToLower(message)
	var brands []string
	seen := make(map[string]bool)

	for _, entry := range catalog {
		if entry.Brand == "" {
			continue
		}
		brand := strings.ToLower(entry.Brand)
		if !seen[brand] && strings.Contains(msg, brand) {
			brands = append(brands, brand)
			seen[brand] = true
		}
	}

	return brands
}

var genderPatterns = compileKeywordPatterns(genderKeywords)

// ExtractGenders returns the gender keywords mentioned in the message,
// un-normalized. Use NormalizeGender to fold variants. Matching is
// whole-word so "women" does not trigger the "men" keyword.
func ExtractGenders(message string) []string {
	msg := strings.ToLower(message)
	var matched []string

	for i, keyword := range genderKeywords {
		if genderPatterns[i].MatchString(msg) {
			matched = append(matched, keyword)
		}
	}

	return matched
}

func compileKeywordPatterns(keywords []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(keywords))
	for i, keyword := range keywords {
		patterns[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(keyword) + `\b`)
	}
	return patterns
}

// NormalizeGender folds possessive and plural variants to a canonical term.
func NormalizeGender(gender string) string {
	switch gender {
	case "man", "man's", "mans":
		return "man"
	case "woman", "woman's", "womans":
		return "women"
	}
	return gender
}

// ExtractCategories returns the recognized category keywords mentioned in
// the message.
func ExtractCategories(message string) []string {
	msg := strings.ToLower(message)
	var matched []string

	for _, keyword := range categoryKeywords {
		if strings.Contains(msg, keyword) {
			matched = append(matched, keyword)
		}
	}

	return matched
}
