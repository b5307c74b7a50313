// Package matcher resolves free-text product mentions against a catalog
// slice. FindMentionedEntries drives the display pipeline through a chain
// of strategies from strongest signal (size, price) to weakest (fuzzy name
// scoring); FindBestActionTarget resolves the single entry a cart or
// wishlist action applies to.
package matcher

import (
	"sort"
	"strings"

	"shoestore-assistant/internal/assistant/facets"
	"shoestore-assistant/internal/assistant/textmatch"
	"shoestore-assistant/internal/common/logger"
	"shoestore-assistant/internal/models"
)

// Limits bound how many entries each result style may carry.
type Limits struct {
	Display int
	List    int
}

// DefaultLimits matches the sizes the chat frontend renders.
var DefaultLimits = Limits{Display: 3, List: 5}

type Matcher struct {
	log    logger.Logger
	limits Limits
}

func New(log logger.Logger, limits Limits) *Matcher {
	if limits.Display <= 0 {
		limits.Display = DefaultLimits.Display
	}
	if limits.List <= 0 {
		limits.List = DefaultLimits.List
	}
	return &Matcher{log: log, limits: limits}
}

// FindMentionedEntries returns the catalog entries the message refers to,
// strongest strategy first. The color facet is applied as a final filter on
// every path, falling back to the unfiltered set when it would eliminate
// everything.
func (m *Matcher) FindMentionedEntries(message string, catalog []models.CatalogEntry, colorFilters []string) []models.CatalogEntry {
	if len(catalog) == 0 {
		return nil
	}
	msg := strings.ToLower(strings.TrimSpace(message))

	// A price facet narrows the working set for every later strategy
	// instead of answering by itself. A soft signal (bare untagged number)
	// yields to an exact product-name mention, where the number is more
	// likely part of the model name than a price.
	working := catalog
	priceNarrowed := false
	if sig := facets.ExtractPriceRange(msg); sig != nil {
		if !sig.Soft || len(exactNameMatches(msg, catalog)) == 0 {
			priceMatches := filterByPrice(working, sig.Range)
			if len(priceMatches) > 0 {
				m.log.Debug("price facet narrowed catalog", map[string]interface{}{"matches": len(priceMatches)})
				working = priceMatches
				priceNarrowed = true
			}
		}
	}

	if sizes := facets.ExtractSizes(msg); len(sizes) > 0 {
		sizeMatches := filterBySizes(working, sizes)
		if len(sizeMatches) > 0 {
			m.log.Debug("size facet matched", map[string]interface{}{"sizes": sizes, "matches": len(sizeMatches)})
			return truncate(applyColorFilters(sizeMatches, colorFilters), m.limits.Display)
		}
	}

	if matches := m.brandCategoryMatches(msg, working); len(matches) > 0 {
		return truncate(applyColorFilters(matches, colorFilters), m.limits.Display)
	}

	if matches := m.genderOnlyMatches(msg, working); len(matches) > 0 {
		return truncate(applyColorFilters(matches, colorFilters), m.limits.List)
	}

	if matches := m.bestSellerMatches(msg, working); len(matches) > 0 {
		return truncate(applyColorFilters(matches, colorFilters), m.limits.List)
	}

	if matches := exactNameMatches(msg, working); len(matches) > 0 {
		return truncate(applyColorFilters(matches, colorFilters), m.limits.Display)
	}

	if priceNarrowed {
		return truncate(applyColorFilters(working, colorFilters), m.limits.Display)
	}

	if matches := m.fuzzyMatches(msg, working); len(matches) > 0 {
		return truncate(applyColorFilters(matches, colorFilters), m.limits.Display)
	}

	if matches := brandTypeMatches(msg, working); len(matches) > 0 {
		return truncate(applyColorFilters(matches, colorFilters), m.limits.Display)
	}

	return nil
}

// brandCategoryMatches requires a brand mention plus a gender or category
// term. A bare brand never matches, that would return the whole brand line.
func (m *Matcher) brandCategoryMatches(msg string, catalog []models.CatalogEntry) []models.CatalogEntry {
	brands := facets.ExtractBrands(msg, catalog)
	if len(brands) == 0 {
		return nil
	}
	genders := facets.ExtractGenders(msg)
	categories := facets.ExtractCategories(msg)
	if len(genders) == 0 && len(categories) == 0 {
		return nil
	}

	var matches []models.CatalogEntry
	for _, entry := range catalog {
		if entry.Brand == "" || !containsString(brands, strings.ToLower(entry.Brand)) {
			continue
		}
		if len(genders) > 0 && !entryMatchesGender(entry, genders) {
			continue
		}
		if len(categories) > 0 && entry.Category != "" && !entryMatchesCategory(entry, categories) {
			continue
		}
		matches = append(matches, entry)
	}

	if len(matches) > 0 {
		m.log.Debug("brand+category matched", map[string]interface{}{"brands": brands, "matches": len(matches)})
	}
	return matches
}

func (m *Matcher) genderOnlyMatches(msg string, catalog []models.CatalogEntry) []models.CatalogEntry {
	genders := facets.ExtractGenders(msg)
	if len(genders) == 0 {
		return nil
	}

	normalized := make([]string, 0, len(genders))
	for _, g := range genders {
		normalized = append(normalized, facets.NormalizeGender(g))
	}

	var matches []models.CatalogEntry
	for _, entry := range catalog {
		if entryMatchesGender(entry, normalized) {
			matches = append(matches, entry)
		}
	}

	if len(matches) > 0 {
		m.log.Debug("gender-only matched", map[string]interface{}{"genders": normalized, "matches": len(matches)})
	}
	return matches
}

var bestSellerTerms = []string{
	"best seller", "bestseller", "best selling", "bestselling",
	"most popular", "top selling", "popular", "trending",
	"top rated", "most bought", "best shoes",
}

func (m *Matcher) bestSellerMatches(msg string, catalog []models.CatalogEntry) []models.CatalogEntry {
	mentioned := false
	for _, term := range bestSellerTerms {
		if strings.Contains(msg, term) {
			mentioned = true
			break
		}
	}
	if !mentioned {
		return nil
	}

	var matches []models.CatalogEntry
	for _, entry := range catalog {
		if entry.BestSeller {
			matches = append(matches, entry)
		}
	}

	m.log.Debug("best seller query", map[string]interface{}{"matches": len(matches)})
	return matches
}

func exactNameMatches(msg string, catalog []models.CatalogEntry) []models.CatalogEntry {
	var matches []models.CatalogEntry
	for _, entry := range catalog {
		if entry.Name == "" {
			continue
		}
		if strings.Contains(msg, strings.ToLower(entry.Name)) {
			matches = append(matches, entry)
		}
	}
	return matches
}

var fuzzyStopwords = map[string]bool{"the": true, "and": true, "for": true, "with": true}

// Generic tokens that never count as a distinctive model identifier.
var genericNameTokens = map[string]bool{
	"air": true, "jordan": true, "nike": true, "adidas": true,
	"shoe": true, "boot": true, "sneaker": true,
}

type scoredEntry struct {
	entry models.CatalogEntry
	score int
}

// fuzzyMatches scores each catalog name against word and phrase fragments
// of the message. Entries qualify with score > 5 or at least two distinct
// matched name parts.
func (m *Matcher) fuzzyMatches(msg string, catalog []models.CatalogEntry) []models.CatalogEntry {
	msgWords := strings.Fields(msg)

	parts := make(map[string]bool, len(msgWords))
	for _, w := range msgWords {
		parts[w] = true
		if strings.Contains(w, "-") {
			for _, p := range strings.Split(w, "-") {
				if len(p) > 2 {
					parts[p] = true
				}
			}
		}
	}
	// Sliding phrases of 2 to 5 consecutive words.
	for i := 0; i < len(msgWords)-1; i++ {
		for j := i + 1; j < len(msgWords) && j < i+5; j++ {
			phrase := strings.Join(msgWords[i:j+1], " ")
			if len(phrase) > 4 {
				parts[phrase] = true
			}
		}
	}

	var scored []scoredEntry
	for _, entry := range catalog {
		if entry.Name == "" {
			continue
		}
		name := strings.ToLower(entry.Name)
		nameParts := splitNameParts(name)

		score := 0
		matched := make(map[string]bool)

		for _, part := range nameParts {
			if fuzzyStopwords[part] {
				continue
			}
			if parts[part] {
				score += len(part)
				matched[part] = true
				continue
			}
			if len(part) > 3 && strings.Contains(msg, part) {
				score += len(part) - 1
				matched[part] = true
				continue
			}
			if len(part) > 4 {
				for msgPart := range parts {
					if len(msgPart) > 4 && textmatch.Similarity(msgPart, part) > 0.8 {
						score += 3
						matched[part] = true
						break
					}
				}
			}
		}

		if entry.Brand != "" && strings.Contains(msg, strings.ToLower(entry.Brand)) {
			score += 5
			matched[strings.ToLower(entry.Brand)] = true
		}

		for _, part := range nameParts {
			if len(part) <= 3 || genericNameTokens[part] {
				continue
			}
			noHyphen := strings.ReplaceAll(part, "-", " ")
			if strings.Contains(msg, part) || (noHyphen != part && strings.Contains(msg, noHyphen)) {
				score += 10
				matched[part] = true
			}
		}

		if score > 5 || len(matched) >= 2 {
			scored = append(scored, scoredEntry{entry: entry, score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })

	matches := make([]models.CatalogEntry, 0, len(scored))
	for _, s := range scored {
		m.log.Debug("fuzzy match", map[string]interface{}{"name": s.entry.Name, "score": s.score})
		matches = append(matches, s.entry)
	}
	return matches
}

var shoeTypeKeywords = []string{
	"running", "sneaker", "boot", "sandal", "casual", "athletic",
	"mid", "low", "high",
}

// brandTypeMatches is the last resort: a brand mention co-occurring with a
// generic shoe-type word selects that brand's entries of that type.
func brandTypeMatches(msg string, catalog []models.CatalogEntry) []models.CatalogEntry {
	var matches []models.CatalogEntry
	seen := make(map[string]bool)

	for _, brand := range facets.ExtractBrands(msg, catalog) {
		for _, kind := range shoeTypeKeywords {
			if !strings.Contains(msg, kind) {
				continue
			}
			for _, entry := range catalog {
				if entry.Brand == "" || strings.ToLower(entry.Brand) != brand || seen[entry.ID] {
					continue
				}
				if strings.Contains(strings.ToLower(entry.Name), kind) ||
					strings.Contains(strings.ToLower(entry.Category), kind) {
					matches = append(matches, entry)
					seen[entry.ID] = true
				}
			}
		}
	}

	return matches
}

func splitNameParts(name string) []string {
	raw := strings.FieldsFunc(name, func(r rune) bool { return r == ' ' || r == '-' })
	parts := raw[:0]
	for _, p := range raw {
		if len(p) > 2 {
			parts = append(parts, p)
		}
	}
	return parts
}

func entryMatchesGender(entry models.CatalogEntry, genders []string) bool {
	name := strings.ToLower(entry.Name)
	category := strings.ToLower(entry.Category)

	for _, gender := range genders {
		if strings.Contains(name, gender) || strings.Contains(category, gender) {
			return true
		}
		for _, variation := range []string{gender + "'s shoes", gender + "s shoes", gender + " shoes"} {
			if strings.Contains(category, variation) {
				return true
			}
		}
	}
	return false
}

func entryMatchesCategory(entry models.CatalogEntry, categories []string) bool {
	category := strings.ToLower(entry.Category)
	for _, c := range categories {
		if strings.Contains(category, c) {
			return true
		}
	}
	return false
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func truncate(entries []models.CatalogEntry, limit int) []models.CatalogEntry {
	if limit > 0 && len(entries) > limit {
		return entries[:limit]
	}
	return entries
}
