package matcher

import (
	"regexp"
	"sort"
	"strings"

	"shoestore-assistant/internal/assistant/textmatch"
	"shoestore-assistant/internal/models"
)

var (
	actionPhrasePattern = regexp.MustCompile(`(?i)(?:add|remove|delete)\s+(?:the\s+)?([^"]+?)(?:\s+in\s+size\s+\d+(?:\.\d+)?)?(?:\s+(?:to|from)\s+(?:cart|wishlist))`)
	buyPhrasePattern    = regexp.MustCompile(`(?i)(?:buy|purchase)\s+(?:the\s+)?([^"]+?)(?:\s+in\s+size\s+\d+(?:\.\d+)?)?(?:$|\s+and|\s+for)`)
	actionKeywordStrip  = regexp.MustCompile(`remove|delete|from|cart|wishlist`)
)

const targetSimilarityThreshold = 0.7

// FindBestActionTarget resolves which single catalog entry a cart or
// wishlist action refers to. An explicit quoted product name wins outright;
// remove intents try progressively shorter phrases of the message against
// entry names; then extracted action phrases are matched by similarity,
// then brand plus model-word overlap, and finally a literal name substring.
// Returns nil when nothing plausibly matches.
func (m *Matcher) FindBestActionTarget(message, explicitName string, catalog []models.CatalogEntry, colorFilters []string) *models.CatalogEntry {
	if len(catalog) == 0 {
		return nil
	}

	candidates := applyColorFilters(catalog, colorFilters)

	if explicitName != "" {
		want := strings.ToLower(explicitName)
		for _, entry := range candidates {
			name := strings.ToLower(entry.Name)
			if name == want || strings.Contains(name, want) {
				e := entry
				return &e
			}
		}
	}

	msg := strings.ToLower(message)

	if strings.Contains(msg, "remove") || strings.Contains(msg, "delete") {
		if entry := m.removePhraseMatch(msg, candidates); entry != nil {
			return entry
		}
	}

	var extracted []string
	if mt := actionPhrasePattern.FindStringSubmatch(msg); mt != nil {
		extracted = append(extracted, strings.TrimSpace(mt[1]))
	}
	if mt := buyPhrasePattern.FindStringSubmatch(msg); mt != nil {
		extracted = append(extracted, strings.TrimSpace(mt[1]))
	}

	for _, name := range extracted {
		if entry := m.bestSimilarityMatch(name, candidates); entry != nil {
			return entry
		}
	}

	if entry := m.brandModelMatch(msg, candidates); entry != nil {
		return entry
	}

	for _, entry := range candidates {
		if entry.Name != "" && strings.Contains(msg, strings.ToLower(entry.Name)) {
			e := entry
			return &e
		}
	}

	return nil
}

// removePhraseMatch strips the action vocabulary and slides windows of 5
// down to 2 words over what remains, accepting a phrase only when it
// identifies exactly one entry.
func (m *Matcher) removePhraseMatch(msg string, candidates []models.CatalogEntry) *models.CatalogEntry {
	words := strings.Fields(strings.TrimSpace(actionKeywordStrip.ReplaceAllString(msg, "")))

	maxLen := len(words)
	if maxLen > 5 {
		maxLen = 5
	}
	for wordCount := maxLen; wordCount >= 2; wordCount-- {
		for start := 0; start+wordCount <= len(words); start++ {
			phrase := strings.Join(words[start:start+wordCount], " ")
			if len(phrase) < 4 {
				continue
			}
			var hits []models.CatalogEntry
			for _, entry := range candidates {
				if entry.Name != "" && strings.Contains(strings.ToLower(entry.Name), phrase) {
					hits = append(hits, entry)
				}
			}
			if len(hits) == 1 {
				return &hits[0]
			}
		}
	}
	return nil
}

func (m *Matcher) bestSimilarityMatch(name string, candidates []models.CatalogEntry) *models.CatalogEntry {
	type match struct {
		entry      models.CatalogEntry
		similarity float64
	}
	var matches []match
	for _, entry := range candidates {
		if entry.Name == "" {
			continue
		}
		sim := textmatch.Similarity(strings.ToLower(entry.Name), strings.ToLower(name))
		if sim > targetSimilarityThreshold {
			matches = append(matches, match{entry: entry, similarity: sim})
		}
	}
	if len(matches) == 0 {
		return nil
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].similarity > matches[j].similarity })
	m.log.Debug("similarity target match", map[string]interface{}{
		"phrase": name, "name": matches[0].entry.Name, "similarity": matches[0].similarity,
	})
	return &matches[0].entry
}

// brandModelMatch detects a brand mention, then prefers the brand's entry
// with the most model words present in the message, falling back to the
// brand's first entry.
func (m *Matcher) brandModelMatch(msg string, candidates []models.CatalogEntry) *models.CatalogEntry {
	var detectedBrand string
	for _, entry := range candidates {
		if entry.Brand == "" {
			continue
		}
		brand := strings.ToLower(entry.Brand)
		if strings.Contains(msg, brand) {
			detectedBrand = brand
			break
		}
	}
	if detectedBrand == "" {
		return nil
	}

	var brandEntries []models.CatalogEntry
	for _, entry := range candidates {
		if entry.Brand != "" && strings.ToLower(entry.Brand) == detectedBrand {
			brandEntries = append(brandEntries, entry)
		}
	}

	best := -1
	bestScore := 0
	for i, entry := range brandEntries {
		score := 0
		for _, word := range strings.Fields(strings.ToLower(entry.Name)) {
			if len(word) > 2 && strings.Contains(msg, word) {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			best = i
		}
	}
	if best >= 0 {
		m.log.Debug("brand model target match", map[string]interface{}{
			"brand": detectedBrand, "name": brandEntries[best].Name, "score": bestScore,
		})
		return &brandEntries[best]
	}

	return &brandEntries[0]
}
