package matcher

import (
	"strings"

	"shoestore-assistant/internal/models"
)

// applyColorFilters keeps entries carrying one of the requested colors.
// Entries with no color data pass through. If filtering would eliminate
// every candidate, the unfiltered set is returned so a color
// over-constraint never turns a successful strategy into an empty answer.
func applyColorFilters(entries []models.CatalogEntry, colorFilters []string) []models.CatalogEntry {
	if len(colorFilters) == 0 {
		return entries
	}

	var filtered []models.CatalogEntry
	for _, entry := range entries {
		if len(entry.Colors) == 0 || entryHasAnyColor(entry, colorFilters) {
			filtered = append(filtered, entry)
		}
	}

	if len(filtered) == 0 {
		return entries
	}
	return filtered
}

func entryHasAnyColor(entry models.CatalogEntry, colors []string) bool {
	for _, want := range colors {
		for _, have := range entry.Colors {
			if strings.EqualFold(have, want) {
				return true
			}
		}
	}
	return false
}

// filterByPrice keeps entries whose effective price satisfies the range.
func filterByPrice(entries []models.CatalogEntry, r models.PriceRange) []models.CatalogEntry {
	var matches []models.CatalogEntry
	for _, entry := range entries {
		if r.Contains(entry.EffectivePrice()) {
			matches = append(matches, entry)
		}
	}
	return matches
}

// filterBySizes keeps entries stocking at least one of the requested sizes.
func filterBySizes(entries []models.CatalogEntry, sizes []float64) []models.CatalogEntry {
	var matches []models.CatalogEntry
	for _, entry := range entries {
		if len(entry.Sizes) == 0 {
			continue
		}
		for _, size := range sizes {
			if entry.HasSize(size) {
				matches = append(matches, entry)
				break
			}
		}
	}
	return matches
}
