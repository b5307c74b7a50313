package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoestore-assistant/internal/common/logger"
	"shoestore-assistant/internal/models"
)

func testCatalog() []models.CatalogEntry {
	return []models.CatalogEntry{
		{
			ID: "1", Name: "Air Max 90", Brand: "Nike", Category: "Men's Running Shoes",
			Price: 120, Stock: 10, Sizes: []float64{42, 43, 44}, Colors: []string{"Black", "White"},
		},
		{
			ID: "2", Name: "Air Max 270", Brand: "Nike", Category: "Men's Lifestyle Shoes",
			Price: 150, Stock: 5, Sizes: []float64{41, 42}, Colors: []string{"Red"},
		},
		{
			ID: "3", Name: "Ultraboost 22", Brand: "Adidas", Category: "Women's Running Shoes",
			Price: 180, Stock: 8, BestSeller: true, Sizes: []float64{38, 39}, Colors: []string{"White"},
		},
		{
			ID: "4", Name: "Red-Hawls Classic", Brand: "Reebok", Category: "Casual Sneakers",
			Price: 80, Stock: 3, SaleFraction: 0.25, Sizes: []float64{40, 41, 42}, Colors: []string{"Red", "Gray"},
		},
		{
			ID: "5", Name: "Court Vision Low", Brand: "Nike", Category: "Men's Basketball Shoes",
			Price: 90, Stock: 0, BestSeller: true, Sizes: []float64{42}, Colors: []string{"White"},
		},
	}
}

func newTestMatcher() *Matcher {
	return New(logger.NewNoOpLogger(), DefaultLimits)
}

func TestFindMentionedEntriesSizeFacet(t *testing.T) {
	m := newTestMatcher()

	got := m.FindMentionedEntries("do you have anything in size 38?", testCatalog(), nil)

	require.Len(t, got, 1)
	assert.Equal(t, "Ultraboost 22", got[0].Name)
}

func TestFindMentionedEntriesPriceNarrowsSize(t *testing.T) {
	m := newTestMatcher()

	// Size 42 alone matches four entries; the price bound narrows first.
	got := m.FindMentionedEntries("size 42 under 100", testCatalog(), nil)

	require.NotEmpty(t, got)
	for _, entry := range got {
		assert.LessOrEqual(t, entry.EffectivePrice(), 100.0)
		assert.True(t, entry.HasSize(42))
	}
}

func TestFindMentionedEntriesPriceOnly(t *testing.T) {
	m := newTestMatcher()

	got := m.FindMentionedEntries("anything under 100?", testCatalog(), nil)

	require.NotEmpty(t, got)
	for _, entry := range got {
		assert.LessOrEqual(t, entry.EffectivePrice(), 100.0)
	}
}

func TestFindMentionedEntriesEffectivePriceUsed(t *testing.T) {
	m := newTestMatcher()

	// Red-Hawls lists at 80 with 25% off, effective 60.
	got := m.FindMentionedEntries("shoes between 55 and 65", testCatalog(), nil)

	require.Len(t, got, 1)
	assert.Equal(t, "Red-Hawls Classic", got[0].Name)
}

func TestFindMentionedEntriesBrandCategory(t *testing.T) {
	m := newTestMatcher()

	got := m.FindMentionedEntries("show me nike men's basketball shoes", testCatalog(), nil)

	require.NotEmpty(t, got)
	for _, entry := range got {
		assert.Equal(t, "Nike", entry.Brand)
	}
}

func TestFindMentionedEntriesGenderOnly(t *testing.T) {
	m := newTestMatcher()

	got := m.FindMentionedEntries("what do you have for women?", testCatalog(), nil)

	require.Len(t, got, 1)
	assert.Equal(t, "Ultraboost 22", got[0].Name)
}

func TestFindMentionedEntriesBestSellers(t *testing.T) {
	m := newTestMatcher()

	got := m.FindMentionedEntries("what are your best sellers?", testCatalog(), nil)

	require.Len(t, got, 2)
	for _, entry := range got {
		assert.True(t, entry.BestSeller)
	}
}

func TestFindMentionedEntriesExactName(t *testing.T) {
	m := newTestMatcher()

	got := m.FindMentionedEntries("tell me about the air max 90", testCatalog(), nil)

	require.NotEmpty(t, got)
	assert.Equal(t, "Air Max 90", got[0].Name)
}

func TestFindMentionedEntriesFuzzyDistinctiveToken(t *testing.T) {
	m := newTestMatcher()

	got := m.FindMentionedEntries("I saw some red hawls earlier", testCatalog(), nil)

	require.NotEmpty(t, got)
	assert.Equal(t, "Red-Hawls Classic", got[0].Name)
}

func TestFindMentionedEntriesFuzzyTypo(t *testing.T) {
	m := newTestMatcher()

	// Brand hit plus a close model-word typo clears the score threshold.
	got := m.FindMentionedEntries("looking for the adidas ultrabost", testCatalog(), nil)

	require.NotEmpty(t, got)
	assert.Equal(t, "Ultraboost 22", got[0].Name)
}

func TestFindMentionedEntriesDisplayLimit(t *testing.T) {
	m := newTestMatcher()

	got := m.FindMentionedEntries("nike shoes under 500", testCatalog(), nil)

	assert.LessOrEqual(t, len(got), DefaultLimits.Display)
}

func TestFindMentionedEntriesColorFilter(t *testing.T) {
	m := newTestMatcher()

	got := m.FindMentionedEntries("size 42", testCatalog(), []string{"Red"})

	require.NotEmpty(t, got)
	for _, entry := range got {
		assert.Contains(t, entry.Colors, "Red")
	}
}

func TestFindMentionedEntriesColorFallback(t *testing.T) {
	m := newTestMatcher()

	// No size 38 entry is Red; the color filter must not erase the result.
	got := m.FindMentionedEntries("size 38", testCatalog(), []string{"Red"})

	require.Len(t, got, 1)
	assert.Equal(t, "Ultraboost 22", got[0].Name)
}

func TestFindMentionedEntriesBrandTypeFallback(t *testing.T) {
	m := newTestMatcher()

	catalog := []models.CatalogEntry{
		{ID: "10", Name: "Zoom Fly", Brand: "Nike", Category: "High Performance"},
		{ID: "11", Name: "Chuck Taylor", Brand: "Converse", Category: "Casual"},
	}

	got := m.FindMentionedEntries("got any nike high tops", catalog, nil)

	require.Len(t, got, 1)
	assert.Equal(t, "Zoom Fly", got[0].Name)
}

func TestFindMentionedEntriesEmptyCatalog(t *testing.T) {
	m := newTestMatcher()

	assert.Nil(t, m.FindMentionedEntries("air max", nil, nil))
	assert.Nil(t, m.FindMentionedEntries("air max", []models.CatalogEntry{}, nil))
}

func TestFindMentionedEntriesNoMatch(t *testing.T) {
	m := newTestMatcher()

	got := m.FindMentionedEntries("hello there", testCatalog(), nil)

	assert.Empty(t, got)
}
