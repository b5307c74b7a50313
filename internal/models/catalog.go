// internal/models/catalog.go
package models

import "math"

// CatalogEntry is one sellable product as consumed by the matching core.
// Sizes and Colors may be empty; the core tolerates missing sets.
type CatalogEntry struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Brand        string    `json:"brand"`
	Category     string    `json:"category"`
	Description  string    `json:"description,omitempty"`
	Price        float64   `json:"price"`
	Stock        int       `json:"stock"`
	SaleFraction float64   `json:"saleFraction"`
	BestSeller   bool      `json:"bestSeller"`
	Sizes        []float64 `json:"sizes,omitempty"`
	Colors       []string  `json:"colors,omitempty"`
	ImageURL     string    `json:"imageUrl,omitempty"`
}

// Round2 rounds to currency precision.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// EffectivePrice is the listed price after applying the sale fraction.
func (e CatalogEntry) EffectivePrice() float64 {
	if e.SaleFraction <= 0 {
		return Round2(e.Price)
	}
	return Round2(e.Price * (1 - e.SaleFraction))
}

// OriginalPriceFromEffective recovers the listed price from an effective price
// and a sale fraction, within rounding tolerance.
func OriginalPriceFromEffective(effective, saleFraction float64) float64 {
	if saleFraction <= 0 || saleFraction >= 1 {
		return Round2(effective)
	}
	return Round2(effective / (1 - saleFraction))
}

// HasSize reports whether the entry carries the given size.
func (e CatalogEntry) HasSize(size float64) bool {
	for _, s := range e.Sizes {
		if s == size {
			return true
		}
	}
	return false
}

// PriceRange is a half-open price constraint; nil bounds mean unconstrained.
type PriceRange struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// Contains reports whether v satisfies both bounds.
func (r PriceRange) Contains(v float64) bool {
	if r.Min != nil && v < *r.Min {
		return false
	}
	if r.Max != nil && v > *r.Max {
		return false
	}
	return true
}

// FacetQuery carries the independently-extracted constraints of one message.
// Every field is optional; a nil/absent field means "no constraint", not
// "empty set".
type FacetQuery struct {
	Sizes      []float64   `json:"sizes,omitempty"`
	Price      *PriceRange `json:"priceRange,omitempty"`
	Colors     []string    `json:"colors,omitempty"`
	Brands     []string    `json:"brands,omitempty"`
	Genders    []string    `json:"genders,omitempty"`
	Categories []string    `json:"categories,omitempty"`
	Limit      int         `json:"limit,omitempty"`
}
