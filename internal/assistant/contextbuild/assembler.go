// Package contextbuild assembles the bounded context document packed into
// each completion prompt: a color-filtered inventory slice, derived
// highlight lists, store policies, and the requester's own data when
// authenticated. Assembly never fails a request; any source that errors
// degrades to its empty value.
package contextbuild

import (
	"context"
	"sort"
	"time"

	"shoestore-assistant/internal/common/logger"
	"shoestore-assistant/internal/models"
	"shoestore-assistant/internal/policies"
)

// CatalogSource provides the product data the context embeds.
type CatalogSource interface {
	Find(ctx context.Context, query models.FacetQuery) ([]models.CatalogEntry, error)
	AllColors(ctx context.Context) ([]string, error)
}

// UserDataSource provides the authenticated requester's commerce data.
type UserDataSource interface {
	Orders(ctx context.Context, userID string) ([]models.OrderSummary, error)
	Cart(ctx context.Context, userID string) (*models.Cart, error)
	Wishlist(ctx context.Context, userID string) (*models.Wishlist, error)
}

// Limits bound the context size to keep prompt tokens in check.
type Limits struct {
	// FetchLimit caps how many entries are pulled from the catalog.
	FetchLimit int
	// InventoryLimit caps how many of those end up in the prompt.
	InventoryLimit int
	// CollectionLimit caps the derived best-seller and sale lists.
	CollectionLimit int
}

var DefaultLimits = Limits{FetchLimit: 100, InventoryLimit: 50, CollectionLimit: 5}

// Highlight is the minimal product view used in derived lists.
type Highlight struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Brand        string  `json:"brand"`
	Price        float64 `json:"price"`
	SaleFraction float64 `json:"saleFraction"`
}

// SaleHighlight adds the listed price a sale price was cut from.
type SaleHighlight struct {
	Highlight
	OriginalPrice float64 `json:"originalPrice"`
}

// SizeRange is the min and max size present across the inventory slice.
type SizeRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// AppliedFilters records which facets narrowed the inventory slice.
type AppliedFilters struct {
	Colors []string `json:"colors"`
}

// InventoryContext is the catalog portion of the prompt context.
type InventoryContext struct {
	Inventory       []models.CatalogEntry `json:"inventory"`
	Brands          []string              `json:"brands"`
	SizeRange       SizeRange             `json:"sizeRange"`
	Categories      []string              `json:"categories"`
	AvailableColors []string              `json:"availableColors"`
	FilteredBy      *AppliedFilters       `json:"filteredBy,omitempty"`
	BestSellers     []Highlight           `json:"bestSellers"`
	SaleItems       []SaleHighlight       `json:"saleItems"`
}

// UserContext is the authenticated requester's own data.
type UserContext struct {
	Orders   []models.OrderSummary `json:"orders"`
	Cart     []models.CartItem     `json:"cart"`
	Wishlist []models.WishlistItem `json:"wishlist"`
}

// Context is the full per-request prompt context. Built fresh every
// request, never cached.
type Context struct {
	Timestamp    string                 `json:"timestamp"`
	ColorFilters []string               `json:"colorFilters"`
	Policies     policies.StorePolicies `json:"policies"`
	Inventory    InventoryContext       `json:"inventory"`
	UserData     *UserContext           `json:"userData,omitempty"`
}

type Assembler struct {
	catalog CatalogSource
	users   UserDataSource
	limits  Limits
	log     logger.Logger
}

func NewAssembler(catalog CatalogSource, users UserDataSource, limits Limits, log logger.Logger) *Assembler {
	if limits.FetchLimit <= 0 {
		limits.FetchLimit = DefaultLimits.FetchLimit
	}
	if limits.InventoryLimit <= 0 {
		limits.InventoryLimit = DefaultLimits.InventoryLimit
	}
	if limits.CollectionLimit <= 0 {
		limits.CollectionLimit = DefaultLimits.CollectionLimit
	}
	return &Assembler{catalog: catalog, users: users, limits: limits, log: log}
}

// Build assembles the prompt context. userID is empty for anonymous
// requests. Source failures are logged and their sections left empty.
func (a *Assembler) Build(ctx context.Context, colorFilters []string, userID string) Context {
	out := Context{
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		ColorFilters: colorFilters,
		Policies:     policies.Store(),
	}

	out.Inventory = a.buildInventory(ctx, colorFilters)

	if userID != "" {
		out.UserData = a.buildUserData(ctx, userID)
	}

	return out
}

func (a *Assembler) buildInventory(ctx context.Context, colorFilters []string) InventoryContext {
	inv := InventoryContext{
		Inventory:       []models.CatalogEntry{},
		Brands:          []string{},
		Categories:      []string{},
		AvailableColors: []string{},
		BestSellers:     []Highlight{},
		SaleItems:       []SaleHighlight{},
	}

	query := models.FacetQuery{Limit: a.limits.FetchLimit}
	if len(colorFilters) > 0 {
		query.Colors = colorFilters
		inv.FilteredBy = &AppliedFilters{Colors: colorFilters}
	}

	entries, err := a.catalog.Find(ctx, query)
	if err != nil {
		a.log.Warn("inventory fetch failed, context degrades to empty", map[string]interface{}{"error": err.Error()})
		return inv
	}

	inv.BestSellers = bestSellers(entries, a.limits.CollectionLimit)
	inv.SaleItems = saleItems(entries, a.limits.CollectionLimit)

	if len(entries) > a.limits.InventoryLimit {
		entries = entries[:a.limits.InventoryLimit]
	}
	inv.Inventory = entries
	inv.Brands = distinct(entries, func(e models.CatalogEntry) string { return e.Brand })
	inv.Categories = distinct(entries, func(e models.CatalogEntry) string { return e.Category })
	inv.SizeRange = sizeRange(entries)

	colors, err := a.catalog.AllColors(ctx)
	if err != nil {
		a.log.Warn("color vocabulary fetch failed", map[string]interface{}{"error": err.Error()})
	} else {
		inv.AvailableColors = colors
	}

	return inv
}

func (a *Assembler) buildUserData(ctx context.Context, userID string) *UserContext {
	user := &UserContext{
		Orders:   []models.OrderSummary{},
		Cart:     []models.CartItem{},
		Wishlist: []models.WishlistItem{},
	}

	if orders, err := a.users.Orders(ctx, userID); err != nil {
		a.log.Warn("order fetch failed", map[string]interface{}{"user_id": userID, "error": err.Error()})
	} else if orders != nil {
		user.Orders = orders
	}

	if cart, err := a.users.Cart(ctx, userID); err != nil {
		a.log.Warn("cart fetch failed", map[string]interface{}{"user_id": userID, "error": err.Error()})
	} else if cart != nil {
		user.Cart = cart.Items
	}

	if wishlist, err := a.users.Wishlist(ctx, userID); err != nil {
		a.log.Warn("wishlist fetch failed", map[string]interface{}{"user_id": userID, "error": err.Error()})
	} else if wishlist != nil {
		user.Wishlist = wishlist.Items
	}

	return user
}

func bestSellers(entries []models.CatalogEntry, limit int) []Highlight {
	out := []Highlight{}
	for _, e := range entries {
		if !e.BestSeller {
			continue
		}
		out = append(out, Highlight{
			ID: e.ID, Name: e.Name, Brand: e.Brand,
			Price: e.EffectivePrice(), SaleFraction: e.SaleFraction,
		})
		if len(out) == limit {
			break
		}
	}
	return out
}

func saleItems(entries []models.CatalogEntry, limit int) []SaleHighlight {
	var onSale []models.CatalogEntry
	for _, e := range entries {
		if e.SaleFraction > 0 {
			onSale = append(onSale, e)
		}
	}
	// Deepest discount first.
	sort.SliceStable(onSale, func(i, j int) bool { return onSale[i].SaleFraction > onSale[j].SaleFraction })

	out := []SaleHighlight{}
	for _, e := range onSale {
		out = append(out, SaleHighlight{
			Highlight: Highlight{
				ID: e.ID, Name: e.Name, Brand: e.Brand,
				Price: e.EffectivePrice(), SaleFraction: e.SaleFraction,
			},
			OriginalPrice: e.Price,
		})
		if len(out) == limit {
			break
		}
	}
	return out
}

func sizeRange(entries []models.CatalogEntry) SizeRange {
	var r SizeRange
	first := true
	for _, e := range entries {
		for _, s := range e.Sizes {
			if first {
				r.Min, r.Max = s, s
				first = false
				continue
			}
			if s < r.Min {
				r.Min = s
			}
			if s > r.Max {
				r.Max = s
			}
		}
	}
	return r
}

func distinct(entries []models.CatalogEntry, key func(models.CatalogEntry) string) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, e := range entries {
		v := key(e)
		if v != "" && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
