package contextbuild

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoestore-assistant/internal/common/logger"
	"shoestore-assistant/internal/models"
)

type fakeCatalog struct {
	entries   []models.CatalogEntry
	colors    []string
	findErr   error
	colorsErr error
	lastQuery models.FacetQuery
}

func (f *fakeCatalog) Find(_ context.Context, query models.FacetQuery) ([]models.CatalogEntry, error) {
	f.lastQuery = query
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.entries, nil
}

func (f *fakeCatalog) AllColors(_ context.Context) ([]string, error) {
	if f.colorsErr != nil {
		return nil, f.colorsErr
	}
	return f.colors, nil
}

type fakeUserData struct {
	orders      []models.OrderSummary
	cart        *models.Cart
	wishlist    *models.Wishlist
	ordersErr   error
	cartErr     error
	wishlistErr error
}

func (f *fakeUserData) Orders(_ context.Context, _ string) ([]models.OrderSummary, error) {
	return f.orders, f.ordersErr
}

func (f *fakeUserData) Cart(_ context.Context, _ string) (*models.Cart, error) {
	return f.cart, f.cartErr
}

func (f *fakeUserData) Wishlist(_ context.Context, _ string) (*models.Wishlist, error) {
	return f.wishlist, f.wishlistErr
}

func sampleEntries() []models.CatalogEntry {
	return []models.CatalogEntry{
		{ID: "1", Name: "Air Max 90", Brand: "Nike", Category: "Running", Price: 120, Sizes: []float64{42, 43}},
		{ID: "2", Name: "Ultraboost 22", Brand: "Adidas", Category: "Running", Price: 180, BestSeller: true, Sizes: []float64{38, 39}},
		{ID: "3", Name: "Red-Hawls Classic", Brand: "Reebok", Category: "Casual", Price: 80, SaleFraction: 0.25, Sizes: []float64{40}},
		{ID: "4", Name: "Court Vision Low", Brand: "Nike", Category: "Basketball", Price: 90, SaleFraction: 0.1, BestSeller: true, Sizes: []float64{44}},
	}
}

func newTestAssembler(catalog *fakeCatalog, users *fakeUserData, limits Limits) *Assembler {
	return NewAssembler(catalog, users, limits, logger.NewNoOpLogger())
}

func TestBuildAnonymous(t *testing.T) {
	catalog := &fakeCatalog{entries: sampleEntries(), colors: []string{"Black", "Red"}}
	a := newTestAssembler(catalog, &fakeUserData{}, Limits{})

	got := a.Build(context.Background(), nil, "")

	assert.Nil(t, got.UserData)
	assert.Len(t, got.Inventory.Inventory, 4)
	assert.ElementsMatch(t, []string{"Nike", "Adidas", "Reebok"}, got.Inventory.Brands)
	assert.ElementsMatch(t, []string{"Running", "Casual", "Basketball"}, got.Inventory.Categories)
	assert.Equal(t, []string{"Black", "Red"}, got.Inventory.AvailableColors)
	assert.Equal(t, SizeRange{Min: 38, Max: 44}, got.Inventory.SizeRange)
	assert.Nil(t, got.Inventory.FilteredBy)
	assert.Equal(t, 30, got.Policies.ReturnPolicy.Days)

	ts, err := time.Parse(time.RFC3339, got.Timestamp)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), ts, time.Minute)
}

func TestBuildColorFilterPropagates(t *testing.T) {
	catalog := &fakeCatalog{entries: sampleEntries()}
	a := newTestAssembler(catalog, &fakeUserData{}, Limits{})

	got := a.Build(context.Background(), []string{"Red"}, "")

	assert.Equal(t, []string{"Red"}, catalog.lastQuery.Colors)
	require.NotNil(t, got.Inventory.FilteredBy)
	assert.Equal(t, []string{"Red"}, got.Inventory.FilteredBy.Colors)
}

func TestBuildBestSellerHighlights(t *testing.T) {
	catalog := &fakeCatalog{entries: sampleEntries()}
	a := newTestAssembler(catalog, &fakeUserData{}, Limits{})

	got := a.Build(context.Background(), nil, "")

	require.Len(t, got.Inventory.BestSellers, 2)
	assert.Equal(t, "Ultraboost 22", got.Inventory.BestSellers[0].Name)
	assert.Equal(t, 81.0, got.Inventory.BestSellers[1].Price)
}

func TestBuildSaleItemsSortedByDiscount(t *testing.T) {
	catalog := &fakeCatalog{entries: sampleEntries()}
	a := newTestAssembler(catalog, &fakeUserData{}, Limits{})

	got := a.Build(context.Background(), nil, "")

	require.Len(t, got.Inventory.SaleItems, 2)
	assert.Equal(t, "Red-Hawls Classic", got.Inventory.SaleItems[0].Name)
	assert.Equal(t, 60.0, got.Inventory.SaleItems[0].Price)
	assert.Equal(t, 80.0, got.Inventory.SaleItems[0].OriginalPrice)
	assert.Equal(t, "Court Vision Low", got.Inventory.SaleItems[1].Name)
}

func TestBuildInventoryTruncated(t *testing.T) {
	var entries []models.CatalogEntry
	for i := 0; i < 60; i++ {
		entries = append(entries, models.CatalogEntry{ID: string(rune('a' + i)), Name: "Shoe", Brand: "Nike", Price: 100})
	}
	catalog := &fakeCatalog{entries: entries}
	a := newTestAssembler(catalog, &fakeUserData{}, Limits{InventoryLimit: 50})

	got := a.Build(context.Background(), nil, "")

	assert.Len(t, got.Inventory.Inventory, 50)
}

func TestBuildAuthenticatedUserData(t *testing.T) {
	now := time.Now()
	users := &fakeUserData{
		orders: []models.OrderSummary{{OrderID: "o1", Status: "delivered", Total: 120}},
		cart: &models.Cart{UserID: "u1", Items: []models.CartItem{
			{LineID: "l1", ProductID: "1", Name: "Air Max 90", Size: 42, Quantity: 1, Price: 120},
		}},
		wishlist: &models.Wishlist{UserID: "u1", Items: []models.WishlistItem{
			{ProductID: "2", Name: "Ultraboost 22", AddedAt: now},
		}},
	}
	a := newTestAssembler(&fakeCatalog{entries: sampleEntries()}, users, Limits{})

	got := a.Build(context.Background(), nil, "u1")

	require.NotNil(t, got.UserData)
	assert.Len(t, got.UserData.Orders, 1)
	assert.Len(t, got.UserData.Cart, 1)
	assert.Len(t, got.UserData.Wishlist, 1)
}

func TestBuildDegradesOnCatalogFailure(t *testing.T) {
	catalog := &fakeCatalog{findErr: errors.New("connection refused")}
	a := newTestAssembler(catalog, &fakeUserData{}, Limits{})

	got := a.Build(context.Background(), nil, "")

	assert.Empty(t, got.Inventory.Inventory)
	assert.Empty(t, got.Inventory.Brands)
	assert.NotEmpty(t, got.Timestamp)
}

func TestBuildDegradesPerUserSource(t *testing.T) {
	users := &fakeUserData{
		ordersErr: errors.New("timeout"),
		cart: &models.Cart{UserID: "u1", Items: []models.CartItem{
			{LineID: "l1", ProductID: "1", Name: "Air Max 90", Quantity: 1, Price: 120},
		}},
		wishlistErr: errors.New("timeout"),
	}
	a := newTestAssembler(&fakeCatalog{entries: sampleEntries()}, users, Limits{})

	got := a.Build(context.Background(), nil, "u1")

	require.NotNil(t, got.UserData)
	assert.Empty(t, got.UserData.Orders)
	assert.Len(t, got.UserData.Cart, 1)
	assert.Empty(t, got.UserData.Wishlist)
}
