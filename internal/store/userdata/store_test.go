package userdata

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stderrors "shoestore-assistant/internal/common/errors"
	"shoestore-assistant/internal/common/logger"
	"shoestore-assistant/internal/models"
)

func newTestStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewStore(client, db, logger.NewNoOpLogger()), mock
}

func TestCartMissing(t *testing.T) {
	store, _ := newTestStore(t)

	cart, err := store.Cart(context.Background(), "u1")

	require.NoError(t, err)
	assert.Nil(t, cart)
}

func TestCartRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	cart := &models.Cart{
		UserID: "u1",
		Items: []models.CartItem{
			{LineID: "l1", ProductID: "p1", Name: "Air Max 90", Size: 42, Quantity: 2, Price: 120, OriginalPrice: 120},
		},
	}
	cart.RecomputeTotal()

	require.NoError(t, store.SaveCart(ctx, cart))

	got, err := store.Cart(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Air Max 90", got.Items[0].Name)
	assert.Equal(t, 240.0, got.TotalAmount)
}

func TestWishlistRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	wishlist := &models.Wishlist{
		UserID: "u1",
		Items: []models.WishlistItem{
			{ProductID: "p2", Name: "Ultraboost 22", Brand: "Adidas", Price: 144, AddedAt: time.Now().UTC()},
		},
	}

	require.NoError(t, store.SaveWishlist(ctx, wishlist))

	got, err := store.Wishlist(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Ultraboost 22", got.Items[0].Name)
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveCart(ctx, &models.Cart{UserID: "u1", Items: []models.CartItem{{LineID: "l1", ProductID: "p1", Quantity: 1, Price: 10}}}))

	other, err := store.Cart(ctx, "u2")
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestRemoveCartLine(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	cart := &models.Cart{
		UserID: "u1",
		Items: []models.CartItem{
			{LineID: "l1", ProductID: "p1", Name: "Air Max 90", Quantity: 1, Price: 120},
			{LineID: "l2", ProductID: "p2", Name: "Ultraboost 22", Quantity: 1, Price: 144},
		},
	}
	cart.RecomputeTotal()
	require.NoError(t, store.SaveCart(ctx, cart))

	got, err := store.RemoveCartLine(ctx, "u1", "l1")

	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "l2", got.Items[0].LineID)
	assert.Equal(t, 144.0, got.TotalAmount)
}

func TestRemoveCartLineNotFound(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveCart(ctx, &models.Cart{UserID: "u1"}))

	_, err := store.RemoveCartLine(ctx, "u1", "nope")
	assert.ErrorIs(t, err, stderrors.ErrItemNotFound)

	_, err = store.RemoveCartLine(ctx, "u2", "l1")
	assert.ErrorIs(t, err, stderrors.ErrItemNotFound)
}

func TestOrders(t *testing.T) {
	store, mock := newTestStore(t)
	placed := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT id, status, payment_status, total_amount, placed_at`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "payment_status", "total_amount", "placed_at"}).
			AddRow("o1", "delivered", "paid", 264.0, placed))

	mock.ExpectQuery(`SELECT product_name, size, quantity, price`).
		WithArgs("o1").
		WillReturnRows(sqlmock.NewRows([]string{"product_name", "size", "quantity", "price"}).
			AddRow("Air Max 90", 42.0, 1, 120.0).
			AddRow("Ultraboost 22", 38.0, 1, 144.0))

	got, err := store.Orders(context.Background(), "u1")

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "o1", got[0].OrderID)
	assert.Equal(t, "delivered", got[0].Status)
	require.Len(t, got[0].Items, 2)
	assert.Equal(t, "Air Max 90", got[0].Items[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrdersQueryError(t *testing.T) {
	store, mock := newTestStore(t)

	mock.ExpectQuery(`SELECT id, status, payment_status`).WillReturnError(assert.AnError)

	_, err := store.Orders(context.Background(), "u1")
	assert.Error(t, err)
}
