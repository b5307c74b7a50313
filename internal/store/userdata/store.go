// Package userdata holds per-user commerce data: carts and wishlists live
// as JSON documents in Redis, order history is read from PostgreSQL.
package userdata

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"shoestore-assistant/internal/common/errors"
	"shoestore-assistant/internal/common/logger"
	"shoestore-assistant/internal/models"
)

const (
	cartKeyPrefix     = "cart:"
	wishlistKeyPrefix = "wishlist:"

	// Documents expire after long inactivity; every save refreshes.
	documentTTL = 90 * 24 * time.Hour
)

type Store struct {
	redis *redis.Client
	db    *sql.DB
	log   logger.Logger
}

func NewStore(redisClient *redis.Client, db *sql.DB, log logger.Logger) *Store {
	return &Store{redis: redisClient, db: db, log: log}
}

// Cart loads the user's cart document. Returns nil when the user has none.
func (s *Store) Cart(ctx context.Context, userID string) (*models.Cart, error) {
	var cart models.Cart
	if err := s.getJSON(ctx, cartKeyPrefix+userID, &cart); err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// SaveCart writes the cart document back, refreshing its TTL.
func (s *Store) SaveCart(ctx context.Context, cart *models.Cart) error {
	return s.setJSON(ctx, cartKeyPrefix+cart.UserID, cart)
}

// Wishlist loads the user's wishlist document. Returns nil when the user
// has none.
func (s *Store) Wishlist(ctx context.Context, userID string) (*models.Wishlist, error) {
	var wishlist models.Wishlist
	if err := s.getJSON(ctx, wishlistKeyPrefix+userID, &wishlist); err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	return &wishlist, nil
}

func (s *Store) SaveWishlist(ctx context.Context, wishlist *models.Wishlist) error {
	return s.setJSON(ctx, wishlistKeyPrefix+wishlist.UserID, wishlist)
}

func (s *Store) getJSON(ctx context.Context, key string, out interface{}) error {
	payload, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}
	return json.Unmarshal(payload, out)
}

func (s *Store) setJSON(ctx context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, key, payload, documentTTL).Err()
}

// Orders returns the user's order history, most recent first, with line
// items attached.
func (s *Store) Orders(ctx context.Context, userID string) ([]models.OrderSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, status, payment_status, total_amount, placed_at
		FROM orders
		WHERE user_id = $1 AND NOT deleted
		ORDER BY placed_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.OrderSummary
	for rows.Next() {
		var o models.OrderSummary
		if err := rows.Scan(&o.OrderID, &o.Status, &o.PaymentStatus, &o.Total, &o.PlacedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		items, err := s.orderItems(ctx, orders[i].OrderID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}

	return orders, nil
}

func (s *Store) orderItems(ctx context.Context, orderID string) ([]models.OrderItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT product_name, size, quantity, price
		FROM order_items
		WHERE order_id = $1`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		var it models.OrderItem
		if err := rows.Scan(&it.Name, &it.Size, &it.Quantity, &it.Price); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// RemoveCartLine deletes one line by id and recomputes the total. Returns
// ErrItemNotFound when the line is absent.
func (s *Store) RemoveCartLine(ctx context.Context, userID, lineID string) (*models.Cart, error) {
	cart, err := s.Cart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, errors.ErrItemNotFound
	}

	idx := -1
	for i, item := range cart.Items {
		if item.LineID == lineID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, errors.ErrItemNotFound
	}

	cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	cart.RecomputeTotal()
	cart.UpdatedAt = time.Now().UTC()

	if err := s.SaveCart(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}
