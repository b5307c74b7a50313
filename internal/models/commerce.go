// internal/models/commerce.go
package models

import "time"

// CartItem is one line of a user's cart. Price is the effective (sale) price
// at add time; OriginalPrice is the listed price it was derived from.
type CartItem struct {
	LineID        string  `json:"lineId"`
	ProductID     string  `json:"productId"`
	Name          string  `json:"name"`
	Size          float64 `json:"size"`
	Quantity      int     `json:"quantity"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"originalPrice"`
}

// Cart is the per-user cart document. TotalAmount is maintained on every
// mutation, never computed lazily.
type Cart struct {
	UserID      string     `json:"userId"`
	Items       []CartItem `json:"items"`
	TotalAmount float64    `json:"totalAmount"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// RecomputeTotal resets TotalAmount from the current lines.
func (c *Cart) RecomputeTotal() {
	total := 0.0
	for _, it := range c.Items {
		total += it.Price * float64(it.Quantity)
	}
	c.TotalAmount = Round2(total)
}

// WishlistItem is a saved product reference.
type WishlistItem struct {
	ProductID string    `json:"productId"`
	Name      string    `json:"name"`
	Brand     string    `json:"brand,omitempty"`
	Price     float64   `json:"price"`
	AddedAt   time.Time `json:"addedAt"`
}

// Wishlist is the per-user wishlist document.
type Wishlist struct {
	UserID string         `json:"userId"`
	Items  []WishlistItem `json:"items"`
}

// OrderItem is one line of a past order.
type OrderItem struct {
	Name     string  `json:"name"`
	Size     float64 `json:"size"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// OrderSummary is the compact order view exposed to the assistant context.
type OrderSummary struct {
	OrderID       string      `json:"orderId"`
	Status        string      `json:"status"`
	PaymentStatus string      `json:"paymentStatus,omitempty"`
	Total         float64     `json:"total"`
	PlacedAt      time.Time   `json:"placedAt"`
	Items         []OrderItem `json:"items"`
}
