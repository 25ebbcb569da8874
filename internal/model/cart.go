package model

import (
	"time"

	"github.com/google/uuid"
)

// CartTTL is how long a cart may sit untouched before it is treated as
// expired and deleted on the next read.
const CartTTL = 24 * time.Hour

// Cart represents a user's live shopping cart.
type Cart struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	UserID    uuid.UUID  `json:"userId" db:"user_id"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time  `json:"updatedAt" db:"updated_at"`
}

// CartItem represents a single product line in a cart. At most one line
// exists per (cart, product) pair.
type CartItem struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CartID    uuid.UUID `json:"cartId" db:"cart_id"`
	ProductID uuid.UUID `json:"productId" db:"product_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
	Product   *Product  `json:"product,omitempty"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Expired reports whether the cart has been idle for longer than CartTTL.
func (c *Cart) Expired(now time.Time) bool {
	return now.Sub(c.UpdatedAt) > CartTTL
}

// ItemCount returns the total number of units across all lines.
func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// Subtotal returns the cart total priced from the joined product rows.
// Lines whose product failed to join contribute nothing.
func (c *Cart) Subtotal() float64 {
	total := 0.0
	for _, item := range c.Items {
		if item.Product != nil {
			total += float64(item.Quantity) * item.Product.Price
		}
	}
	return total
}

// AddItemRequest is the payload for adding a product to the cart.
type AddItemRequest struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
}

// UpdateItemRequest is the payload for overwriting a line's quantity.
// A quantity of zero or less removes the line.
type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}

// CartResponse is the cart plus its derived values as served to clients.
type CartResponse struct {
	Cart      *Cart   `json:"cart"`
	ItemCount int     `json:"itemCount"`
	Subtotal  float64 `json:"subtotal"`
}
