package service

import (
	"context"
	"io"

	"beast-tins/internal/model"

	"github.com/google/uuid"
)

// ProductService defines operations for catalogue management.
type ProductService interface {
	// List retrieves products matching the filter with pagination.
	List(ctx context.Context, filter model.ProductFilter, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// Create adds a new product to the catalogue.
	Create(ctx context.Context, input *model.ProductInput) (*model.Product, error)

	// Update replaces an existing product's fields.
	Update(ctx context.Context, id uuid.UUID, input *model.ProductInput) (*model.Product, error)

	// Delete removes a product from the catalogue.
	Delete(ctx context.Context, id uuid.UUID) error

	// AttachImage stores an uploaded image and records its reference on
	// the product. Returns the stored reference.
	AttachImage(ctx context.Context, id uuid.UUID, filename, contentType string, body io.Reader) (string, error)
}

// CartService defines operations on a user's cart.
type CartService interface {
	// GetCart returns the user's cart, or nil when none exists. A cart
	// idle for longer than model.CartTTL is deleted and reported as nil.
	GetCart(ctx context.Context, userID uuid.UUID) (*model.Cart, error)

	// AddToCart adds quantity units of a product to the user's cart,
	// creating the cart when absent and merging into an existing line.
	AddToCart(ctx context.Context, userID, productID uuid.UUID, quantity int) (*model.Cart, error)

	// UpdateQuantity overwrites a line's quantity; zero or less removes it.
	UpdateQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*model.Cart, error)

	// RemoveItem deletes a single line from the user's cart.
	RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*model.Cart, error)

	// ClearCart removes every line but keeps the cart row.
	ClearCart(ctx context.Context, userID uuid.UUID) error
}

// CheckoutService converts a cart into an order.
type CheckoutService interface {
	// PlaceOrder creates an order from the user's cart, snapshots line
	// prices, decrements inventory, and clears the cart, all within a
	// single transaction.
	PlaceOrder(ctx context.Context, userID uuid.UUID, req *model.CheckoutRequest) (*model.CheckoutResponse, error)
}

// OrderService defines order reads and fulfilment operations.
type OrderService interface {
	// GetByID retrieves an order for its owner.
	GetByID(ctx context.Context, userID, orderID uuid.UUID) (*model.Order, error)

	// ListByUser retrieves a user's orders newest-first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error)

	// ListAll retrieves all orders newest-first (admin).
	ListAll(ctx context.Context, limit, offset int) ([]model.Order, error)

	// UpdateStatus advances an order through the fulfilment lifecycle,
	// rejecting transitions the state machine does not allow.
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) (*model.Order, error)

	// AttachReference records the buyer's e-transfer confirmation number
	// on their own order. Allowed at any status.
	AttachReference(ctx context.Context, userID, orderID uuid.UUID, reference string) error

	// Stats assembles the admin dashboard summary.
	Stats(ctx context.Context) (*model.DashboardStats, error)
}

// NotificationService is the admin event log plus its push channel.
type NotificationService interface {
	// Notify appends an event and fans it out to subscribers. Failures
	// are logged, never returned: notifications are informational and
	// must not fail the operation that raised them.
	Notify(ctx context.Context, typ model.NotificationType, title, message string, orderID *uuid.UUID)

	// List returns the event log newest-first with the unread count.
	List(ctx context.Context) (*model.NotificationList, error)

	// MarkRead flips one notification to read.
	MarkRead(ctx context.Context, id uuid.UUID) error

	// MarkAllRead flips every unread notification to read.
	MarkAllRead(ctx context.Context) error

	// Subscribe registers a push subscriber. The returned cancel func
	// must be called when the subscriber goes away.
	Subscribe() (<-chan model.Notification, func())
}
