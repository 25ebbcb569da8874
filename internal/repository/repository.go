package repository

import (
	"context"

	"beast-tins/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProductRepository defines the interface for catalogue data access.
type ProductRepository interface {
	// List retrieves products matching the filter with pagination support.
	List(ctx context.Context, filter model.ProductFilter, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by its ID. Returns nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// Create inserts a new product.
	Create(ctx context.Context, product *model.Product) error

	// Update replaces the mutable fields of an existing product.
	// Returns model.ErrProductNotFound when no row matches.
	Update(ctx context.Context, product *model.Product) error

	// Delete removes a product. Returns model.ErrProductNotFound when absent.
	Delete(ctx context.Context, id uuid.UUID) error

	// SetImage records the stored image reference for a product.
	SetImage(ctx context.Context, id uuid.UUID, image string) error

	// DecrementInventory atomically reduces a product's stock within the
	// provided transaction. The update is conditional on sufficient stock;
	// zero rows affected is reported as model.ErrInsufficientStock.
	DecrementInventory(ctx context.Context, tx pgx.Tx, productID uuid.UUID, quantity int) error

	// InventoryStats returns the product count, products running low on
	// stock, and the number of products with no stock at all.
	InventoryStats(ctx context.Context) (total int, lowStock []model.Product, outOfStock int, err error)
}

// CartRepository defines the interface for cart data access.
type CartRepository interface {
	// GetByUserID retrieves the user's cart with items and joined product
	// rows. Returns nil when the user has no cart.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Cart, error)

	// GetOrCreate returns the user's cart header, creating it when absent.
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*model.Cart, error)

	// Delete removes a cart and, via cascade, all of its items.
	Delete(ctx context.Context, cartID uuid.UUID) error

	// UpsertItem adds quantity units of a product to the cart, merging
	// into the existing line when one exists.
	UpsertItem(ctx context.Context, cartID, productID uuid.UUID, quantity int) error

	// SetItemQuantity overwrites a line's quantity. Returns
	// model.ErrCartItemNotFound when the line is not in the given cart.
	SetItemQuantity(ctx context.Context, cartID, itemID uuid.UUID, quantity int) error

	// DeleteItem removes a single line from the cart. Returns
	// model.ErrCartItemNotFound when the line is not in the given cart.
	DeleteItem(ctx context.Context, cartID, itemID uuid.UUID) error

	// ClearItems deletes all items under a cart but keeps the cart row.
	ClearItems(ctx context.Context, cartID uuid.UUID) error

	// ClearItemsTx is ClearItems within an existing transaction.
	ClearItemsTx(ctx context.Context, tx pgx.Tx, cartID uuid.UUID) error

	// Touch refreshes the cart's updated_at, restarting the expiry clock.
	Touch(ctx context.Context, cartID uuid.UUID) error
}

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// Create inserts a new order within the provided transaction.
	Create(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateItems inserts the order's line snapshots within the provided
	// transaction.
	CreateItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetByID retrieves an order with its items and joined product rows.
	// Returns nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// ListByUser retrieves a user's orders newest-first, with items.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error)

	// ListAll retrieves all orders newest-first with pagination, with items.
	ListAll(ctx context.Context, limit, offset int) ([]model.Order, error)

	// UpdateStatus moves an order from one status to another. The update
	// is conditional on the current status so concurrent admin actions
	// cannot clobber each other; zero rows affected is reported as
	// model.ErrInvalidTransition.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to model.OrderStatus) error

	// SetEtransferReference records the buyer-supplied payment reference.
	// The update is scoped to the owning user; zero rows affected is
	// reported as model.ErrOrderNotFound.
	SetEtransferReference(ctx context.Context, id, userID uuid.UUID, reference string) error

	// Stats returns order totals for the admin dashboard: order count,
	// settled revenue, distinct customers, and the five newest orders.
	Stats(ctx context.Context) (total int, revenue float64, customers int, recent []model.Order, err error)
}

// NotificationRepository defines the interface for the admin event log.
type NotificationRepository interface {
	// Create appends a notification row.
	Create(ctx context.Context, n *model.Notification) error

	// List retrieves notifications newest-first.
	List(ctx context.Context, limit int) ([]model.Notification, error)

	// UnreadCount returns the number of unread notifications.
	UnreadCount(ctx context.Context) (int, error)

	// MarkRead flips a single notification to read.
	MarkRead(ctx context.Context, id uuid.UUID) error

	// MarkAllRead flips every unread notification to read.
	MarkAllRead(ctx context.Context) error
}
