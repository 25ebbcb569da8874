package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"beast-tins/internal/model"
	"beast-tins/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// transactionIDPrefix is quoted by buyers as the e-transfer memo.
const transactionIDPrefix = "BEAST-"

// checkoutService implements CheckoutService.
type checkoutService struct {
	carts         CartService
	cartRepo      repository.CartRepository
	orderRepo     repository.OrderRepository
	productRepo   repository.ProductRepository
	notifications NotificationService
	recipient     string
	logger        zerolog.Logger
}

// NewCheckoutService creates a new checkout service. recipient is the
// e-transfer address shown in payment instructions.
func NewCheckoutService(
	carts CartService,
	cartRepo repository.CartRepository,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	notifications NotificationService,
	recipient string,
	logger zerolog.Logger,
) CheckoutService {
	return &checkoutService{
		carts:         carts,
		cartRepo:      cartRepo,
		orderRepo:     orderRepo,
		productRepo:   productRepo,
		notifications: notifications,
		recipient:     recipient,
		logger:        logger.With().Str("service", "checkout").Logger(),
	}
}

// newTransactionID builds the human-readable order reference from the
// first eight hex characters of a fresh UUID. Uniqueness is additionally
// backed by the orders.transaction_id unique constraint.
func newTransactionID() string {
	return transactionIDPrefix + strings.ToUpper(uuid.New().String()[:8])
}

// PlaceOrder converts the user's cart into an order. Order insert, line
// snapshots, inventory decrements, and the cart clear commit together or
// not at all; an insufficient-stock failure on any line rolls back the
// whole checkout.
func (s *checkoutService) PlaceOrder(ctx context.Context, userID uuid.UUID, req *model.CheckoutRequest) (*model.CheckoutResponse, error) {
	if err := validateCheckoutRequest(req); err != nil {
		return nil, err
	}

	cart, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, model.ErrCartEmpty
	}

	now := time.Now()
	order := &model.Order{
		ID:             uuid.New(),
		UserID:         userID,
		TransactionID:  newTransactionID(),
		FullName:       req.FullName,
		Address:        req.Address,
		Phone:          req.Phone,
		DeliveryWindow: req.DeliveryWindow,
		TotalAmount:    cart.Subtotal(),
		Status:         model.StatusPendingPayment,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	items := make([]model.OrderItem, len(cart.Items))
	for i, line := range cart.Items {
		items[i] = model.OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.Product.Price,
		}
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin checkout transaction")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback checkout transaction")
			}
		}
	}()

	if err = s.orderRepo.Create(ctx, tx, order); err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	if err = s.orderRepo.CreateItems(ctx, tx, items); err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	for _, line := range cart.Items {
		if err = s.productRepo.DecrementInventory(ctx, tx, line.ProductID, line.Quantity); err != nil {
			if err == model.ErrInsufficientStock {
				s.logger.Warn().
					Str("order_id", order.ID.String()).
					Str("product_id", line.ProductID.String()).
					Int("quantity", line.Quantity).
					Msg("checkout rejected, product sold out under us")
				return nil, err
			}
			return nil, fmt.Errorf("failed to place order: %w", err)
		}
	}

	if err = s.cartRepo.ClearItemsTx(ctx, tx, cart.ID); err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit checkout transaction")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	order.Items = items

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("transaction_id", order.TransactionID).
		Float64("total", order.TotalAmount).
		Int("item_count", len(items)).
		Msg("order placed")

	s.notifications.Notify(ctx, model.NotificationNewOrder,
		"New order received",
		fmt.Sprintf("%s placed order %s for $%.2f", order.FullName, order.TransactionID, order.TotalAmount),
		&order.ID,
	)

	return &model.CheckoutResponse{
		Order: order,
		PaymentInstructions: model.PaymentInstructions{
			Recipient: s.recipient,
			Amount:    order.TotalAmount,
			Memo:      order.TransactionID,
		},
	}, nil
}

// validateCheckoutRequest validates the shipping detail payload.
func validateCheckoutRequest(req *model.CheckoutRequest) error {
	if req == nil {
		return fmt.Errorf("checkout request is nil")
	}
	if req.FullName == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "Full name is required")
	}
	if req.Address == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "Address is required")
	}
	if req.Phone == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "Phone number is required")
	}
	if req.DeliveryWindow == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "Delivery window is required")
	}
	return nil
}
