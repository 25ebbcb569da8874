package service

import (
	"context"
	"fmt"

	"beast-tins/internal/model"
	"beast-tins/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo     repository.OrderRepository
	productRepo   repository.ProductRepository
	notifications NotificationService
	logger        zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	notifications NotificationService,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:     orderRepo,
		productRepo:   productRepo,
		notifications: notifications,
		logger:        logger.With().Str("service", "order").Logger(),
	}
}

// GetByID retrieves an order for its owner.
func (s *orderService) GetByID(ctx context.Context, userID, orderID uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	if order.UserID != userID {
		s.logger.Warn().
			Str("order_id", orderID.String()).
			Str("user_id", userID.String()).
			Msg("order access denied")
		return nil, model.ErrForbidden
	}

	return order, nil
}

// ListByUser retrieves a user's orders newest-first.
func (s *orderService) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to list user orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return orders, nil
}

// ListAll retrieves all orders newest-first (admin).
func (s *orderService) ListAll(ctx context.Context, limit, offset int) ([]model.Order, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}

	orders, err := s.orderRepo.ListAll(ctx, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list all orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return orders, nil
}

// UpdateStatus advances an order through the fulfilment lifecycle. The
// transition table is enforced here, not in any UI: an illegal move is a
// typed error regardless of who asks.
func (s *orderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) (*model.Order, error) {
	target, err := model.ParseOrderStatus(status)
	if err != nil {
		return nil, err
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	if !order.Status.CanTransitionTo(target) {
		s.logger.Warn().
			Str("order_id", orderID.String()).
			Str("from", string(order.Status)).
			Str("to", string(target)).
			Msg("rejected illegal status transition")
		return nil, model.ErrInvalidTransition
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, order.Status, target); err != nil {
		return nil, err
	}

	from := order.Status
	order.Status = target

	s.notifications.Notify(ctx, model.NotificationStatusChange,
		"Order status changed",
		fmt.Sprintf("Order %s moved from %s to %s", order.TransactionID, from, target),
		&order.ID,
	)

	return order, nil
}

// AttachReference records the buyer's e-transfer confirmation number.
// Allowed at any status: the reference is advisory data used by staff for
// manual bank reconciliation.
func (s *orderService) AttachReference(ctx context.Context, userID, orderID uuid.UUID, reference string) error {
	if reference == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "E-transfer reference is required")
	}

	if err := s.orderRepo.SetEtransferReference(ctx, orderID, userID, reference); err != nil {
		return err
	}

	s.logger.Info().
		Str("order_id", orderID.String()).
		Msg("e-transfer reference attached")

	s.notifications.Notify(ctx, model.NotificationReferenceSubmitted,
		"E-transfer reference submitted",
		fmt.Sprintf("A payment reference was submitted for order %s", orderID),
		&orderID,
	)

	return nil
}

// Stats assembles the admin dashboard summary.
func (s *orderService) Stats(ctx context.Context) (*model.DashboardStats, error) {
	totalOrders, revenue, customers, recent, err := s.orderRepo.Stats(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get order stats")
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	productCount, lowStock, outOfStock, err := s.productRepo.InventoryStats(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get inventory stats")
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	return &model.DashboardStats{
		TotalOrders:      totalOrders,
		Revenue:          revenue,
		Customers:        customers,
		ProductCount:     productCount,
		RecentOrders:     recent,
		LowStockProducts: lowStock,
		OutOfStockCount:  outOfStock,
	}, nil
}
