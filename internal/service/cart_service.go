package service

import (
	"context"
	"fmt"
	"time"

	"beast-tins/internal/model"
	"beast-tins/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// cartService implements CartService.
type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	logger      zerolog.Logger
	now         func() time.Time
}

// NewCartService creates a new cart service.
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, logger zerolog.Logger) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		logger:      logger.With().Str("service", "cart").Logger(),
		now:         time.Now,
	}
}

// GetCart returns the user's cart, deleting it first if it has expired.
// The delete on read is deliberate: expired carts are never repaired.
func (s *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*model.Cart, error) {
	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to get cart")
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	if cart == nil {
		return nil, nil
	}

	if cart.Expired(s.now()) {
		s.logger.Info().
			Str("cart_id", cart.ID.String()).
			Time("updated_at", cart.UpdatedAt).
			Msg("cart expired, deleting")
		if err := s.cartRepo.Delete(ctx, cart.ID); err != nil {
			return nil, fmt.Errorf("failed to delete expired cart: %w", err)
		}
		return nil, nil
	}

	return cart, nil
}

// AddToCart adds quantity units of a product to the user's cart.
func (s *cartService) AddToCart(ctx context.Context, userID, productID uuid.UUID, quantity int) (*model.Cart, error) {
	if quantity <= 0 {
		return nil, model.ErrInvalidQuantity
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}
	if !product.Available {
		return nil, model.ErrProductUnavailable
	}
	if product.InventoryCount < quantity {
		s.logger.Debug().
			Str("product_id", productID.String()).
			Int("requested", quantity).
			Int("in_stock", product.InventoryCount).
			Msg("insufficient stock for add to cart")
		return nil, model.ErrInsufficientStock
	}

	// Drop any expired cart before adding so stale lines never merge
	// into a fresh session.
	if _, err := s.GetCart(ctx, userID); err != nil {
		return nil, err
	}

	cart, err := s.cartRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create cart: %w", err)
	}

	if err := s.cartRepo.UpsertItem(ctx, cart.ID, productID, quantity); err != nil {
		return nil, fmt.Errorf("failed to add item to cart: %w", err)
	}

	if err := s.cartRepo.Touch(ctx, cart.ID); err != nil {
		return nil, fmt.Errorf("failed to touch cart: %w", err)
	}

	s.logger.Info().
		Str("cart_id", cart.ID.String()).
		Str("product_id", productID.String()).
		Int("quantity", quantity).
		Msg("item added to cart")

	return s.cartRepo.GetByUserID(ctx, userID)
}

// UpdateQuantity overwrites a line's quantity; zero or less removes it.
// No inventory re-validation happens here; stock is enforced again at
// checkout.
func (s *cartService) UpdateQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*model.Cart, error) {
	cart, err := s.requireCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if quantity <= 0 {
		if err := s.cartRepo.DeleteItem(ctx, cart.ID, itemID); err != nil {
			return nil, err
		}
	} else {
		if err := s.cartRepo.SetItemQuantity(ctx, cart.ID, itemID, quantity); err != nil {
			return nil, err
		}
	}

	if err := s.cartRepo.Touch(ctx, cart.ID); err != nil {
		return nil, fmt.Errorf("failed to touch cart: %w", err)
	}

	return s.cartRepo.GetByUserID(ctx, userID)
}

// RemoveItem deletes a single line from the user's cart.
func (s *cartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*model.Cart, error) {
	cart, err := s.requireCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.cartRepo.DeleteItem(ctx, cart.ID, itemID); err != nil {
		return nil, err
	}

	if err := s.cartRepo.Touch(ctx, cart.ID); err != nil {
		return nil, fmt.Errorf("failed to touch cart: %w", err)
	}

	return s.cartRepo.GetByUserID(ctx, userID)
}

// ClearCart removes every line but keeps the cart row.
func (s *cartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	cart, err := s.requireCart(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.cartRepo.ClearItems(ctx, cart.ID); err != nil {
		return err
	}

	s.logger.Info().Str("cart_id", cart.ID.String()).Msg("cart cleared")

	return nil
}

// requireCart returns the user's unexpired cart or ErrCartItemNotFound
// when there is nothing to operate on.
func (s *cartService) requireCart(ctx context.Context, userID uuid.UUID) (*model.Cart, error) {
	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, model.ErrCartItemNotFound
	}
	return cart, nil
}
