package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"beast-tins/internal/model"
	"beast-tins/internal/repository"
	"beast-tins/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	images      storage.ImageStore
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, images storage.ImageStore, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		images:      images,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// List retrieves products matching the filter with pagination.
func (s *productService) List(ctx context.Context, filter model.ProductFilter, limit, offset int) ([]model.Product, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	products, err := s.productRepo.List(ctx, filter, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to list products")
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	s.logger.Debug().
		Int("count", len(products)).
		Str("category", filter.Category).
		Msg("retrieved products")

	return products, nil
}

// GetByID retrieves a single product by ID.
func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to get product by ID")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if product == nil {
		s.logger.Debug().Str("product_id", id.String()).Msg("product not found")
		return nil, model.ErrProductNotFound
	}

	return product, nil
}

// Create adds a new product to the catalogue.
func (s *productService) Create(ctx context.Context, input *model.ProductInput) (*model.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	now := time.Now()
	product := &model.Product{
		ID:             uuid.New(),
		Name:           input.Name,
		Description:    input.Description,
		Price:          input.Price,
		InventoryCount: input.InventoryCount,
		Available:      input.Available,
		Featured:       input.Featured,
		Category:       input.Category,
		Tagline:        input.Tagline,
		Weight:         input.Weight,
		Nutrition:      input.Nutrition,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		s.logger.Error().Err(err).Str("name", input.Name).Msg("failed to create product")
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().
		Str("product_id", product.ID.String()).
		Str("name", product.Name).
		Msg("product created")

	return product, nil
}

// Update replaces an existing product's fields.
func (s *productService) Update(ctx context.Context, id uuid.UUID, input *model.ProductInput) (*model.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	existing, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if existing == nil {
		return nil, model.ErrProductNotFound
	}

	existing.Name = input.Name
	existing.Description = input.Description
	existing.Price = input.Price
	existing.InventoryCount = input.InventoryCount
	existing.Available = input.Available
	existing.Featured = input.Featured
	existing.Category = input.Category
	existing.Tagline = input.Tagline
	existing.Weight = input.Weight
	existing.Nutrition = input.Nutrition

	if err := s.productRepo.Update(ctx, existing); err != nil {
		s.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to update product")
		return nil, err
	}

	s.logger.Info().Str("product_id", id.String()).Msg("product updated")

	return existing, nil
}

// Delete removes a product from the catalogue.
func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		if err != model.ErrProductNotFound {
			s.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to delete product")
		}
		return err
	}

	s.logger.Info().Str("product_id", id.String()).Msg("product deleted")

	return nil
}

// AttachImage stores an uploaded image and records its reference.
func (s *productService) AttachImage(ctx context.Context, id uuid.UUID, filename, contentType string, body io.Reader) (string, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return "", model.ErrProductNotFound
	}

	key := id.String() + path.Ext(filename)
	ref, err := s.images.Put(ctx, key, contentType, body)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to store product image")
		return "", fmt.Errorf("failed to store product image: %w", err)
	}

	if err := s.productRepo.SetImage(ctx, id, ref); err != nil {
		return "", err
	}

	s.logger.Info().
		Str("product_id", id.String()).
		Str("image", ref).
		Msg("product image attached")

	return ref, nil
}

// validateProductInput validates a create/update payload.
func validateProductInput(input *model.ProductInput) error {
	if input == nil {
		return fmt.Errorf("product input is nil")
	}
	if input.Name == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "Product name is required")
	}
	if input.Price < 0 {
		return model.NewDomainError(model.ErrCodeMissingField, "Product price cannot be negative")
	}
	if input.InventoryCount < 0 {
		return model.NewDomainError(model.ErrCodeMissingField, "Inventory count cannot be negative")
	}
	return nil
}
