package repository

import (
	"context"
	"fmt"

	"beast-tins/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const productColumns = `id, name, description, price, inventory_count, available, featured,
	category, tagline, weight, image, calories, protein, carbs, fat, created_at, updated_at`

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

// scanProduct scans a product row, folding the nutrition columns into the
// optional Nutrition struct.
func scanProduct(row pgx.Row, p *model.Product) error {
	var calories, protein, carbs, fat *int

	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.InventoryCount,
		&p.Available, &p.Featured, &p.Category, &p.Tagline, &p.Weight,
		&p.Image, &calories, &protein, &carbs, &fat,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if calories != nil || protein != nil || carbs != nil || fat != nil {
		n := &model.Nutrition{}
		if calories != nil {
			n.Calories = *calories
		}
		if protein != nil {
			n.Protein = *protein
		}
		if carbs != nil {
			n.Carbs = *carbs
		}
		if fat != nil {
			n.Fat = *fat
		}
		p.Nutrition = n
	}

	return nil
}

// nutritionColumns splits the optional nutrition struct back into columns.
func nutritionColumns(n *model.Nutrition) (calories, protein, carbs, fat *int) {
	if n == nil {
		return nil, nil, nil, nil
	}
	return &n.Calories, &n.Protein, &n.Carbs, &n.Fat
}

// List retrieves products matching the filter with pagination support.
func (r *productRepository) List(ctx context.Context, filter model.ProductFilter, limit, offset int) ([]model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE ($1 = '' OR category = $1)
		  AND (NOT $2 OR available)
		  AND (NOT $3 OR featured)
		ORDER BY name
		LIMIT $4 OFFSET $5
	`

	rows, err := r.pool.Query(ctx, query, filter.Category, filter.AvailableOnly, filter.FeaturedOnly, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := scanProduct(rows, &p); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = $1
	`

	var p model.Product
	err := scanProduct(r.pool.QueryRow(ctx, query, id), &p)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("product_id", id.String()).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// Create inserts a new product.
func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	query := `
		INSERT INTO products (
			id, name, description, price, inventory_count, available, featured,
			category, tagline, weight, image, calories, protein, carbs, fat,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	calories, protein, carbs, fat := nutritionColumns(product.Nutrition)

	_, err := r.pool.Exec(ctx, query,
		product.ID, product.Name, product.Description, product.Price,
		product.InventoryCount, product.Available, product.Featured,
		product.Category, product.Tagline, product.Weight, product.Image,
		calories, protein, carbs, fat,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", product.ID.String()).Msg("failed to create product")
		return fmt.Errorf("failed to create product: %w", err)
	}

	r.logger.Debug().Str("product_id", product.ID.String()).Msg("product created")

	return nil
}

// Update replaces the mutable fields of an existing product.
func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, price = $4, inventory_count = $5,
			available = $6, featured = $7, category = $8, tagline = $9,
			weight = $10, calories = $11, protein = $12, carbs = $13, fat = $14,
			updated_at = NOW()
		WHERE id = $1
	`

	calories, protein, carbs, fat := nutritionColumns(product.Nutrition)

	tag, err := r.pool.Exec(ctx, query,
		product.ID, product.Name, product.Description, product.Price,
		product.InventoryCount, product.Available, product.Featured,
		product.Category, product.Tagline, product.Weight,
		calories, protein, carbs, fat,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", product.ID.String()).Msg("failed to update product")
		return fmt.Errorf("failed to update product: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}

	return nil
}

// Delete removes a product.
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}

	r.logger.Debug().Str("product_id", id.String()).Msg("product deleted")

	return nil
}

// SetImage records the stored image reference for a product.
func (r *productRepository) SetImage(ctx context.Context, id uuid.UUID, image string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE products SET image = $2, updated_at = NOW() WHERE id = $1`,
		id, image,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to set product image")
		return fmt.Errorf("failed to set product image: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}

	return nil
}

// DecrementInventory atomically reduces a product's stock within the
// provided transaction. Zero rows affected means the remaining stock is
// smaller than the requested quantity.
func (r *productRepository) DecrementInventory(ctx context.Context, tx pgx.Tx, productID uuid.UUID, quantity int) error {
	query := `
		UPDATE products
		SET inventory_count = inventory_count - $2, updated_at = NOW()
		WHERE id = $1 AND inventory_count >= $2
	`

	tag, err := tx.Exec(ctx, query, productID, quantity)
	if err != nil {
		r.logger.Error().Err(err).
			Str("product_id", productID.String()).
			Int("quantity", quantity).
			Msg("failed to decrement inventory")
		return fmt.Errorf("failed to decrement inventory: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Warn().
			Str("product_id", productID.String()).
			Int("quantity", quantity).
			Msg("insufficient stock for decrement")
		return model.ErrInsufficientStock
	}

	return nil
}

// InventoryStats returns the product count, products running low on stock,
// and the number of products with no stock at all.
func (r *productRepository) InventoryStats(ctx context.Context) (int, []model.Product, int, error) {
	var total, outOfStock int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE inventory_count = 0)
		FROM products
	`).Scan(&total, &outOfStock)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query inventory counts")
		return 0, nil, 0, fmt.Errorf("failed to query inventory counts: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE inventory_count > 0 AND inventory_count < $1
		ORDER BY inventory_count
	`, model.LowStockThreshold)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query low stock products")
		return 0, nil, 0, fmt.Errorf("failed to query low stock products: %w", err)
	}
	defer rows.Close()

	var lowStock []model.Product
	for rows.Next() {
		var p model.Product
		if err := scanProduct(rows, &p); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return 0, nil, 0, fmt.Errorf("failed to scan product: %w", err)
		}
		lowStock = append(lowStock, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating low stock rows")
		return 0, nil, 0, fmt.Errorf("error iterating low stock products: %w", err)
	}

	return total, lowStock, outOfStock, nil
}
