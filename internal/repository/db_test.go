package repository

import (
	"context"
	"testing"
	"time"

	"beast-tins/internal/database"
	"beast-tins/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB creates a PostgreSQL testcontainer, applies the schema and
// returns a connection pool.
func setupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	require.NoError(t, database.Migrate(ctx, pool, zerolog.Nop()))

	cleanup := func() {
		pool.Close()
		_ = pgContainer.Terminate(ctx)
	}

	return pool, cleanup
}

func strPtr(s string) *string { return &s }

// newProduct builds a catalogue row with sane defaults for seeding.
func newProduct(name string, price float64, inventory int) *model.Product {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return &model.Product{
		ID:             uuid.New(),
		Name:           name,
		Description:    name + " description",
		Price:          price,
		InventoryCount: inventory,
		Available:      true,
		Category:       strPtr("mints"),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// seedProducts inserts catalogue rows through the repository itself.
func seedProducts(t *testing.T, pool *pgxpool.Pool, products ...*model.Product) {
	t.Helper()
	repo := NewProductRepository(pool, zerolog.Nop())
	for _, p := range products {
		require.NoError(t, repo.Create(context.Background(), p))
	}
}

// seedOrder inserts an order with its items inside a committed transaction.
func seedOrder(t *testing.T, pool *pgxpool.Pool, order *model.Order) {
	t.Helper()
	ctx := context.Background()
	repo := NewOrderRepository(pool, zerolog.Nop())

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, tx, order))
	require.NoError(t, repo.CreateItems(ctx, tx, order.Items))
	require.NoError(t, tx.Commit(ctx))
}
