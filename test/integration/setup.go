package integration

import (
	"context"
	"testing"
	"time"

	"beast-tins/internal/database"
	"beast-tins/internal/model"
	"beast-tins/internal/repository"

	jwt "github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container, applies the schema and
// returns a connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	if err := database.Migrate(ctx, pool, zerolog.Nop()); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// CleanupDB removes all rows, children before parents.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"admin_notifications", "order_items", "orders", "cart_items", "carts", "products"}
	for _, table := range tables {
		if _, err := pool.Exec(ctx, "DELETE FROM "+table); err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}

// SeedCatalogue inserts a small product set and returns it keyed by name.
func SeedCatalogue(t *testing.T, pool *pgxpool.Pool) map[string]*model.Product {
	t.Helper()

	ctx := context.Background()
	repo := repository.NewProductRepository(pool, zerolog.Nop())
	now := time.Now().UTC().Truncate(time.Millisecond)

	products := []*model.Product{
		{ID: uuid.New(), Name: "Arctic Mint", Description: "Glacier-cold mints", Price: 11.99, InventoryCount: 120, Available: true, Featured: true, CreatedAt: now, UpdatedAt: now},
		{ID: uuid.New(), Name: "Cinnamon Charge", Description: "Hot cinnamon chews", Price: 12.49, InventoryCount: 64, Available: true, CreatedAt: now, UpdatedAt: now},
		{ID: uuid.New(), Name: "Midnight Cocoa", Description: "Dark chocolate drops", Price: 12.99, InventoryCount: 3, Available: true, CreatedAt: now, UpdatedAt: now},
		{ID: uuid.New(), Name: "Vanilla Void", Description: "Retired flavour", Price: 10.99, InventoryCount: 0, Available: false, CreatedAt: now, UpdatedAt: now},
	}

	byName := make(map[string]*model.Product, len(products))
	for _, p := range products {
		if err := repo.Create(ctx, p); err != nil {
			t.Fatalf("failed to seed product %s: %v", p.Name, err)
		}
		byName[p.Name] = p
	}

	return byName
}

// BearerToken signs an HS256 token for the given user.
func BearerToken(t *testing.T, secret string, userID uuid.UUID) string {
	t.Helper()

	claims := jwt.StandardClaims{
		Subject:   userID.String(),
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return "Bearer " + token
}
