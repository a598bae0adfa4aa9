package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"shoply/internal/database"
	"shoply/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
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

// SetupTestDB creates a PostgreSQL test container, applies the schema
// migrations and returns a ready connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	// Create PostgreSQL container
	postgresContainer, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	// Get connection string
	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	// Apply migrations against the container
	if err := database.Migrate(connStr, zerolog.Nop()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Create connection pool
	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
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

// SeedUser inserts a user with the given wallet balance and returns its id.
func SeedUser(t *testing.T, pool *pgxpool.Pool, walletPoints int) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		"INSERT INTO users (id, name, email, wallet_points) VALUES ($1, $2, $3, $4)",
		id, "Test User", fmt.Sprintf("%s@example.com", id), walletPoints,
	)
	if err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return id
}

// SeedProduct inserts a product and returns its id.
func SeedProduct(t *testing.T, pool *pgxpool.Pool, name string, price string, stock int) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		"INSERT INTO products (id, seller_id, name, price, stock) VALUES ($1, $2, $3, $4, $5)",
		id, uuid.New(), name, decimal.RequireFromString(price), stock,
	)
	if err != nil {
		t.Fatalf("failed to seed product %s: %v", name, err)
	}
	return id
}

// SeedCoupon inserts a coupon and assigns it to the given user.
func SeedCoupon(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, code string, discountPercent string, validUntil *time.Time) uuid.UUID {
	t.Helper()

	ctx := context.Background()
	id := uuid.New()
	_, err := pool.Exec(ctx,
		"INSERT INTO coupons (id, code, discount_percent, valid_until) VALUES ($1, $2, $3, $4)",
		id, code, decimal.RequireFromString(discountPercent), validUntil,
	)
	if err != nil {
		t.Fatalf("failed to seed coupon %s: %v", code, err)
	}
	_, err = pool.Exec(ctx,
		"INSERT INTO user_coupons (user_id, coupon_id) VALUES ($1, $2)",
		userID, id,
	)
	if err != nil {
		t.Fatalf("failed to assign coupon %s: %v", code, err)
	}
	return id
}

// AddToCart inserts a cart row for the given user and product.
func AddToCart(t *testing.T, pool *pgxpool.Pool, userID, productID uuid.UUID, quantity int) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		"INSERT INTO cart_items (id, user_id, product_id, quantity) VALUES ($1, $2, $3, $4)",
		uuid.New(), userID, productID, quantity,
	)
	if err != nil {
		t.Fatalf("failed to add cart item: %v", err)
	}
}

// ProductStock reads the current stock for a product.
func ProductStock(t *testing.T, pool *pgxpool.Pool, productID uuid.UUID) int {
	t.Helper()

	var stock int
	err := pool.QueryRow(context.Background(),
		"SELECT stock FROM products WHERE id = $1", productID).Scan(&stock)
	if err != nil {
		t.Fatalf("failed to read product stock: %v", err)
	}
	return stock
}

// WalletBalance reads the current wallet balance for a user.
func WalletBalance(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID) int {
	t.Helper()

	var points int
	err := pool.QueryRow(context.Background(),
		"SELECT wallet_points FROM users WHERE id = $1", userID).Scan(&points)
	if err != nil {
		t.Fatalf("failed to read wallet balance: %v", err)
	}
	return points
}

// OrderRow reads the order back for assertions.
func OrderRow(t *testing.T, pool *pgxpool.Pool, orderID uuid.UUID) *model.Order {
	t.Helper()

	var o model.Order
	err := pool.QueryRow(context.Background(),
		`SELECT id, user_id, total_price, discount_amount, wallet_points_used,
		        coupon_code, payment_status, order_status
		 FROM orders WHERE id = $1`, orderID).
		Scan(&o.ID, &o.UserID, &o.TotalPrice, &o.DiscountAmount, &o.WalletPointsUsed,
			&o.CouponCode, &o.PaymentStatus, &o.OrderStatus)
	if err != nil {
		t.Fatalf("failed to read order: %v", err)
	}
	return &o
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"order_items", "orders", "cart_items", "user_coupons", "coupons", "products", "users"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
