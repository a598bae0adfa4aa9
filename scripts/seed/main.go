// Seeds a local database with sample users, products and coupons.
//
// Usage:
//
//	go run ./scripts/seed
//
// Connection settings come from the same environment variables as the API
// server. Safe to re-run: all inserts skip existing rows.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"shoply/internal/config"
	"shoply/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)

	if err := database.Migrate(cfg.Database.ConnectionString(), logger); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, cfg.Database.ConnectionString())
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer conn.Close(ctx)

	users := []struct {
		name   string
		email  string
		wallet int
	}{
		{"Alice Example", "alice@example.com", 120},
		{"Bob Example", "bob@example.com", 40},
		{"Carol Example", "carol@example.com", 0},
	}

	userIDs := make(map[string]uuid.UUID, len(users))
	for _, u := range users {
		var id uuid.UUID
		err := conn.QueryRow(ctx,
			`INSERT INTO users (id, name, email, wallet_points)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
			 RETURNING id`,
			uuid.New(), u.name, u.email, u.wallet,
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.email, err)
		}
		userIDs[u.email] = id
		logger.Info().Str("email", u.email).Str("user_id", id.String()).Msg("seeded user")
	}

	sellerID := uuid.New()
	products := []struct {
		name  string
		price string
		stock int
	}{
		{"Mechanical Keyboard", "89.99", 25},
		{"Wireless Mouse", "24.50", 60},
		{"27in Monitor", "229.00", 8},
		{"USB-C Dock", "119.95", 15},
		{"Laptop Stand", "39.99", 40},
	}

	for _, p := range products {
		_, err := conn.Exec(ctx,
			`INSERT INTO products (id, seller_id, name, price, stock)
			 SELECT $1, $2, $3, $4, $5
			 WHERE NOT EXISTS (SELECT 1 FROM products WHERE name = $3)`,
			uuid.New(), sellerID, p.name, decimal.RequireFromString(p.price), p.stock,
		)
		if err != nil {
			return fmt.Errorf("failed to seed product %s: %w", p.name, err)
		}
	}
	logger.Info().Int("count", len(products)).Msg("seeded products")

	nextMonth := time.Now().AddDate(0, 1, 0)
	lastMonth := time.Now().AddDate(0, -1, 0)
	coupons := []struct {
		code       string
		discount   string
		validUntil *time.Time
		holders    []string
	}{
		{"WELCOME10", "10", &nextMonth, []string{"alice@example.com", "bob@example.com"}},
		{"VIP25", "25", nil, []string{"alice@example.com"}},
		{"EXPIRED15", "15", &lastMonth, []string{"bob@example.com"}},
	}

	for _, c := range coupons {
		var id uuid.UUID
		err := conn.QueryRow(ctx,
			`INSERT INTO coupons (id, code, discount_percent, valid_until)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (code) DO UPDATE SET discount_percent = EXCLUDED.discount_percent
			 RETURNING id`,
			uuid.New(), c.code, decimal.RequireFromString(c.discount), c.validUntil,
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to seed coupon %s: %w", c.code, err)
		}
		for _, email := range c.holders {
			_, err := conn.Exec(ctx,
				`INSERT INTO user_coupons (user_id, coupon_id) VALUES ($1, $2)
				 ON CONFLICT DO NOTHING`,
				userIDs[email], id,
			)
			if err != nil {
				return fmt.Errorf("failed to assign coupon %s: %w", c.code, err)
			}
		}
		logger.Info().Str("code", c.code).Int("holders", len(c.holders)).Msg("seeded coupon")
	}

	logger.Info().Msg("seed complete")
	return nil
}
