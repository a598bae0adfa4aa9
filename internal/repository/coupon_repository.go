package repository

import (
	"context"
	"fmt"

	"shoply/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// couponRepository implements the CouponRepository interface using PostgreSQL.
type couponRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCouponRepository creates a new PostgreSQL-backed coupon repository.
func NewCouponRepository(pool *pgxpool.Pool, logger zerolog.Logger) CouponRepository {
	return &couponRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "coupon").Logger(),
	}
}

// ResolveForUser returns the coupon only when the user holds an assignment
// and the coupon has not expired. Every other case resolves to nil.
func (r *couponRepository) ResolveForUser(ctx context.Context, userID uuid.UUID, code string) (*model.Coupon, error) {
	query := `
		SELECT c.id, c.code, c.discount_percent, c.valid_until
		FROM coupons c
		JOIN user_coupons uc ON uc.coupon_id = c.id
		WHERE c.code = $1
		  AND uc.user_id = $2
		  AND (c.valid_until IS NULL OR c.valid_until > NOW())
	`

	var c model.Coupon
	err := r.pool.QueryRow(ctx, query, code, userID).Scan(&c.ID, &c.Code, &c.DiscountPercent, &c.ValidUntil)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().
				Str("user_id", userID.String()).
				Str("coupon_code", code).
				Msg("coupon not applicable for user")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("coupon_code", code).Msg("failed to resolve coupon")
		return nil, fmt.Errorf("failed to resolve coupon: %w", err)
	}

	return &c, nil
}
