package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// userRepository implements the UserRepository interface using PostgreSQL.
type userRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewUserRepository creates a new PostgreSQL-backed user repository.
func NewUserRepository(pool *pgxpool.Pool, logger zerolog.Logger) UserRepository {
	return &userRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "user").Logger(),
	}
}

// GetWalletBalance returns the user's current wallet points.
func (r *userRepository) GetWalletBalance(ctx context.Context, userID uuid.UUID) (int, error) {
	var points int
	err := r.pool.QueryRow(ctx, `SELECT wallet_points FROM users WHERE id = $1`, userID).Scan(&points)
	if err != nil {
		if err == pgx.ErrNoRows {
			// Unknown user holds no points. Identity is owned elsewhere;
			// checkout treats this the same as a zero balance.
			r.logger.Debug().Str("user_id", userID.String()).Msg("user not found, zero wallet balance")
			return 0, nil
		}
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to query wallet balance")
		return 0, fmt.Errorf("failed to query wallet balance: %w", err)
	}

	return points, nil
}

// DebitWallet subtracts points within the transaction. The WHERE guard keeps
// the balance non-negative under concurrent debits.
func (r *userRepository) DebitWallet(ctx context.Context, tx pgx.Tx, userID uuid.UUID, points int) error {
	query := `
		UPDATE users
		SET wallet_points = wallet_points - $2
		WHERE id = $1 AND wallet_points >= $2
	`

	tag, err := tx.Exec(ctx, query, userID, points)
	if err != nil {
		r.logger.Error().Err(err).
			Str("user_id", userID.String()).
			Int("points", points).
			Msg("failed to debit wallet")
		return fmt.Errorf("failed to debit wallet: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Warn().
			Str("user_id", userID.String()).
			Int("points", points).
			Msg("wallet debit refused, insufficient balance")
		return fmt.Errorf("wallet debit of %d points refused for user %s", points, userID)
	}

	return nil
}

// CreditWallet adds points back within the transaction.
func (r *userRepository) CreditWallet(ctx context.Context, tx pgx.Tx, userID uuid.UUID, points int) error {
	query := `
		UPDATE users
		SET wallet_points = wallet_points + $2
		WHERE id = $1
	`

	tag, err := tx.Exec(ctx, query, userID, points)
	if err != nil {
		r.logger.Error().Err(err).
			Str("user_id", userID.String()).
			Int("points", points).
			Msg("failed to credit wallet")
		return fmt.Errorf("failed to credit wallet: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("wallet credit matched no user %s", userID)
	}

	return nil
}
