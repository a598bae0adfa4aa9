package model

import (
	"time"

	"github.com/google/uuid"
)

// User carries the single field checkout cares about: the wallet balance.
// Identity and credential handling live elsewhere.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	WalletPoints int       `json:"wallet_points" db:"wallet_points"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
