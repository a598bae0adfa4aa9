package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents a catalogue product offered by a seller.
type Product struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	SellerID  uuid.UUID       `json:"sellerId" db:"seller_id"`
	Name      string          `json:"name" db:"name"`
	Price     decimal.Decimal `json:"price" db:"price"`
	Stock     int             `json:"stock" db:"stock"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
}
