package model

import (
	"fmt"

	"github.com/google/uuid"
)

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON           = "INVALID_JSON"
	ErrCodeEmptyCart             = "EMPTY_CART"
	ErrCodeInsufficientStock     = "INSUFFICIENT_STOCK"
	ErrCodeInvalidPaymentStatus  = "INVALID_PAYMENT_STATUS"
	ErrCodePaymentAlreadySettled = "PAYMENT_ALREADY_SETTLED"
	ErrCodeOrderNotFound         = "ORDER_NOT_FOUND"
	ErrCodeProductNotFound       = "PRODUCT_NOT_FOUND"
	ErrCodeCartItemNotFound      = "CART_ITEM_NOT_FOUND"
	ErrCodeInvalidQuantity       = "INVALID_QUANTITY"
	ErrCodeUnauthorised          = "UNAUTHORIZED"
	ErrCodeInternalError         = "INTERNAL_ERROR"
)

// DomainError is a business-rule failure with a stable code. Infrastructure
// failures are wrapped with fmt.Errorf instead and surface as internal errors.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrEmptyCart             = NewDomainError(ErrCodeEmptyCart, "Cart is empty")
	ErrInvalidPaymentStatus  = NewDomainError(ErrCodeInvalidPaymentStatus, "Invalid payment status")
	ErrPaymentAlreadySettled = NewDomainError(ErrCodePaymentAlreadySettled, "Order payment already processed")
	ErrOrderNotFound         = NewDomainError(ErrCodeOrderNotFound, "Order not found")
	ErrProductNotFound       = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrCartItemNotFound      = NewDomainError(ErrCodeCartItemNotFound, "Cart item not found")
	ErrInvalidQuantity       = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
)

// NewInsufficientStockError identifies the first cart line whose requested
// quantity exceeds live stock.
func NewInsufficientStockError(productID uuid.UUID) *DomainError {
	return NewDomainError(
		ErrCodeInsufficientStock,
		fmt.Sprintf("Insufficient stock for product %s", productID),
	)
}
