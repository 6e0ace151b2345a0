package ledger

import (
	"errors"
	"fmt"
)

var (
	ErrProductNotFound     = errors.New("product not found")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrInvalidQuantity     = errors.New("quantity must be a positive integer")
	ErrInvalidMovementType = errors.New("movement type must be IN or OUT")
	// ErrPersistence marks a mutation that was applied in memory but could
	// not be written to the durable store.
	ErrPersistence = errors.New("persistence failure")
)

// InsufficientStockError is returned when an OUT movement would drive stock
// below zero. It matches ErrInsufficientStock.
type InsufficientStockError struct {
	ProductID string
	Stock     int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: have %d, requested %d", e.ProductID, e.Stock, e.Requested)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
