package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a product entity in the inventory system.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	SKU         string          `json:"sku"`
	Stock       int             `json:"stock"`
	MinStock    int             `json:"minStock"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	SupplierID  string          `json:"supplierId,omitempty"`
}

// ProductDraft holds the caller supplied fields of a new product.
type ProductDraft struct {
	Name        string
	Category    string
	SKU         string
	Stock       int
	MinStock    int
	Price       decimal.Decimal
	Description string
	SupplierID  string
}

// IsLowStock reports whether the product is at or below its reorder threshold.
func (p Product) IsLowStock() bool {
	return p.Stock <= p.MinStock
}

// Value is stock times price.
func (p Product) Value() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Stock)))
}
