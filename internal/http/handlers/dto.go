package handlers

import (
	"github.com/rogerio-castellano/umkm-inventory/internal/models"
	"github.com/shopspring/decimal"
)

type ProductRequest struct {
	Name        string          `json:"name" validate:"required,max=120"`
	Category    string          `json:"category" validate:"required,max=60"`
	SKU         string          `json:"sku" validate:"max=64"`
	Stock       int             `json:"stock" validate:"min=0"`
	MinStock    int             `json:"minStock" validate:"min=0"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description" validate:"max=500"`
	SupplierID  string          `json:"supplierId"`
}

func (p ProductRequest) Draft() models.ProductDraft {
	return models.ProductDraft{
		Name:        p.Name,
		Category:    p.Category,
		SKU:         p.SKU,
		Stock:       p.Stock,
		MinStock:    p.MinStock,
		Price:       p.Price,
		Description: p.Description,
		SupplierID:  p.SupplierID,
	}
}

type ProductResponse struct {
	models.Product
	LowStock bool `json:"lowStock"`
}

func toProductResponse(p models.Product) ProductResponse {
	return ProductResponse{Product: p, LowStock: p.IsLowStock()}
}

type MovementRequest struct {
	Type     models.TransactionType `json:"type" validate:"required,oneof=IN OUT"`
	Quantity int                    `json:"quantity" validate:"required,gt=0"`
	Note     string                 `json:"note" validate:"max=500"`
}

type MovementResponse struct {
	Transaction models.Transaction `json:"transaction"`
	Product     ProductResponse    `json:"product"`
}

type Meta struct {
	TotalCount int `json:"total_count"`
}

type TransactionsSearchResult struct {
	Data []models.Transaction `json:"data"`
	Meta Meta                 `json:"meta"`
}

type SupplierRequest struct {
	Name        string `json:"name" validate:"required,max=120"`
	ContactName string `json:"contactName" validate:"max=120"`
	Phone       string `json:"phone" validate:"max=30"`
	Email       string `json:"email" validate:"omitempty,email"`
	Address     string `json:"address" validate:"max=250"`
	Category    string `json:"category" validate:"max=60"`
}

func (s SupplierRequest) Draft() models.SupplierDraft {
	return models.SupplierDraft{
		Name:        s.Name,
		ContactName: s.ContactName,
		Phone:       s.Phone,
		Email:       s.Email,
		Address:     s.Address,
		Category:    s.Category,
	}
}

type ImportProductsResult struct {
	ImportedProductsCount int               `json:"imported"`
	Errors                []ValidationError `json:"errors"`
}
