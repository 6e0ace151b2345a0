package models

import "github.com/shopspring/decimal"

// Snapshot is a read-only, point-in-time copy of the ledger collections.
// Transactions are ordered newest first.
type Snapshot struct {
	Products     []Product     `json:"products"`
	Transactions []Transaction `json:"transactions"`
	Suppliers    []Supplier    `json:"suppliers"`
}

type InventoryStats struct {
	TotalItems        int             `json:"totalItems"`
	TotalValue        decimal.Decimal `json:"totalValue"`
	LowStockCount     int             `json:"lowStockCount"`
	TotalTransactions int             `json:"totalTransactions"`
	TotalSuppliers    int             `json:"totalSuppliers"`
	TodayRevenue      decimal.Decimal `json:"todayRevenue"`
}
