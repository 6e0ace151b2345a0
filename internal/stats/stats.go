// Package stats derives dashboard figures and reports from a ledger snapshot.
// Every function is pure: the result depends only on its arguments.
package stats

import (
	"time"

	"github.com/rogerio-castellano/umkm-inventory/internal/models"
	"github.com/shopspring/decimal"
)

// Compute builds the dashboard figures. todayRevenue prices each OUT
// transaction dated on now's calendar day at the product's current price.
func Compute(snap models.Snapshot, now time.Time) models.InventoryStats {
	s := models.InventoryStats{
		TotalItems:        len(snap.Products),
		TotalValue:        decimal.Zero,
		TotalTransactions: len(snap.Transactions),
		TotalSuppliers:    len(snap.Suppliers),
		TodayRevenue:      decimal.Zero,
	}

	for _, p := range snap.Products {
		s.TotalValue = s.TotalValue.Add(p.Value())
		if p.IsLowStock() {
			s.LowStockCount++
		}
	}

	s.TodayRevenue = revenue(snap, onDay(snap.Transactions, now))
	return s
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func onDay(txs []models.Transaction, now time.Time) []models.Transaction {
	start := StartOfDay(now)
	end := start.AddDate(0, 0, 1)
	return between(txs, start, end)
}

// between keeps transactions dated in [from, to).
func between(txs []models.Transaction, from, to time.Time) []models.Transaction {
	var out []models.Transaction
	for _, t := range txs {
		if !t.Date.Before(from) && t.Date.Before(to) {
			out = append(out, t)
		}
	}
	return out
}

// revenue sums quantity × live price over OUT transactions. A product that no
// longer resolves contributes nothing.
func revenue(snap models.Snapshot, txs []models.Transaction) decimal.Decimal {
	prices := make(map[string]decimal.Decimal, len(snap.Products))
	for _, p := range snap.Products {
		prices[p.ID] = p.Price
	}

	total := decimal.Zero
	for _, t := range txs {
		if t.Type != models.TransactionOut {
			continue
		}
		price, ok := prices[t.ProductID]
		if !ok {
			continue
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(t.Quantity))))
	}
	return total
}

// LowStockProducts returns products at or below their minimum, in input order.
func LowStockProducts(products []models.Product) []models.Product {
	out := []models.Product{}
	for _, p := range products {
		if p.IsLowStock() {
			out = append(out, p)
		}
	}
	return out
}
