package stats

import (
	"time"

	"github.com/rogerio-castellano/umkm-inventory/internal/models"
	"github.com/shopspring/decimal"
)

type TodayReport struct {
	Date         string               `json:"date"`
	Transactions []models.Transaction `json:"transactions"`
	InQuantity   int                  `json:"inQuantity"`
	OutQuantity  int                  `json:"outQuantity"`
	Revenue      decimal.Decimal      `json:"revenue"`
}

// Today lists the transactions dated on now's calendar day, newest first as
// they appear in the log, with per-type unit totals.
func Today(snap models.Snapshot, now time.Time) TodayReport {
	txs := onDay(snap.Transactions, now)
	r := TodayReport{
		Date:         StartOfDay(now).Format(time.DateOnly),
		Transactions: []models.Transaction{},
		Revenue:      revenue(snap, txs),
	}
	for _, t := range txs {
		r.Transactions = append(r.Transactions, t)
		switch t.Type {
		case models.TransactionIn:
			r.InQuantity += t.Quantity
		case models.TransactionOut:
			r.OutQuantity += t.Quantity
		}
	}
	return r
}
