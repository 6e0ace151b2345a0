package stats

import (
	"errors"
	"time"

	"github.com/rogerio-castellano/umkm-inventory/internal/models"
	"github.com/shopspring/decimal"
)

var ErrInvalidPeriod = errors.New("invalid report period")

type Period string

const (
	PeriodWeek  Period = "7d"
	Period30d   Period = "30d"
	PeriodMonth Period = "month"
)

// ParsePeriod defaults an empty value to 30d.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(s); p {
	case "":
		return Period30d, nil
	case PeriodWeek, Period30d, PeriodMonth:
		return p, nil
	default:
		return "", ErrInvalidPeriod
	}
}

// Since is the first instant covered by p when evaluated at now. 7d and 30d
// include today, so 7d starts six days before today's midnight.
func (p Period) Since(now time.Time) time.Time {
	today := StartOfDay(now)
	switch p {
	case PeriodWeek:
		return today.AddDate(0, 0, -6)
	case PeriodMonth:
		return time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	default:
		return today.AddDate(0, 0, -29)
	}
}

type MostMovedProduct struct {
	ProductID     string `json:"productId,omitempty"`
	Name          string `json:"name"`
	MovementCount int    `json:"movementCount"`
}

type Report struct {
	Period           Period           `json:"period"`
	Since            time.Time        `json:"since"`
	GeneratedAt      time.Time        `json:"generatedAt"`
	TotalStockValue  decimal.Decimal  `json:"totalStockValue"`
	TotalUnits       int              `json:"totalUnits"`
	TotalInQuantity  int              `json:"totalInQuantity"`
	TotalOutQuantity int              `json:"totalOutQuantity"`
	Revenue          decimal.Decimal  `json:"revenue"`
	MostMoved        MostMovedProduct `json:"mostMoved"`
	Categories       []CategoryTotal  `json:"categories"`
	LowStockCount    int              `json:"lowStockCount"`
	LowStock         []models.Product `json:"lowStock"`
}

// BuildReport summarizes the stock position at now and the movements dated
// from period.Since(now) up to the end of now's day.
func BuildReport(snap models.Snapshot, period Period, now time.Time) Report {
	since := period.Since(now)
	txs := between(snap.Transactions, since, StartOfDay(now).AddDate(0, 0, 1))

	r := Report{
		Period:          period,
		Since:           since,
		GeneratedAt:     now,
		TotalStockValue: decimal.Zero,
		Revenue:         revenue(snap, txs),
		Categories:      CategorySummary(snap.Products),
		LowStock:        LowStockProducts(snap.Products),
	}
	r.LowStockCount = len(r.LowStock)

	for _, p := range snap.Products {
		r.TotalStockValue = r.TotalStockValue.Add(p.Value())
		r.TotalUnits += p.Stock
	}

	counts := map[string]int{}
	var order []string
	names := map[string]string{}
	for _, t := range txs {
		switch t.Type {
		case models.TransactionIn:
			r.TotalInQuantity += t.Quantity
		case models.TransactionOut:
			r.TotalOutQuantity += t.Quantity
		}
		if _, seen := counts[t.ProductID]; !seen {
			order = append(order, t.ProductID)
			names[t.ProductID] = t.ProductName
		}
		counts[t.ProductID]++
	}
	// ties go to the product moved most recently
	for _, id := range order {
		if counts[id] > r.MostMoved.MovementCount {
			r.MostMoved = MostMovedProduct{ProductID: id, Name: names[id], MovementCount: counts[id]}
		}
	}
	return r
}
