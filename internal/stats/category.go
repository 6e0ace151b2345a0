package stats

import (
	"sort"

	"github.com/rogerio-castellano/umkm-inventory/internal/models"
	"github.com/shopspring/decimal"
)

type CategoryTotal struct {
	Name  string          `json:"name"`
	Stock int             `json:"stock"`
	Worth decimal.Decimal `json:"worth"`
}

// CategorySummary totals stock units and stock value per category, sorted by
// category name so the result does not depend on product order.
func CategorySummary(products []models.Product) []CategoryTotal {
	acc := map[string]*CategoryTotal{}
	for _, p := range products {
		c, ok := acc[p.Category]
		if !ok {
			c = &CategoryTotal{Name: p.Category, Worth: decimal.Zero}
			acc[p.Category] = c
		}
		c.Stock += p.Stock
		c.Worth = c.Worth.Add(p.Value())
	}

	out := make([]CategoryTotal, 0, len(acc))
	for _, c := range acc {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
