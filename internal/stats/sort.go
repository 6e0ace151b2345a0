package stats

import (
	"errors"
	"slices"
	"strings"

	"github.com/rogerio-castellano/umkm-inventory/internal/models"
)

var ErrInvalidSortKey = errors.New("invalid sort key")

type SortKey string

const (
	SortByName     SortKey = "name"
	SortByStock    SortKey = "stock"
	SortByPrice    SortKey = "price"
	SortByCategory SortKey = "category"
)

// ParseSortKey accepts an empty key as name.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return SortByName, nil
	case SortByName, SortByStock, SortByPrice, SortByCategory:
		return k, nil
	default:
		return "", ErrInvalidSortKey
	}
}

// SortProducts returns a sorted copy of products. Equal keys keep their input order.
func SortProducts(products []models.Product, key SortKey, desc bool) []models.Product {
	out := slices.Clone(products)
	cmp := func(a, b models.Product) int {
		switch key {
		case SortByStock:
			return a.Stock - b.Stock
		case SortByPrice:
			return a.Price.Cmp(b.Price)
		case SortByCategory:
			return strings.Compare(strings.ToLower(a.Category), strings.ToLower(b.Category))
		default:
			return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		}
	}
	slices.SortStableFunc(out, func(a, b models.Product) int {
		if desc {
			return cmp(b, a)
		}
		return cmp(a, b)
	})
	return out
}
