package handlers_test

import (
	"net/http"
	"testing"

	handler "github.com/rogerio-castellano/umkm-inventory/internal/http/handlers"
	"github.com/rogerio-castellano/umkm-inventory/internal/ledger"
	"github.com/rogerio-castellano/umkm-inventory/internal/models"
	"github.com/rogerio-castellano/umkm-inventory/internal/stats"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStatsHandler(t *testing.T) {
	e := setup(t, ledger.DemoSeed(testNow))

	w := e.do(http.MethodGet, "/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)

	s := decode[models.InventoryStats](t, w)
	assert.Equal(t, 3, s.TotalItems)
	assert.Equal(t, 2, s.TotalTransactions)
	assert.Equal(t, 2, s.TotalSuppliers)
	assert.Equal(t, 1, s.LowStockCount)
	assert.True(t, decimal.NewFromInt(45*35000+8*25000+24*18000).Equal(s.TotalValue), s.TotalValue.String())
	// t2: OUT 5 of Kopi today
	assert.True(t, decimal.NewFromInt(5*35000).Equal(s.TodayRevenue), s.TodayRevenue.String())
}

func TestGetStatsHandler_ReflectsMovements(t *testing.T) {
	e := setup(t, ledger.EmptySeed())
	p := mustCreateProduct(t, e, widget())
	applyMovement(e, p.ID, handler.MovementRequest{Type: models.TransactionOut, Quantity: 2})
	applyMovement(e, p.ID, handler.MovementRequest{Type: models.TransactionOut, Quantity: 3})

	s := decode[models.InventoryStats](t, e.do(http.MethodGet, "/stats", nil))
	assert.True(t, decimal.NewFromInt(5000).Equal(s.TodayRevenue))
	assert.Equal(t, 1, s.LowStockCount)
}

func TestGetTodayHandler(t *testing.T) {
	e := setup(t, ledger.DemoSeed(testNow))

	r := decode[stats.TodayReport](t, e.do(http.MethodGet, "/stats/today", nil))
	assert.Equal(t, "2026-10-17", r.Date)
	require.Len(t, r.Transactions, 1)
	assert.Equal(t, "t2", r.Transactions[0].ID)
	assert.Equal(t, 5, r.OutQuantity)
}

func TestGetReportHandler(t *testing.T) {
	e := setup(t, ledger.DemoSeed(testNow))

	w := e.do(http.MethodGet, "/reports/summary?period=7d", nil)
	require.Equal(t, http.StatusOK, w.Code)
	r := decode[stats.Report](t, w)
	assert.Equal(t, stats.PeriodWeek, r.Period)
	assert.Equal(t, 50, r.TotalInQuantity)
	assert.Equal(t, 5, r.TotalOutQuantity)
	assert.Equal(t, 77, r.TotalUnits)
	assert.Equal(t, "Kopi Robusta 250g", r.MostMoved.Name)
	require.Len(t, r.Categories, 2)
	assert.Equal(t, "Bahan Baku", r.Categories[0].Name)

	w = e.do(http.MethodGet, "/reports/summary?period=year", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
