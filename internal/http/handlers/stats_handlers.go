package handlers

import (
	"net/http"

	"github.com/rogerio-castellano/umkm-inventory/internal/stats"
)

// GetStatsHandler godoc
// @Summary Dashboard figures
// @Tags stats
// @Produce json
// @Success 200 {object} models.InventoryStats
// @Router /stats [get]
func GetStatsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, stats.Compute(store.Snapshot(), now()))
}

// GetTodayHandler godoc
// @Summary Today's movements and revenue
// @Tags stats
// @Produce json
// @Success 200 {object} stats.TodayReport
// @Router /stats/today [get]
func GetTodayHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, stats.Today(store.Snapshot(), now()))
}

// GetReportHandler godoc
// @Summary Stock and movement summary for a period
// @Tags reports
// @Produce json
// @Param period query string false "7d, 30d (default) or month"
// @Success 200 {object} stats.Report
// @Failure 400 {string} string "Invalid period"
// @Router /reports/summary [get]
func GetReportHandler(w http.ResponseWriter, r *http.Request) {
	period, err := stats.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		http.Error(w, "period must be one of 7d, 30d, month", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, stats.BuildReport(store.Snapshot(), period, now()))
}
