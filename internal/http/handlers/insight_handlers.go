package handlers

import (
	"net/http"
)

// GetInsightHandler godoc
// @Summary Ask for business commentary on the current inventory
// @Description Always answers 200; fallback is true when the text is a canned message.
// @Tags insights
// @Produce json
// @Success 200 {object} insight.Result
// @Failure 429 {string} string "Too many requests"
// @Failure 503 {string} string "Not configured"
// @Router /insights [post]
func GetInsightHandler(w http.ResponseWriter, r *http.Request) {
	if insightService == nil {
		http.Error(w, "insight service not configured", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, insightService.Insight(r.Context(), store.Snapshot()))
}
