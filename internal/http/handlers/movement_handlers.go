package handlers

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/umkm-inventory/internal/models"
)

// ApplyMovementHandler godoc
// @Summary Record a stock movement
// @Tags inventory
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param movement body MovementRequest true "Movement"
// @Success 201 {object} MovementResponse
// @Failure 400 {array} ValidationError
// @Failure 404 {string} string "Product not found"
// @Failure 409 {string} string "Insufficient stock"
// @Failure 500 {string} string "Not persisted"
// @Router /products/{id}/movements [post]
func ApplyMovementHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req MovementRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	req.Type = models.TransactionType(strings.ToUpper(string(req.Type)))

	if validationErrors := validateStruct(req); len(validationErrors) > 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(validationErrors)
		return
	}

	tx, product, err := store.ApplyStockMovement(r.Context(), id, req.Quantity, req.Type, req.Note)
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}

	ctx := logg.WithFields(r.Context(), map[string]any{
		"product_id": product.ID,
		"type":       tx.Type,
		"quantity":   tx.Quantity,
		"stock":      product.Stock,
	})
	logg.Info(ctx, "stock movement recorded")
	if product.IsLowStock() {
		logg.Warn(logg.WithField(ctx, "min_stock", product.MinStock), "product at or below minimum stock")
	}

	writeJSON(w, http.StatusCreated, MovementResponse{Transaction: tx, Product: toProductResponse(product)})
}

type transactionFilter struct {
	productID string
	kind      models.TransactionType
	since     *time.Time
	until     *time.Time
}

// parseTransactionFilter reads productId, type, since and until. Timestamps are RFC3339.
func parseTransactionFilter(r *http.Request) (transactionFilter, string) {
	q := r.URL.Query()
	f := transactionFilter{productID: q.Get("productId")}

	if t := q.Get("type"); t != "" {
		f.kind = models.TransactionType(strings.ToUpper(t))
		if !f.kind.Valid() {
			return f, "type must be IN or OUT"
		}
	}
	for name, dst := range map[string]**time.Time{"since": &f.since, "until": &f.until} {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		// a '+' in an unescaped query arrives as a space
		raw = strings.Replace(raw, " ", "+", 1)
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return f, name + " must be an RFC3339 timestamp"
		}
		*dst = &ts
	}
	return f, ""
}

func (f transactionFilter) apply(txs []models.Transaction) []models.Transaction {
	out := []models.Transaction{}
	for _, t := range txs {
		if f.productID != "" && t.ProductID != f.productID {
			continue
		}
		if f.kind != "" && t.Type != f.kind {
			continue
		}
		if f.since != nil && t.Date.Before(*f.since) {
			continue
		}
		if f.until != nil && t.Date.After(*f.until) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// GetTransactionsHandler godoc
// @Summary Get the transaction log, newest first
// @Tags transactions
// @Produce json
// @Param productId query string false "Only this product"
// @Param type query string false "IN or OUT"
// @Param since query string false "Filter from timestamp (RFC3339)"
// @Param until query string false "Filter until timestamp (RFC3339)"
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {object} TransactionsSearchResult
// @Failure 400 {string} string "Invalid input"
// @Router /transactions [get]
func GetTransactionsHandler(w http.ResponseWriter, r *http.Request) {
	filter, msg := parseTransactionFilter(r)
	if msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	offset, err := optionalNonNegative(r, "offset")
	if err != nil {
		http.Error(w, "offset must be a non-negative integer", http.StatusBadRequest)
		return
	}
	limit, err := optionalNonNegative(r, "limit")
	if err != nil {
		http.Error(w, "limit must be a non-negative integer", http.StatusBadRequest)
		return
	}

	matched := filter.apply(store.Transactions())
	total := len(matched)
	page := matched[min(offset, total):]
	if limit > 0 && limit < len(page) {
		page = page[:limit]
	}

	writeJSON(w, http.StatusOK, TransactionsSearchResult{Data: page, Meta: Meta{TotalCount: total}})
}

func optionalNonNegative(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, strconv.ErrSyntax
	}
	return v, nil
}

// ExportTransactionsHandler godoc
// @Summary Export the transaction log
// @Tags transactions
// @Produce text/csv, application/json
// @Param format query string true "Export format (csv or json)"
// @Param productId query string false "Only this product"
// @Param since query string false "Filter from timestamp (RFC3339)"
// @Param until query string false "Filter until timestamp (RFC3339)"
// @Success 200 {file} file
// @Failure 400 {string} string "Invalid input"
// @Router /transactions/export [get]
func ExportTransactionsHandler(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format != "csv" && format != "json" {
		http.Error(w, "format must be 'csv' or 'json'", http.StatusBadRequest)
		return
	}

	filter, msg := parseTransactionFilter(r)
	if msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}
	txs := filter.apply(store.Transactions())

	switch format {
	case "json":
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="transactions.json"`)
		json.NewEncoder(w).Encode(txs)

	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="transactions.csv"`)

		csvWriter := csv.NewWriter(w)
		_ = csvWriter.Write([]string{"id", "date", "product_id", "product_name", "type", "quantity", "note"})
		for _, t := range txs {
			_ = csvWriter.Write([]string{
				t.ID,
				t.Date.Format(time.RFC3339),
				t.ProductID,
				t.ProductName,
				string(t.Type),
				strconv.Itoa(t.Quantity),
				t.Note,
			})
		}
		csvWriter.Flush()
	}
}
