package handlers

import (
	"encoding/json"
	"net/http"
)

// CreateSupplierHandler godoc
// @Summary Register a supplier
// @Tags suppliers
// @Accept json
// @Produce json
// @Param supplier body SupplierRequest true "Supplier to add"
// @Success 201 {object} models.Supplier
// @Failure 400 {array} ValidationError
// @Failure 500 {string} string "Not persisted"
// @Router /suppliers [post]
func CreateSupplierHandler(w http.ResponseWriter, r *http.Request) {
	var req SupplierRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	if validationErrors := validateStruct(req); len(validationErrors) > 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(validationErrors)
		return
	}

	created, err := store.AddSupplier(r.Context(), req.Draft())
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// GetSuppliersHandler godoc
// @Summary List suppliers
// @Tags suppliers
// @Produce json
// @Success 200 {array} models.Supplier
// @Router /suppliers [get]
func GetSuppliersHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, store.Suppliers())
}
