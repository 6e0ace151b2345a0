package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/umkm-inventory/internal/ledger"
	"github.com/rogerio-castellano/umkm-inventory/internal/models"
	"github.com/rogerio-castellano/umkm-inventory/internal/stats"
)

// CreateProductHandler godoc
// @Summary Create a new product
// @Description Adds a product to the inventory
// @Tags products
// @Accept json
// @Produce json
// @Param product body ProductRequest true "Product to add"
// @Success 201 {object} ProductResponse
// @Failure 400 {array} ValidationError
// @Failure 500 {string} string "Not persisted"
// @Router /products [post]
func CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateProduct(req)
	if len(validationErrors) > 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(validationErrors)
		return
	}

	created, err := store.AddProduct(r.Context(), req.Draft())
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}

	ctx := logg.WithField(r.Context(), "product_id", created.ID)
	logg.Info(ctx, "product created")

	if err := writeJSON(w, http.StatusCreated, toProductResponse(created)); err != nil {
		logg.Error(ctx, "failed to write response", err)
	}
}

// GetProductsHandler godoc
// @Summary List all products
// @Tags products
// @Produce json
// @Param sort query string false "Sort key (name|stock|price|category)"
// @Param dir query string false "Sort direction (asc|desc)"
// @Param category query string false "Only products of this category"
// @Param q query string false "Case-insensitive match on name or SKU"
// @Success 200 {array} ProductResponse
// @Failure 400 {string} string "Invalid sort"
// @Router /products [get]
func GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	key, err := stats.ParseSortKey(query.Get("sort"))
	if err != nil {
		http.Error(w, "sort must be one of name, stock, price, category", http.StatusBadRequest)
		return
	}
	dir := strings.ToLower(query.Get("dir"))
	if dir != "" && dir != "asc" && dir != "desc" {
		http.Error(w, "dir must be 'asc' or 'desc'", http.StatusBadRequest)
		return
	}

	products := filterProducts(store.Products(), query.Get("category"), query.Get("q"))
	products = stats.SortProducts(products, key, dir == "desc")

	writeProducts(w, products)
}

func filterProducts(products []models.Product, category, q string) []models.Product {
	category = strings.TrimSpace(category)
	q = strings.ToLower(strings.TrimSpace(q))
	if category == "" && q == "" {
		return products
	}

	var out []models.Product
	for _, p := range products {
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(p.Name), q) && !strings.Contains(strings.ToLower(p.SKU), q) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func writeProducts(w http.ResponseWriter, products []models.Product) {
	response := make([]ProductResponse, len(products))
	for i, p := range products {
		response[i] = toProductResponse(p)
	}
	if err := writeJSON(w, http.StatusOK, response); err != nil {
		http.Error(w, "could not write products", http.StatusInternalServerError)
	}
}

// GetProductByIDHandler godoc
// @Summary Get product by ID
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} ProductResponse
// @Failure 404 {string} string "Not found"
// @Router /products/{id} [get]
func GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := store.Product(id)
	if err != nil {
		if errors.Is(err, ledger.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch product", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(product))
}

// GetLowStockProductsHandler godoc
// @Summary List products at or below their minimum stock
// @Tags products
// @Produce json
// @Success 200 {array} ProductResponse
// @Router /products/low-stock [get]
func GetLowStockProductsHandler(w http.ResponseWriter, r *http.Request) {
	writeProducts(w, stats.LowStockProducts(store.Products()))
}
