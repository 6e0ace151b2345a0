package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/rogerio-castellano/umkm-inventory/internal/ledger"
	"github.com/rogerio-castellano/umkm-inventory/internal/models"
	"github.com/shopspring/decimal"
)

type csvRow struct {
	Name        string
	Category    string
	SKU         string
	Stock       string
	MinStock    string
	Price       string
	Description string
	SupplierID  string
}

var csvColumns = map[string]string{
	"name":        "name",
	"category":    "category",
	"sku":         "sku",
	"stock":       "stock",
	"minstock":    "minStock",
	"min_stock":   "minStock",
	"price":       "price",
	"description": "description",
	"supplierid":  "supplierId",
	"supplier_id": "supplierId",
}

func parseCSV(file multipart.File) ([]csvRow, error) {
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("invalid CSV header")
	}

	index := map[string]int{}
	for i, h := range headers {
		if col, ok := csvColumns[strings.ToLower(strings.TrimSpace(h))]; ok {
			index[col] = i
		}
	}
	for _, required := range []string{"name", "price", "stock"} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("CSV header is missing column %q", required)
		}
	}

	field := func(record []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var rows []csvRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("CSV read error: %v", err)
		}

		rows = append(rows, csvRow{
			Name:        field(record, "name"),
			Category:    field(record, "category"),
			SKU:         field(record, "sku"),
			Stock:       field(record, "stock"),
			MinStock:    field(record, "minStock"),
			Price:       field(record, "price"),
			Description: field(record, "description"),
			SupplierID:  field(record, "supplierId"),
		})
	}
	return rows, nil
}

// toDraft parses and checks a row. minStock defaults to 0 and category to "Umum".
func (r csvRow) toDraft() (models.ProductDraft, error) {
	if r.Name == "" {
		return models.ProductDraft{}, errors.New("missing name")
	}
	price, err := decimal.NewFromString(r.Price)
	if err != nil || price.IsNegative() {
		return models.ProductDraft{}, errors.New("invalid price")
	}
	stock, err := strconv.Atoi(r.Stock)
	if err != nil || stock < 0 {
		return models.ProductDraft{}, errors.New("invalid stock")
	}
	minStock := 0
	if r.MinStock != "" {
		if minStock, err = strconv.Atoi(r.MinStock); err != nil || minStock < 0 {
			return models.ProductDraft{}, errors.New("invalid minStock")
		}
	}
	category := r.Category
	if category == "" {
		category = "Umum"
	}

	return models.ProductDraft{
		Name:        r.Name,
		Category:    category,
		SKU:         r.SKU,
		Stock:       stock,
		MinStock:    minStock,
		Price:       price,
		Description: r.Description,
		SupplierID:  r.SupplierID,
	}, nil
}

// duplicateOf reports whether draft names an existing product, by SKU when
// both have one and by case-insensitive name otherwise.
func duplicateOf(products []models.Product, draft models.ProductDraft) bool {
	for _, p := range products {
		if draft.SKU != "" && p.SKU != "" {
			if strings.EqualFold(p.SKU, draft.SKU) {
				return true
			}
			continue
		}
		if strings.EqualFold(p.Name, draft.Name) {
			return true
		}
	}
	return false
}

// ImportProductsHandler godoc
// @Summary Import products via CSV
// @Description Columns: name, price, stock (required); category, sku, minStock, description, supplierId (optional). Existing products are skipped.
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Success 200 {object} ImportProductsResult
// @Failure 400 {string} string "Invalid file"
// @Failure 500 {string} string "Not persisted"
// @Router /products/import [post]
func ImportProductsHandler(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	records, err := parseCSV(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	imported := 0
	errorsList := []ValidationError{}

	for i, rec := range records {
		rowNum := i + 2 // header is row 1

		draft, err := rec.toDraft()
		if err != nil {
			errorsList = append(errorsList, ValidationError{Field: fmt.Sprintf("row %d", rowNum), Description: err.Error()})
			continue
		}
		if duplicateOf(store.Products(), draft) {
			errorsList = append(errorsList, ValidationError{Field: fmt.Sprintf("row %d", rowNum), Description: fmt.Sprintf("product '%s' already exists", draft.Name)})
			continue
		}

		if _, err := store.AddProduct(r.Context(), draft); err != nil {
			if errors.Is(err, ledger.ErrPersistence) {
				writeLedgerError(w, r, err)
				return
			}
			errorsList = append(errorsList, ValidationError{Field: fmt.Sprintf("row %d", rowNum), Description: err.Error()})
			continue
		}
		imported++
	}

	logg.Info(logg.WithFields(r.Context(), map[string]any{"imported": imported, "rejected": len(errorsList)}), "products imported")

	err = writeJSON(w, http.StatusOK, ImportProductsResult{
		ImportedProductsCount: imported,
		Errors:                errorsList,
	})

	if err != nil {
		http.Error(w, "", http.StatusInternalServerError)
	}
}
