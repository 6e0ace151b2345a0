package handlers_test

import (
	"net/http"
	"testing"

	handler "github.com/rogerio-castellano/umkm-inventory/internal/http/handlers"
	"github.com/rogerio-castellano/umkm-inventory/internal/ledger"
	"github.com/rogerio-castellano/umkm-inventory/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSupplierHandler(t *testing.T) {
	e := setup(t, ledger.EmptySeed())

	w := e.do(http.MethodPost, "/suppliers", handler.SupplierRequest{Name: "PT Kopi Jaya", Email: "kontak@kopijaya.com", Phone: "08123456789"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[models.Supplier](t, w)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "PT Kopi Jaya", created.Name)

	suppliers := decode[[]models.Supplier](t, e.do(http.MethodGet, "/suppliers", nil))
	require.Len(t, suppliers, 1)
	assert.Equal(t, created.ID, suppliers[0].ID)

	p := widget()
	p.SupplierID = created.ID
	product := mustCreateProduct(t, e, p)
	assert.Equal(t, created.ID, product.SupplierID)
}

func TestCreateSupplierHandler_Invalid(t *testing.T) {
	e := setup(t, ledger.EmptySeed())

	w := e.do(http.MethodPost, "/suppliers", handler.SupplierRequest{Email: "not-an-email"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	errs := decode[[]handler.ValidationError](t, w)
	var fields []string
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	assert.ElementsMatch(t, []string{"name", "email"}, fields)
	assert.Empty(t, e.store.Suppliers())
}
