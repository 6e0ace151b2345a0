package ledger

import (
	"context"
	"testing"

	"github.com/rogerio-castellano/umkm-inventory/internal/models"
	"github.com/rogerio-castellano/umkm-inventory/internal/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersisterLoad_SeedsAbsentCollections(t *testing.T) {
	ctx := context.Background()
	r := repo.NewInMemoryCollectionRepository()
	p := NewPersister(r, "umkm_", nil)

	state, err := p.Load(ctx, DemoSeed(fixedNow))
	require.NoError(t, err)
	assert.Len(t, state.Products, 3)
	assert.Len(t, state.Transactions, 2)
	assert.Len(t, state.Suppliers, 2)
	assert.ElementsMatch(t, []string{"umkm_products", "umkm_transactions", "umkm_suppliers"}, r.Keys())

	persisted, found, err := repo.LoadCollection[models.Supplier](ctx, r, "umkm_suppliers")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "PT Kopi Jaya", persisted[0].Name)
}

func TestPersisterLoad_KeepsExistingCollections(t *testing.T) {
	ctx := context.Background()
	r := repo.NewInMemoryCollectionRepository()
	require.NoError(t, repo.SaveCollection(ctx, r, "umkm_products", []models.Product{{ID: "x", Name: "Teh Melati", Stock: 3}}))
	require.NoError(t, repo.SaveCollection(ctx, r, "umkm_suppliers", []models.Supplier{}))

	p := NewPersister(r, "umkm_", nil)
	state, err := p.Load(ctx, DemoSeed(fixedNow))
	require.NoError(t, err)

	require.Len(t, state.Products, 1)
	assert.Equal(t, "Teh Melati", state.Products[0].Name)
	assert.Empty(t, state.Suppliers)
	assert.Len(t, state.Transactions, 2)
}

func TestPersisterRoundTripThroughStore(t *testing.T) {
	ctx := context.Background()
	r := repo.NewInMemoryCollectionRepository()
	p := NewPersister(r, "shop_", nil)

	state, err := p.Load(ctx, EmptySeed())
	require.NoError(t, err)
	s := NewStore(state, WithListener(p.Persist))
	product, err := s.AddProduct(ctx, widgetDraft())
	require.NoError(t, err)
	_, _, err = s.ApplyStockMovement(ctx, product.ID, 4, models.TransactionOut, "sale")
	require.NoError(t, err)
	_, err = s.AddSupplier(ctx, models.SupplierDraft{Name: "PT Kopi Jaya"})
	require.NoError(t, err)

	reloaded, err := NewPersister(r, "shop_", nil).Load(ctx, DemoSeed(fixedNow))
	require.NoError(t, err)

	want := s.Snapshot()
	require.Len(t, reloaded.Products, 1)
	assert.Equal(t, want.Products[0].Stock, reloaded.Products[0].Stock)
	assert.True(t, want.Products[0].Price.Equal(reloaded.Products[0].Price))
	assert.True(t, want.Products[0].UpdatedAt.Equal(reloaded.Products[0].UpdatedAt))
	assert.Equal(t, want.Transactions[0].ID, reloaded.Transactions[0].ID)
	assert.Equal(t, want.Suppliers, reloaded.Suppliers)
}

func TestPersistUnknownCollection(t *testing.T) {
	p := NewPersister(repo.NewInMemoryCollectionRepository(), "", nil)
	err := p.Persist(context.Background(), Change{Collection: "orders"})
	assert.Error(t, err)
}

func TestDemoSeedTransactionsAreNewestFirst(t *testing.T) {
	seed := DemoSeed(fixedNow)
	require.Len(t, seed.Transactions, 2)
	assert.True(t, seed.Transactions[0].Date.After(seed.Transactions[1].Date))
}
