package ledger

import (
	"context"

	"github.com/rogerio-castellano/umkm-inventory/internal/models"
)

// Collection names one of the three ledger collections.
type Collection string

const (
	CollectionProducts     Collection = "products"
	CollectionTransactions Collection = "transactions"
	CollectionSuppliers    Collection = "suppliers"
)

// Change is emitted once per affected collection after a mutation is applied.
type Change struct {
	Collection Collection
	Snapshot   models.Snapshot
}

// Listener receives changes synchronously while the store lock is held.
// Listeners must not call back into the store's mutation methods.
type Listener func(ctx context.Context, change Change) error
