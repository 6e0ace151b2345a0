package ledger

import (
	"context"
	"fmt"

	"github.com/rogerio-castellano/umkm-inventory/internal/logger"
	"github.com/rogerio-castellano/umkm-inventory/internal/models"
	"github.com/rogerio-castellano/umkm-inventory/internal/repo"
)

// Persister writes changed collections through a CollectionRepository, one
// key per collection.
type Persister struct {
	repo   repo.CollectionRepository
	prefix string
	log    *logger.Logger
}

func NewPersister(r repo.CollectionRepository, keyPrefix string, log *logger.Logger) *Persister {
	if log == nil {
		log = logger.Nop()
	}
	return &Persister{repo: r, prefix: keyPrefix, log: log}
}

// Key is the storage key of collection c.
func (p *Persister) Key(c Collection) string {
	return p.prefix + string(c)
}

// Load reads the three collections. A collection that was never saved is
// taken from seed and written back immediately.
func (p *Persister) Load(ctx context.Context, seed models.Snapshot) (models.Snapshot, error) {
	var (
		state models.Snapshot
		err   error
	)
	if state.Products, err = loadOrSeed(ctx, p, CollectionProducts, seed.Products); err != nil {
		return models.Snapshot{}, err
	}
	if state.Transactions, err = loadOrSeed(ctx, p, CollectionTransactions, seed.Transactions); err != nil {
		return models.Snapshot{}, err
	}
	if state.Suppliers, err = loadOrSeed(ctx, p, CollectionSuppliers, seed.Suppliers); err != nil {
		return models.Snapshot{}, err
	}
	return state, nil
}

func loadOrSeed[T any](ctx context.Context, p *Persister, c Collection, seed []T) ([]T, error) {
	key := p.Key(c)
	records, found, err := repo.LoadCollection[T](ctx, p.repo, key)
	if err != nil {
		return nil, err
	}
	if found {
		p.log.Info(p.log.WithFields(ctx, map[string]any{"collection": key, "records": len(records)}), "collection loaded")
		return records, nil
	}

	if err := repo.SaveCollection(ctx, p.repo, key, seed); err != nil {
		return nil, fmt.Errorf("failed to seed %s: %w", key, err)
	}
	p.log.Info(p.log.WithFields(ctx, map[string]any{"collection": key, "records": len(seed)}), "collection seeded")
	return append([]T(nil), seed...), nil
}

// Persist is a Listener that saves the changed collection from the change snapshot.
func (p *Persister) Persist(ctx context.Context, change Change) error {
	key := p.Key(change.Collection)

	var err error
	switch change.Collection {
	case CollectionProducts:
		err = repo.SaveCollection(ctx, p.repo, key, change.Snapshot.Products)
	case CollectionTransactions:
		err = repo.SaveCollection(ctx, p.repo, key, change.Snapshot.Transactions)
	case CollectionSuppliers:
		err = repo.SaveCollection(ctx, p.repo, key, change.Snapshot.Suppliers)
	default:
		err = fmt.Errorf("unknown collection %q", change.Collection)
	}

	if err != nil {
		p.log.Error(p.log.WithField(ctx, "collection", key), "failed to persist collection", err)
		return err
	}
	p.log.Debug(p.log.WithField(ctx, "collection", key), "collection persisted")
	return nil
}
