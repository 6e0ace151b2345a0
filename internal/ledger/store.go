package ledger

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/umkm-inventory/internal/metrics"
	"github.com/rogerio-castellano/umkm-inventory/internal/models"
	"go.uber.org/multierr"
)

// Store owns the products, transactions and suppliers collections. Every
// public operation runs under a single lock, so mutations and their change
// notifications never interleave.
type Store struct {
	mu           sync.Mutex
	products     []models.Product
	transactions []models.Transaction
	suppliers    []models.Supplier

	listeners []Listener
	now       func() time.Time
	newID     func() string
	metrics   *metrics.LedgerMetrics
}

type Option func(*Store)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Store) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// WithListener registers a change listener. Listeners run in registration order.
func WithListener(l Listener) Option {
	return func(s *Store) {
		if l != nil {
			s.listeners = append(s.listeners, l)
		}
	}
}

func WithMetrics(m *metrics.LedgerMetrics) Option {
	return func(s *Store) {
		s.metrics = m
	}
}

// NewStore builds a store hydrated with state. Transactions in state are
// expected newest first.
func NewStore(state models.Snapshot, opts ...Option) *Store {
	s := &Store{
		products:     slices.Clone(state.Products),
		transactions: slices.Clone(state.Transactions),
		suppliers:    slices.Clone(state.Suppliers),
		now:          func() time.Time { return time.Now().UTC() },
		newID:        uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddProduct assigns an id and updatedAt to draft and appends it.
func (s *Store) AddProduct(ctx context.Context, draft models.ProductDraft) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product := models.Product{
		ID:          s.newID(),
		Name:        draft.Name,
		Category:    draft.Category,
		SKU:         draft.SKU,
		Stock:       draft.Stock,
		MinStock:    draft.MinStock,
		Price:       draft.Price,
		Description: draft.Description,
		UpdatedAt:   s.now().Round(0),
		SupplierID:  draft.SupplierID,
	}
	s.products = append(s.products, product)

	return product, s.notify(ctx, CollectionProducts)
}

func (s *Store) AddSupplier(ctx context.Context, draft models.SupplierDraft) (models.Supplier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	supplier := models.Supplier{
		ID:          s.newID(),
		Name:        draft.Name,
		ContactName: draft.ContactName,
		Phone:       draft.Phone,
		Email:       draft.Email,
		Address:     draft.Address,
		Category:    draft.Category,
	}
	s.suppliers = append(s.suppliers, supplier)

	return supplier, s.notify(ctx, CollectionSuppliers)
}

// ApplyStockMovement is the only way stock changes. It returns the recorded
// transaction and the product as updated by it. A rejected movement leaves
// every collection untouched and persists nothing.
func (s *Store) ApplyStockMovement(ctx context.Context, productID string, quantity int, movementType models.TransactionType, note string) (models.Transaction, models.Product, error) {
	if quantity <= 0 {
		s.metrics.IncRejected("invalid_quantity")
		return models.Transaction{}, models.Product{}, ErrInvalidQuantity
	}
	if !movementType.Valid() {
		s.metrics.IncRejected("invalid_type")
		return models.Transaction{}, models.Product{}, ErrInvalidMovementType
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(productID)
	if idx < 0 {
		s.metrics.IncRejected("unknown_product")
		return models.Transaction{}, models.Product{}, fmt.Errorf("%w: %s", ErrProductNotFound, productID)
	}
	product := s.products[idx]

	newStock := product.Stock + quantity
	if movementType == models.TransactionOut {
		newStock = product.Stock - quantity
	}
	if newStock < 0 {
		s.metrics.IncRejected("insufficient_stock")
		return models.Transaction{}, models.Product{}, &InsufficientStockError{ProductID: productID, Stock: product.Stock, Requested: quantity}
	}

	now := s.now().Round(0)
	product.Stock = newStock
	product.UpdatedAt = now
	s.products[idx] = product

	tx := models.Transaction{
		ID:          s.newID(),
		ProductID:   productID,
		ProductName: product.Name,
		Type:        movementType,
		Quantity:    quantity,
		Date:        now,
		Note:        note,
	}
	s.transactions = slices.Insert(s.transactions, 0, tx)
	s.metrics.IncMovement(string(movementType))

	return tx, product, s.notify(ctx, CollectionProducts, CollectionTransactions)
}

func (s *Store) indexOf(productID string) int {
	return slices.IndexFunc(s.products, func(p models.Product) bool {
		return p.ID == productID
	})
}

// notify must be called with s.mu held.
func (s *Store) notify(ctx context.Context, collections ...Collection) error {
	if len(s.listeners) == 0 {
		return nil
	}

	snap := s.snapshotLocked()
	var errs error
	for _, c := range collections {
		change := Change{Collection: c, Snapshot: snap}
		for _, l := range s.listeners {
			if err := l(ctx, change); err != nil {
				s.metrics.IncPersistFailure(string(c))
				errs = multierr.Append(errs, fmt.Errorf("%s: %w", c, err))
			}
		}
	}
	if errs != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, errs)
	}
	return nil
}

func (s *Store) snapshotLocked() models.Snapshot {
	return models.Snapshot{
		Products:     slices.Clone(s.products),
		Transactions: slices.Clone(s.transactions),
		Suppliers:    slices.Clone(s.suppliers),
	}
}

// Snapshot returns a point-in-time copy of all collections.
func (s *Store) Snapshot() models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) Products() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.products)
}

// Transactions returns the log newest first.
func (s *Store) Transactions() []models.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.transactions)
}

func (s *Store) Suppliers() []models.Supplier {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.suppliers)
}

func (s *Store) Product(id string) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return models.Product{}, ErrProductNotFound
	}
	return s.products[idx], nil
}
