package repo

import (
	"context"
	"sync"
)

// InMemoryCollectionRepository is an in-memory implementation of CollectionRepository.
type InMemoryCollectionRepository struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewInMemoryCollectionRepository creates a new instance of InMemoryCollectionRepository.
func NewInMemoryCollectionRepository() *InMemoryCollectionRepository {
	return &InMemoryCollectionRepository{
		data: map[string][]byte{},
	}
}

func (r *InMemoryCollectionRepository) Load(_ context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, ok := r.data[key]
	if !ok {
		return nil, ErrCollectionNotFound
	}
	return append([]byte(nil), data...), nil
}

func (r *InMemoryCollectionRepository) Save(_ context.Context, key string, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.data[key] = append([]byte(nil), data...)
	return nil
}

// Keys lists the stored keys.
func (r *InMemoryCollectionRepository) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.data))
	for k := range r.data {
		keys = append(keys, k)
	}
	return keys
}

func (r *InMemoryCollectionRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = map[string][]byte{}
}
