package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrCollectionNotFound is returned by Load when nothing was ever saved under a key.
var ErrCollectionNotFound = errors.New("collection not found")

// CollectionRepository is a durable key-value store holding one serialized
// record sequence per key.
type CollectionRepository interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

// LoadCollection decodes the records stored under key. The boolean is false
// when the key is absent. No validation is applied to decoded records.
func LoadCollection[T any](ctx context.Context, r CollectionRepository, key string) ([]T, bool, error) {
	data, err := r.Load(ctx, key)
	if errors.Is(err, ErrCollectionNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load %s: %w", key, err)
	}

	records := []T{}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return records, true, nil
}

// SaveCollection encodes records and stores them under key.
func SaveCollection[T any](ctx context.Context, r CollectionRepository, key string, records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := r.Save(ctx, key, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}
