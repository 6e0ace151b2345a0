package repo

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisCollectionRepository struct {
	rdb *redis.Client
}

func NewRedisCollectionRepository(rdb *redis.Client) *RedisCollectionRepository {
	return &RedisCollectionRepository{rdb: rdb}
}

func (r *RedisCollectionRepository) Load(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	data, err := r.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCollectionNotFound
	}
	return data, err
}

func (r *RedisCollectionRepository) Save(ctx context.Context, key string, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return r.rdb.Set(ctx, key, data, 0).Err()
}
