package main

import (
	"context"
	"fmt"

	"github.com/rogerio-castellano/umkm-inventory/internal/config"
	"github.com/rogerio-castellano/umkm-inventory/internal/db"
	"github.com/rogerio-castellano/umkm-inventory/internal/logger"
	"github.com/rogerio-castellano/umkm-inventory/internal/redissvc"
	"github.com/rogerio-castellano/umkm-inventory/internal/repo"
)

type storageBackend struct {
	Repo  repo.CollectionRepository
	Close func() error
}

func openBackend(ctx context.Context, cfg config.StorageConfig, logg *logger.Logger) (*storageBackend, error) {
	noop := func() error { return nil }
	ctx = logg.WithField(ctx, "backend", cfg.Backend)

	switch cfg.Backend {
	case config.BackendMemory:
		logg.Warn(ctx, "using in-memory storage; data is lost on restart")
		return &storageBackend{Repo: repo.NewInMemoryCollectionRepository(), Close: noop}, nil

	case config.BackendFile:
		r, err := repo.NewFileCollectionRepository(cfg.Dir)
		if err != nil {
			return nil, err
		}
		logg.Info(logg.WithField(ctx, "dir", cfg.Dir), "using file storage")
		return &storageBackend{Repo: r, Close: noop}, nil

	case config.BackendRedis:
		rs, err := redissvc.Connect(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		logg.Info(logg.WithField(ctx, "addr", cfg.Redis.Addr), "using redis storage")
		return &storageBackend{Repo: repo.NewRedisCollectionRepository(rs.Rdb()), Close: rs.Close}, nil

	case config.BackendPostgres:
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		r := repo.NewPostgresCollectionRepository(database)
		if err := r.EnsureSchema(ctx); err != nil {
			database.Close()
			return nil, err
		}
		logg.Info(ctx, "using postgres storage")
		return &storageBackend{Repo: r, Close: database.Close}, nil
	}

	return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
}
