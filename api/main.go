package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rogerio-castellano/umkm-inventory/internal/config"
	"github.com/rogerio-castellano/umkm-inventory/internal/http/handlers"
	rl "github.com/rogerio-castellano/umkm-inventory/internal/http/rate_limiter"
	"github.com/rogerio-castellano/umkm-inventory/internal/http/router"
	"github.com/rogerio-castellano/umkm-inventory/internal/insight"
	"github.com/rogerio-castellano/umkm-inventory/internal/ledger"
	"github.com/rogerio-castellano/umkm-inventory/internal/logger"
	"github.com/rogerio-castellano/umkm-inventory/internal/metrics"
	"golang.org/x/time/rate"
)

// @title UMKM Inventory API
// @version 1.0
// @description Stock ledger, statistics and reports for a small shop.
// @host localhost:8080
// @BasePath /
func main() {
	logg := logger.New(logger.Options{ServiceName: "inventory-api"})

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "inventory-api",
		Level:       logger.ParseLevel(cfg.Log.Level),
		Format:      cfg.Log.Format,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := openBackend(ctx, cfg.Storage, logg)
	if err != nil {
		logg.Error(ctx, "failed to open storage backend", err)
		os.Exit(1)
	}
	defer func() {
		if err := backend.Close(); err != nil {
			logg.Error(context.Background(), "error closing storage backend", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	persister := ledger.NewPersister(backend.Repo, cfg.Storage.KeyPrefix, logg)
	seed := ledger.EmptySeed()
	if cfg.Seed == config.SeedDemo {
		seed = ledger.DemoSeed(time.Now())
	}
	state, err := persister.Load(ctx, seed)
	if err != nil {
		logg.Error(ctx, "failed to load inventory", err)
		os.Exit(1)
	}

	store := ledger.NewStore(state,
		ledger.WithListener(persister.Persist),
		ledger.WithMetrics(metrics.NewLedgerMetrics(registry)),
	)

	handlers.SetLogger(logg)
	handlers.SetLedger(store)
	handlers.SetInsightService(newInsightService(ctx, cfg, logg, registry))

	rl.Configure(rate.Limit(cfg.Insight.Rate), cfg.Insight.Burst)
	go rl.StartVisitorCleanupLoop(ctx, time.Minute, 5*time.Minute)

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router.NewRouter(logg, registry),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logCtx := logg.WithFields(ctx, map[string]any{
		"addr":     cfg.HTTP.Addr,
		"backend":  cfg.Storage.Backend,
		"products": len(state.Products),
	})

	errCh := make(chan error, 1)
	go func() {
		logg.Info(logCtx, "starting api server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logg.Error(logCtx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(logCtx, "shutting down api server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error(logCtx, "graceful shutdown failed", err)
	}
}

func newInsightService(ctx context.Context, cfg *config.Config, logg *logger.Logger, reg prometheus.Registerer) *insight.Service {
	m := metrics.NewInsightMetrics(reg)

	client, err := insight.NewGeminiClient(cfg.Gemini.APIKey,
		insight.WithBaseURL(cfg.Gemini.BaseURL),
		insight.WithModel(cfg.Gemini.Model),
	)
	if err != nil {
		logg.Warn(logg.WithField(ctx, "reason", err.Error()), "narrative insights disabled")
		return insight.NewService(nil, cfg.Insight.Timeout, logg, m)
	}
	return insight.NewService(client, cfg.Insight.Timeout, logg, m)
}
