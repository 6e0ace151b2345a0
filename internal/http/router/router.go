package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rogerio-castellano/umkm-inventory/internal/http/handlers"
	mw "github.com/rogerio-castellano/umkm-inventory/internal/http/middleware"
	"github.com/rogerio-castellano/umkm-inventory/internal/logger"
)

// NewRouter wires the handlers. Handlers read the ledger set with
// handlers.SetLedger; metrics are served from gatherer when it is not nil.
func NewRouter(logg *logger.Logger, gatherer prometheus.Gatherer) http.Handler {
	if logg == nil {
		logg = logger.Nop()
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(mw.Logging(logg))
	r.Use(chimw.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok"))
	})
	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/products", func(r chi.Router) {
		r.Post("/", handlers.CreateProductHandler)
		r.Get("/", handlers.GetProductsHandler)
		r.Get("/low-stock", handlers.GetLowStockProductsHandler)
		r.Post("/import", handlers.ImportProductsHandler)
		r.Get("/{id}", handlers.GetProductByIDHandler)
		r.Post("/{id}/movements", handlers.ApplyMovementHandler)
	})

	r.Get("/transactions", handlers.GetTransactionsHandler)
	r.Get("/transactions/export", handlers.ExportTransactionsHandler)

	r.Post("/suppliers", handlers.CreateSupplierHandler)
	r.Get("/suppliers", handlers.GetSuppliersHandler)

	r.Get("/stats", handlers.GetStatsHandler)
	r.Get("/stats/today", handlers.GetTodayHandler)
	r.Get("/reports/summary", handlers.GetReportHandler)

	r.With(mw.RateLimit(logg)).Post("/insights", handlers.GetInsightHandler)

	return r
}
