package handlers

import (
	"time"

	"github.com/rogerio-castellano/umkm-inventory/internal/insight"
	"github.com/rogerio-castellano/umkm-inventory/internal/ledger"
	"github.com/rogerio-castellano/umkm-inventory/internal/logger"
)

var (
	store          *ledger.Store
	insightService *insight.Service
	logg           = logger.Nop()

	// now is the evaluation instant for statistics; its location defines "today".
	now = time.Now
)

func SetLedger(s *ledger.Store) {
	store = s
}

func SetInsightService(s *insight.Service) {
	insightService = s
}

func SetLogger(l *logger.Logger) {
	if l == nil {
		l = logger.Nop()
	}
	logg = l
}

func SetClock(fn func() time.Time) {
	if fn == nil {
		fn = time.Now
	}
	now = fn
}
