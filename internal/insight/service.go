// Package insight asks an external text generation service for business
// commentary on the current inventory.
package insight

import (
	"context"
	"time"

	"github.com/rogerio-castellano/umkm-inventory/internal/logger"
	"github.com/rogerio-castellano/umkm-inventory/internal/metrics"
	"github.com/rogerio-castellano/umkm-inventory/internal/models"
)

const (
	FailureText     = "Gagal mendapatkan analisis dari AI. Silakan coba lagi nanti."
	NoDataText      = "Belum ada data inventaris untuk dianalisis."
	NotEnabledText  = "Analisis AI belum diaktifkan. Atur INVENTORY_GEMINI_API_KEY untuk menggunakannya."
	defaultDeadline = 30 * time.Second
)

// Generator turns a prompt into free text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Result struct {
	Text        string    `json:"text"`
	Fallback    bool      `json:"fallback"`
	GeneratedAt time.Time `json:"generatedAt"`
}

type Service struct {
	gen     Generator
	timeout time.Duration
	log     *logger.Logger
	metrics *metrics.InsightMetrics
	now     func() time.Time
}

// NewService accepts a nil generator; every request then gets the not enabled text.
func NewService(gen Generator, timeout time.Duration, log *logger.Logger, m *metrics.InsightMetrics) *Service {
	if timeout <= 0 {
		timeout = defaultDeadline
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{gen: gen, timeout: timeout, log: log, metrics: m, now: time.Now}
}

// Insight makes a single attempt. Failures are logged and answered with
// FailureText; they are never returned to the caller.
func (s *Service) Insight(ctx context.Context, snap models.Snapshot) Result {
	if len(snap.Products) == 0 && len(snap.Transactions) == 0 {
		s.metrics.IncOutcome("no_data")
		return s.result(NoDataText, true)
	}
	if s.gen == nil {
		s.metrics.IncOutcome("disabled")
		return s.result(NotEnabledText, true)
	}

	prompt, err := BuildPrompt(BuildInput(snap))
	if err != nil {
		s.log.Error(ctx, "failed to build insight prompt", err)
		s.metrics.IncOutcome("error")
		return s.result(FailureText, true)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	text, err := s.gen.Generate(ctx, prompt)
	s.metrics.ObserveDuration(time.Since(start))
	if err != nil {
		s.log.Error(ctx, "insight request failed", err)
		s.metrics.IncOutcome("error")
		return s.result(FailureText, true)
	}

	s.metrics.IncOutcome("ok")
	return s.result(text, false)
}

func (s *Service) result(text string, fallback bool) Result {
	return Result{Text: text, Fallback: fallback, GeneratedAt: s.now().UTC().Round(0)}
}
