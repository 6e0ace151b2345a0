package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	handler "github.com/rogerio-castellano/umkm-inventory/internal/http/handlers"
	rl "github.com/rogerio-castellano/umkm-inventory/internal/http/rate_limiter"
	"github.com/rogerio-castellano/umkm-inventory/internal/http/router"
	"github.com/rogerio-castellano/umkm-inventory/internal/ledger"
	"github.com/rogerio-castellano/umkm-inventory/internal/models"
	"github.com/rogerio-castellano/umkm-inventory/internal/repo"
	"github.com/shopspring/decimal"
)

var testNow = time.Date(2026, 10, 17, 10, 0, 0, 0, time.UTC)

// switchableRepo fails every Save while failing is set.
type switchableRepo struct {
	*repo.InMemoryCollectionRepository
	mu      sync.Mutex
	failing bool
}

func (s *switchableRepo) Save(ctx context.Context, key string, data []byte) error {
	s.mu.Lock()
	failing := s.failing
	s.mu.Unlock()
	if failing {
		return errors.New("disk full")
	}
	return s.InMemoryCollectionRepository.Save(ctx, key, data)
}

func (s *switchableRepo) setFailing(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing = v
}

type testEnv struct {
	router http.Handler
	store  *ledger.Store
	repo   *switchableRepo
}

// setup installs a fresh ledger hydrated from seed behind a new router.
func setup(t *testing.T, seed models.Snapshot) *testEnv {
	t.Helper()

	r := &switchableRepo{InMemoryCollectionRepository: repo.NewInMemoryCollectionRepository()}
	p := ledger.NewPersister(r, "umkm_", nil)
	state, err := p.Load(context.Background(), seed)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	store := ledger.NewStore(state,
		ledger.WithClock(func() time.Time { return testNow }),
		ledger.WithListener(p.Persist),
	)
	handler.SetLedger(store)
	handler.SetClock(func() time.Time { return testNow })
	handler.SetInsightService(nil)
	rl.CleanupAllVisitors()
	t.Cleanup(func() { handler.SetClock(nil) })

	return &testEnv{router: router.NewRouter(nil, nil), store: store, repo: r}
}

func (e *testEnv) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func createProduct(e *testEnv, p handler.ProductRequest) *httptest.ResponseRecorder {
	return e.do(http.MethodPost, "/products", p)
}

func applyMovement(e *testEnv, productID string, m handler.MovementRequest) *httptest.ResponseRecorder {
	return e.do(http.MethodPost, fmt.Sprintf("/products/%s/movements", productID), m)
}

func mustCreateProduct(t *testing.T, e *testEnv, p handler.ProductRequest) handler.ProductResponse {
	t.Helper()
	w := createProduct(e, p)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}
	var resp handler.ProductResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	return resp
}

func widget() handler.ProductRequest {
	return handler.ProductRequest{Name: "Widget", Category: "X", SKU: "W-1", Stock: 10, MinStock: 5, Price: decimal.NewFromInt(1000)}
}

func multipartCSV(csvContent string, filename string) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, _ := writer.CreateFormFile("file", filename)
	part.Write([]byte(csvContent))

	writer.Close()
	return &buf, writer.FormDataContentType()
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(w.Body).Decode(&v); err != nil {
		t.Fatalf("error decoding response %q: %v", w.Body.String(), err)
	}
	return v
}
