package insight

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rogerio-castellano/umkm-inventory/internal/metrics"
	"github.com/rogerio-castellano/umkm-inventory/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{},
	}
}

func sampleSnapshot(txCount int) models.Snapshot {
	snap := models.Snapshot{
		Products: []models.Product{
			{ID: "1", Name: "Kopi Robusta", Category: "Minuman", Stock: 45, MinStock: 10},
			{ID: "2", Name: "Gula Aren", Category: "Bahan Baku", Stock: 8, MinStock: 15},
		},
		Suppliers: []models.Supplier{{ID: "s1"}, {ID: "s2"}, {ID: "s3"}},
	}
	for i := 0; i < txCount; i++ {
		snap.Transactions = append(snap.Transactions, models.Transaction{
			ID: fmt.Sprintf("t%d", i), ProductName: fmt.Sprintf("item-%d", i), Type: models.TransactionOut, Quantity: i + 1,
		})
	}
	return snap
}

func TestBuildInput_LimitsTransactions(t *testing.T) {
	in := BuildInput(sampleSnapshot(20))

	require.Len(t, in.Transactions, RecentTransactionLimit)
	assert.Equal(t, "item-0", in.Transactions[0].ProductName)
	assert.Equal(t, "item-14", in.Transactions[14].ProductName)
	assert.Equal(t, 3, in.SupplierCount)
	assert.Equal(t, ProductSummary{Name: "Gula Aren", Stock: 8, MinStock: 15, Category: "Bahan Baku"}, in.Products[1])
}

func TestBuildPrompt(t *testing.T) {
	prompt, err := BuildPrompt(BuildInput(sampleSnapshot(1)))
	require.NoError(t, err)

	assert.Contains(t, prompt, `Inventaris: [{"n":"Kopi Robusta","s":45,"m":10,"c":"Minuman"},{"n":"Gula Aren","s":8,"m":15,"c":"Bahan Baku"}]`)
	assert.Contains(t, prompt, `Transaksi Terakhir: [{"p":"item-0","tp":"OUT","q":1}]`)
	assert.Contains(t, prompt, "Total Supplier: 3")
}

func TestBuildPrompt_EmptyLogIsEmptyArray(t *testing.T) {
	prompt, err := BuildPrompt(BuildInput(sampleSnapshot(0)))
	require.NoError(t, err)
	assert.Contains(t, prompt, "Transaksi Terakhir: []")
}

func TestGeminiClient_Generate(t *testing.T) {
	var capturedURL, capturedKey, capturedPrompt string
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		capturedURL = req.URL.String()
		capturedKey = req.Header.Get("x-goog-api-key")

		var payload generateRequest
		if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
			t.Fatalf("decode request body: %v", err)
		}
		capturedPrompt = payload.Contents[0].Parts[0].Text

		return jsonResponse(http.StatusOK, `{"candidates":[{"content":{"role":"model","parts":[{"text":"## Ringkasan\n"},{"text":"Stok aman."}]},"finishReason":"STOP"}]}`), nil
	})

	client, err := NewGeminiClient("test-key",
		WithBaseURL("http://gemini.test/v1beta/"),
		WithModel("gemini-test"),
		WithHTTPClient(&http.Client{Transport: rt}),
	)
	require.NoError(t, err)

	text, err := client.Generate(context.Background(), "halo")
	require.NoError(t, err)
	assert.Equal(t, "## Ringkasan\nStok aman.", text)
	assert.Equal(t, "http://gemini.test/v1beta/models/gemini-test:generateContent", capturedURL)
	assert.Equal(t, "test-key", capturedKey)
	assert.Equal(t, "halo", capturedPrompt)
}

func TestGeminiClient_Errors(t *testing.T) {
	tests := []struct {
		name    string
		resp    *http.Response
		err     error
		wantErr error
	}{
		{name: "non 200", resp: jsonResponse(http.StatusTooManyRequests, `{"error":{"message":"quota"}}`)},
		{name: "no candidates", resp: jsonResponse(http.StatusOK, `{"candidates":[]}`), wantErr: ErrEmptyResponse},
		{name: "blank text", resp: jsonResponse(http.StatusOK, `{"candidates":[{"content":{"parts":[{"text":"  "}]}}]}`), wantErr: ErrEmptyResponse},
		{name: "malformed", resp: jsonResponse(http.StatusOK, `{"candidates":`)},
		{name: "transport", err: errors.New("dial tcp: refused")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := roundTripFunc(func(*http.Request) (*http.Response, error) {
				return tt.resp, tt.err
			})
			client, err := NewGeminiClient("k", WithHTTPClient(&http.Client{Transport: rt}))
			require.NoError(t, err)

			_, err = client.Generate(context.Background(), "p")
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestNewGeminiClient_RequiresKey(t *testing.T) {
	_, err := NewGeminiClient("  ")
	assert.ErrorIs(t, err, ErrAPIKeyRequired)
}

type fakeGenerator struct {
	calls  int
	prompt string
	text   string
	err    error
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls++
	f.prompt = prompt
	if _, ok := ctx.Deadline(); !ok {
		return "", errors.New("missing deadline")
	}
	return f.text, f.err
}

func TestServiceInsight(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewInsightMetrics(reg)
	gen := &fakeGenerator{text: "Stok Gula Aren kritis."}
	svc := NewService(gen, time.Second, nil, m)

	res := svc.Insight(context.Background(), sampleSnapshot(3))
	assert.Equal(t, "Stok Gula Aren kritis.", res.Text)
	assert.False(t, res.Fallback)
	assert.False(t, res.GeneratedAt.IsZero())
	assert.Equal(t, 1, gen.calls)
	assert.Contains(t, gen.prompt, "Gula Aren")
	count, err := testutil.GatherAndCount(reg, "inventory_insight_requests_total", "inventory_insight_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestServiceInsight_FailureFallsBack(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("boom")}
	svc := NewService(gen, time.Second, nil, nil)

	res := svc.Insight(context.Background(), sampleSnapshot(1))
	assert.Equal(t, FailureText, res.Text)
	assert.True(t, res.Fallback)
	assert.Equal(t, 1, gen.calls)
}

func TestServiceInsight_NoData(t *testing.T) {
	gen := &fakeGenerator{text: "x"}
	svc := NewService(gen, 0, nil, nil)

	res := svc.Insight(context.Background(), models.Snapshot{})
	assert.Equal(t, NoDataText, res.Text)
	assert.True(t, res.Fallback)
	assert.Zero(t, gen.calls)
}

func TestServiceInsight_Disabled(t *testing.T) {
	svc := NewService(nil, 0, nil, nil)
	res := svc.Insight(context.Background(), sampleSnapshot(1))
	assert.Equal(t, NotEnabledText, res.Text)
	assert.True(t, res.Fallback)
}
