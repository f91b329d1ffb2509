package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sitescapr/sitescapr-cli/internal/config"
	"github.com/sitescapr/sitescapr-cli/internal/dataset"
	"github.com/sitescapr/sitescapr-cli/internal/store"
	"github.com/sitescapr/sitescapr-cli/pkg/razorpay"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

// fakePayments implements razorpay.Client without the network.
type fakePayments struct {
	order     *razorpay.Order
	createErr error
	verified  bool
}

func (f *fakePayments) CreateOrder(_ context.Context, _ razorpay.OrderRequest) (*razorpay.Order, error) {
	return f.order, f.createErr
}

func (f *fakePayments) VerifySignature(_, _, _ string) bool {
	return f.verified
}

func newTestAPI(t *testing.T, payments razorpay.Client) *api {
	t.Helper()

	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "serve_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	ctx := context.Background()
	require.NoError(t, st.Migrate(ctx))
	_, _, err = st.SeedZones(ctx, dataset.Zones())
	require.NoError(t, err)

	return newAPI(st, payments, "key_test", config.ServerConfig{
		Port:           0,
		UpdateSecret:   "testsecret",
		UpdateRPS:      1000,
		UpdateBurst:    1000,
		AllowedOrigins: []string{"*"},
	})
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServeHealth(t *testing.T) {
	h := newTestAPI(t, nil).router()

	rec := doJSON(t, h, http.MethodGet, "/health", nil, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","service":"sitescapr-api"}`, rec.Body.String())
}

func TestServeAnalyze(t *testing.T) {
	h := newTestAPI(t, nil).router()

	rec := doJSON(t, h, http.MethodPost, "/analyze", map[string]any{
		"business_type":      "restaurant",
		"target_demographic": []string{"Working Professionals"},
		"budget_range":       200000,
	}, nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Results []struct {
			Name      string   `json:"name"`
			Score     float64  `json:"score"`
			Rank      int      `json:"rank"`
			Reasoning []string `json:"reasoning"`
		} `json:"results"`
		BusinessType       string `json:"business_type"`
		TotalAreasAnalyzed int    `json:"total_areas_analyzed"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	require.NotEmpty(t, resp.Results)
	assert.LessOrEqual(t, len(resp.Results), 5)
	assert.Equal(t, "restaurant", resp.BusinessType)
	assert.Equal(t, 15, resp.TotalAreasAnalyzed)
	assert.Equal(t, 1, resp.Results[0].Rank)
	assert.Len(t, resp.Results[0].Reasoning, 3)
}

func TestServeAnalyzeValidation(t *testing.T) {
	h := newTestAPI(t, nil).router()

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing business type", map[string]any{"budget_range": 200000}},
		{"budget too low", map[string]any{"business_type": "cafe", "budget_range": 10000}},
		{"budget too high", map[string]any{"business_type": "cafe", "budget_range": 900000}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, h, http.MethodPost, "/analyze", tt.body, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestServeAnalyzeBadBody(t *testing.T) {
	h := newTestAPI(t, nil).router()

	req := httptest.NewRequest(http.MethodPost, "/analyze", bytes.NewBufferString("not json"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServeAnalyzeNoAffordableZones(t *testing.T) {
	h := newTestAPI(t, nil).router()

	// The cheapest bundled zone (Howrah, rent index 26) estimates 78,000;
	// a 50,000 budget tolerates only 75,000.
	rec := doJSON(t, h, http.MethodPost, "/analyze", map[string]any{
		"business_type": "restaurant",
		"budget_range":  50000,
	}, nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "budget")
}

func TestServePipelineUpdate(t *testing.T) {
	a := newTestAPI(t, nil)
	h := a.router()

	rec := doJSON(t, h, http.MethodPost, "/pipeline/update", map[string]any{
		"area_name":               "New Town",
		"area_growth_trend_delta": 4.0,
		"source_summary":          "Metro extension approved",
	}, map[string]string{"X-Pipeline-Secret": "testsecret"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "New Town")

	z, err := a.store.GetZone(context.Background(), "New Town")
	require.NoError(t, err)
	require.NotNil(t, z)
	assert.Equal(t, 82.0, z.AreaGrowthTrend)
	assert.Equal(t, "Metro extension approved", z.LastNewsSummary)
}

func TestServePipelineUpdateSecretRequired(t *testing.T) {
	h := newTestAPI(t, nil).router()

	body := map[string]any{"area_name": "New Town"}

	rec := doJSON(t, h, http.MethodPost, "/pipeline/update", body, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/pipeline/update", body,
		map[string]string{"X-Pipeline-Secret": "wrong"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

// An empty configured secret disables the endpoint rather than opening it.
func TestServePipelineUpdateDisabledWithoutSecret(t *testing.T) {
	a := newTestAPI(t, nil)
	a.server.UpdateSecret = ""
	h := a.router()

	rec := doJSON(t, h, http.MethodPost, "/pipeline/update", map[string]any{
		"area_name": "New Town",
	}, map[string]string{"X-Pipeline-Secret": ""})

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestServePipelineUpdateUnknownZone(t *testing.T) {
	h := newTestAPI(t, nil).router()

	rec := doJSON(t, h, http.MethodPost, "/pipeline/update", map[string]any{
		"area_name":          "Atlantis",
		"income_index_delta": 5.0,
	}, map[string]string{"X-Pipeline-Secret": "testsecret"})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServePipelineUpdateRateLimited(t *testing.T) {
	a := newTestAPI(t, nil)
	a.limiter.SetLimit(0)
	a.limiter.SetBurst(0)
	h := a.router()

	rec := doJSON(t, h, http.MethodPost, "/pipeline/update", map[string]any{
		"area_name": "New Town",
	}, map[string]string{"X-Pipeline-Secret": "testsecret"})

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestServePipelineStatus(t *testing.T) {
	h := newTestAPI(t, nil).router()

	// Before any update.
	rec := doJSON(t, h, http.MethodGet, "/pipeline/status", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "no runs recorded")

	// After an update.
	doJSON(t, h, http.MethodPost, "/pipeline/update", map[string]any{
		"area_name":          "Howrah",
		"income_index_delta": 1.0,
		"source_summary":     "bridge repair done",
	}, map[string]string{"X-Pipeline-Secret": "testsecret"})

	rec = doJSON(t, h, http.MethodGet, "/pipeline/status", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var run struct {
		Area    string `json:"area"`
		Summary string `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &run))
	assert.Equal(t, "Howrah", run.Area)
	assert.Equal(t, "bridge repair done", run.Summary)
}

func TestServeCreateOrder(t *testing.T) {
	payments := &fakePayments{order: &razorpay.Order{
		ID:       "order_abc",
		Amount:   59900,
		Currency: "INR",
		Status:   "created",
	}}
	h := newTestAPI(t, payments).router()

	rec := doJSON(t, h, http.MethodPost, "/create-order", map[string]any{"plan": "pro"}, nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		OrderID  string `json:"order_id"`
		Amount   int    `json:"amount"`
		Currency string `json:"currency"`
		KeyID    string `json:"key_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "order_abc", resp.OrderID)
	assert.Equal(t, 59900, resp.Amount)
	assert.Equal(t, "key_test", resp.KeyID)
}

func TestServeCreateOrderUnknownPlan(t *testing.T) {
	h := newTestAPI(t, &fakePayments{}).router()

	rec := doJSON(t, h, http.MethodPost, "/create-order", map[string]any{"plan": "platinum"}, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServeCreateOrderGatewayFailure(t *testing.T) {
	h := newTestAPI(t, &fakePayments{createErr: assert.AnError}).router()

	rec := doJSON(t, h, http.MethodPost, "/create-order", map[string]any{"plan": "pro"}, nil)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestServePaymentsNotConfigured(t *testing.T) {
	h := newTestAPI(t, nil).router()

	rec := doJSON(t, h, http.MethodPost, "/create-order", map[string]any{"plan": "pro"}, nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/verify-payment", map[string]any{
		"razorpay_order_id":   "o",
		"razorpay_payment_id": "p",
		"razorpay_signature":  "s",
	}, nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestServeVerifyPayment(t *testing.T) {
	body := map[string]any{
		"razorpay_order_id":   "order_abc",
		"razorpay_payment_id": "pay_def",
		"razorpay_signature":  "deadbeef",
	}

	h := newTestAPI(t, &fakePayments{verified: true}).router()
	rec := doJSON(t, h, http.MethodPost, "/verify-payment", body, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"verified":true`)

	h = newTestAPI(t, &fakePayments{verified: false}).router()
	rec = doJSON(t, h, http.MethodPost, "/verify-payment", body, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServeVerifyPaymentMissingFields(t *testing.T) {
	h := newTestAPI(t, &fakePayments{verified: true}).router()

	rec := doJSON(t, h, http.MethodPost, "/verify-payment", map[string]any{
		"razorpay_order_id": "order_abc",
	}, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
