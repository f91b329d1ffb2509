package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sitescapr/sitescapr-cli/internal/config"
	"github.com/sitescapr/sitescapr-cli/internal/dataset"
	"github.com/sitescapr/sitescapr-cli/internal/engine"
	"github.com/sitescapr/sitescapr-cli/internal/model"
	"github.com/sitescapr/sitescapr-cli/internal/store"
	"github.com/sitescapr/sitescapr-cli/pkg/razorpay"
)

// Budget bounds accepted by the analyze endpoint, in INR per month.
const (
	minBudget = 50_000
	maxBudget = 500_000
)

// proPlanPaise is the price of the pro plan in paise (INR 599).
const proPlanPaise = 59_900

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the zone analysis HTTP API",
	Long: `Serve the zone analysis API.

Endpoints:
  GET  /health           liveness probe
  POST /analyze          rank zones for a business type and budget
  POST /pipeline/update  apply news-derived index deltas (secret gated)
  GET  /pipeline/status  most recent pipeline update
  POST /create-order     create a Razorpay payment order
  POST /verify-payment   verify a Razorpay checkout signature`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck

	var rz razorpay.Client
	if cfg.Razorpay.KeyID != "" {
		rz = razorpay.NewClient(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret,
			razorpay.WithBaseURL(cfg.Razorpay.BaseURL))
	}

	api := newAPI(st, rz, cfg.Razorpay.KeyID, cfg.Server)

	port := servePort
	if port == 0 {
		port = cfg.Server.Port
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           api.router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		<-ctx.Done()
		zap.L().Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	zap.L().Info("starting server", zap.Int("port", port))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return eris.Wrap(err, "serve: listen")
	}

	return nil
}

// api bundles the handler dependencies so routes stay testable without a
// listening socket.
type api struct {
	store    store.Store
	payments razorpay.Client
	keyID    string
	server   config.ServerConfig
	limiter  *rate.Limiter
}

func newAPI(st store.Store, payments razorpay.Client, keyID string, server config.ServerConfig) *api {
	return &api{
		store:    st,
		payments: payments,
		keyID:    keyID,
		server:   server,
		limiter:  rate.NewLimiter(rate.Limit(server.UpdateRPS), server.UpdateBurst),
	}
}

func (a *api) router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: a.server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Pipeline-Secret"},
	}))

	r.Get("/health", a.handleHealth)
	r.Post("/analyze", a.handleAnalyze)
	r.Get("/pipeline/status", a.handlePipelineStatus)

	r.Group(func(r chi.Router) {
		r.Use(a.requirePipelineSecret)
		r.Use(a.rateLimit)
		r.Post("/pipeline/update", a.handlePipelineUpdate)
	})

	r.Post("/create-order", a.handleCreateOrder)
	r.Post("/verify-payment", a.handleVerifyPayment)

	return r
}

// requirePipelineSecret rejects requests whose X-Pipeline-Secret header
// does not match the configured secret. An empty configured secret
// disables the endpoint entirely.
func (a *api) requirePipelineSecret(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.server.UpdateSecret == "" || r.Header.Get("X-Pipeline-Secret") != a.server.UpdateSecret {
			writeError(w, http.StatusForbidden, "invalid pipeline secret")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (a *api) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.limiter.Allow() {
			writeError(w, http.StatusTooManyRequests, "pipeline update rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (a *api) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "sitescapr-api",
	})
}

type analyzeRequest struct {
	BusinessType      string   `json:"business_type"`
	TargetDemographic []string `json:"target_demographic"`
	BudgetRange       int      `json:"budget_range"`
}

func (a *api) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.BusinessType == "" {
		writeError(w, http.StatusBadRequest, "business_type is required")
		return
	}
	if req.BudgetRange < minBudget || req.BudgetRange > maxBudget {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("budget_range must be between %d and %d INR", minBudget, maxBudget))
		return
	}

	stored, err := a.store.ListZones(r.Context())
	if err != nil {
		zap.L().Error("analyze: list zones", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	zones := dataset.Active(stored)

	result := engine.Rank(req.BusinessType, req.TargetDemographic, req.BudgetRange, zones)
	if len(result.Results) == 0 {
		writeError(w, http.StatusNotFound,
			"No suitable areas found within the given budget range. Try increasing your budget.")
		return
	}

	zap.L().Info("analysis served",
		zap.String("business_type", req.BusinessType),
		zap.Int("budget_range", req.BudgetRange),
		zap.Int("results", len(result.Results)),
	)

	writeJSON(w, http.StatusOK, map[string]any{
		"results":              result.Results,
		"business_type":        req.BusinessType,
		"total_areas_analyzed": result.TotalAnalyzed,
	})
}

func (a *api) handlePipelineUpdate(w http.ResponseWriter, r *http.Request) {
	var delta model.IndexDelta
	if err := json.NewDecoder(r.Body).Decode(&delta); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if delta.AreaName == "" {
		writeError(w, http.StatusBadRequest, "area_name is required")
		return
	}

	matched, err := a.store.ApplyDelta(r.Context(), delta.AreaName, delta, delta.SourceSummary)
	if err != nil {
		zap.L().Error("pipeline update failed", zap.String("area", delta.AreaName), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if !matched {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown area %q", delta.AreaName))
		return
	}

	zap.L().Info("pipeline update applied",
		zap.String("area", delta.AreaName),
		zap.String("summary", delta.SourceSummary),
	)
	writeJSON(w, http.StatusOK, map[string]any{
		"updated": true,
		"area":    delta.AreaName,
	})
}

func (a *api) handlePipelineStatus(w http.ResponseWriter, r *http.Request) {
	run, err := a.store.LastPipelineRun(r.Context())
	if err != nil {
		zap.L().Error("pipeline status failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if run == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "no runs recorded"})
		return
	}
	writeJSON(w, http.StatusOK, run)
}

type createOrderRequest struct {
	Plan string `json:"plan"`
}

func (a *api) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	if a.payments == nil {
		writeError(w, http.StatusServiceUnavailable, "payments not configured")
		return
	}

	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Plan != "pro" {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown plan %q", req.Plan))
		return
	}

	order, err := a.payments.CreateOrder(r.Context(), razorpay.OrderRequest{
		Amount:   proPlanPaise,
		Currency: "INR",
		Receipt:  fmt.Sprintf("sitescapr_%s_%s", req.Plan, uuid.NewString()[:8]),
		Notes:    map[string]string{"plan": req.Plan},
	})
	if err != nil {
		zap.L().Error("create order failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, "payment gateway error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"order_id": order.ID,
		"amount":   order.Amount,
		"currency": order.Currency,
		"key_id":   a.keyID,
	})
}

type verifyPaymentRequest struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}

func (a *api) handleVerifyPayment(w http.ResponseWriter, r *http.Request) {
	if a.payments == nil {
		writeError(w, http.StatusServiceUnavailable, "payments not configured")
		return
	}

	var req verifyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.OrderID == "" || req.PaymentID == "" || req.Signature == "" {
		writeError(w, http.StatusBadRequest, "order id, payment id, and signature are required")
		return
	}

	if !a.payments.VerifySignature(req.OrderID, req.PaymentID, req.Signature) {
		writeError(w, http.StatusBadRequest, "payment verification failed: invalid signature")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"verified":   true,
		"payment_id": req.PaymentID,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
