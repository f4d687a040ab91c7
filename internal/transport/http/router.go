// Package httptransport is the thin HTTP layer. It delegates to domain
// services and keeps transport concerns (parsing, status mapping, response
// envelopes) out of business logic.
package httptransport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"emart-gateway/internal/downstream/orderproc"
	"emart-gateway/internal/order"
	"emart-gateway/internal/payment"
)

// OTPService issues and verifies one-time passcodes.
type OTPService interface {
	Issue(ctx context.Context, username, password string) error
	Verify(ctx context.Context, username, code string) error
}

// PaymentService runs the pay-and-order orchestration.
type PaymentService interface {
	Pay(ctx context.Context, req payment.Request) (*payment.Result, error)
}

// CatalogService covers the passthrough routes backed by the
// order-processor.
type CatalogService interface {
	ValidateUser(ctx context.Context, creds orderproc.Credentials) (*orderproc.UserValidation, error)
	Products(ctx context.Context) (json.RawMessage, error)
}

// OrderIntake is the direct order submission path.
type OrderIntake interface {
	Submit(ctx context.Context, sub order.Submission) (order.Result, error)
}

// Handler wires HTTP endpoints to the domain services.
type Handler struct {
	otp      OTPService
	payments PaymentService
	catalog  CatalogService
	orders   OrderIntake
	logger   *slog.Logger
}

func NewHandler(otp OTPService, payments PaymentService, catalog CatalogService, orders OrderIntake, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		otp:      otp,
		payments: payments,
		catalog:  catalog,
		orders:   orders,
		logger:   logger,
	}
}

// NewRouter wires all public endpoints plus the operational routes.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestID)
	r.Use(requestLogger(h.logger))
	r.Use(allowAllCORS)

	r.Post("/send-otp", h.handleSendOTP)
	r.Post("/verify-otp", h.handleVerifyOTP)
	r.Post("/login", h.handleLogin)
	r.Get("/products", h.handleProducts)
	r.Post("/submitorder", h.handleSubmitOrder)
	r.Post("/initiatepayment", h.handleInitiatePayment)

	r.Get("/health", h.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// allowAllCORS mirrors the storefront's permissive cross-origin setup.
func allowAllCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
