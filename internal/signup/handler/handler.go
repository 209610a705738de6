// Package handler is the thin HTTP layer over the signup service. It maps
// form input and domain error codes to statuses and keeps business logic out.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"handmadepixel/internal/platform/metrics"
	"handmadepixel/internal/platform/middleware"
	"handmadepixel/internal/signup/service"
	dErrors "handmadepixel/pkg/domain-errors"
)

// Service defines the signup operations the handler depends on.
type Service interface {
	Register(ctx context.Context, req service.RegisterRequest) error
	Confirm(ctx context.Context, token string) error
}

// Handler handles the signup endpoints and the static pages around them.
type Handler struct {
	logger  *slog.Logger
	service Service
	metrics *metrics.Metrics
}

// New creates a Handler.
func New(svc Service, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		logger:  logger,
		service: svc,
		metrics: m,
	}
}

// NewRouter wires all routes, middleware, and the metrics endpoint.
func NewRouter(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(h.logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(h.logger))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.Latency(h.metrics))

	r.Get("/health_check", h.handleHealthCheck)
	r.Get("/", servePage(homePage))
	r.Get("/login-signup", servePage(loginSignupFormPage))
	r.Post("/login-signup", h.handleLoginSignup)
	r.Get("/login-signup/confirm", h.handleConfirm)
	r.Get("/learn-more", servePage(learnMorePage))
	r.Get("/design", servePage(designPage))

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	return r
}

func (h *Handler) handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// handleLoginSignup accepts the registration form. Any missing field is the
// client's fault; everything past validation maps through domain error codes.
func (h *Handler) handleLoginSignup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	for _, field := range []string{"form_type", "email", "username", "password"} {
		if !r.PostForm.Has(field) {
			h.logger.WarnContext(ctx, "registration form missing field",
				"request_id", middleware.GetRequestID(ctx),
				"field", field,
			)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
	}

	req := service.RegisterRequest{
		Email:     r.PostForm.Get("email"),
		Username:  r.PostForm.Get("username"),
		Password:  r.PostForm.Get("password"),
		UserAgent: r.UserAgent(),
	}
	if err := h.service.Register(ctx, req); err != nil {
		h.writeError(w, r, err)
		return
	}

	writeHTML(w, signupOKPage)
}

// handleConfirm promotes a pending account. A missing or unknown token is
// answered with 401, storage trouble with 500.
func (h *Handler) handleConfirm(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("subscription_token")
	if token == "" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	if err := h.service.Confirm(r.Context(), token); err != nil {
		h.writeError(w, r, err)
		return
	}

	writeHTML(w, confirmedPage)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := dErrors.CodeOf(err)
	if code == dErrors.CodeInternal || code == dErrors.CodeUnavailable {
		h.logger.ErrorContext(r.Context(), "request failed",
			"request_id", middleware.GetRequestID(r.Context()),
			"path", r.URL.Path,
			"error", err.Error(),
		)
	}
	w.WriteHeader(dErrors.ToHTTPStatus(code))
}
