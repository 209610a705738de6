// Package service orchestrates the registration and confirmation workflows.
// Transport concerns stay in the handler; storage behind the Store interface.
package service

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"

	"handmadepixel/internal/platform/metrics"
	"handmadepixel/internal/signup/domain"
	"handmadepixel/internal/signup/store"
	"handmadepixel/pkg/platform/audit/publisher"
)

var tracer = otel.Tracer("handmadepixel/signup")

// Mailer delivers the confirmation email. Implemented by notification.Client.
type Mailer interface {
	Send(ctx context.Context, recipient domain.Email, subject, htmlBody, textBody string) error
}

// Service implements the signup workflows over pluggable collaborators.
type Service struct {
	store   store.Store
	mailer  Mailer
	tokens  TokenSource
	audit   *publisher.Publisher
	metrics *metrics.Metrics
	logger  *slog.Logger
	baseURL string
}

// New wires a Service. baseURL is the public origin used to build
// confirmation links, without a trailing slash.
func New(
	st store.Store,
	mailer Mailer,
	tokens TokenSource,
	auditPub *publisher.Publisher,
	m *metrics.Metrics,
	logger *slog.Logger,
	baseURL string,
) *Service {
	return &Service{
		store:   st,
		mailer:  mailer,
		tokens:  tokens,
		audit:   auditPub,
		metrics: m,
		logger:  logger,
		baseURL: baseURL,
	}
}
