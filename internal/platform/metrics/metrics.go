package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	UsersRegistered    prometheus.Counter
	UsersConfirmed     prometheus.Counter
	ConfirmationEmails *prometheus.CounterVec
	RequestDuration    *prometheus.HistogramVec
}

// New creates and registers all metrics against reg. Tests pass a fresh
// prometheus.NewRegistry so suites do not collide on the default registry.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		UsersRegistered: factory.NewCounter(prometheus.CounterOpts{
			Name: "signup_users_registered_total",
			Help: "Total number of pending accounts created.",
		}),
		UsersConfirmed: factory.NewCounter(prometheus.CounterOpts{
			Name: "signup_users_confirmed_total",
			Help: "Total number of accounts promoted to confirmed.",
		}),
		ConfirmationEmails: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "signup_confirmation_emails_total",
			Help: "Confirmation email delivery attempts by outcome.",
		}, []string{"status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "signup_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// IncUsersRegistered increments the registered-accounts counter by 1.
func (m *Metrics) IncUsersRegistered() {
	m.UsersRegistered.Inc()
}

// IncUsersConfirmed increments the confirmed-accounts counter by 1.
func (m *Metrics) IncUsersConfirmed() {
	m.UsersConfirmed.Inc()
}

// IncConfirmationEmail records one delivery attempt with status "sent" or
// "failed".
func (m *Metrics) IncConfirmationEmail(status string) {
	m.ConfirmationEmails.WithLabelValues(status).Inc()
}

// ObserveRequestDuration records one request latency sample.
func (m *Metrics) ObserveRequestDuration(method, route string, seconds float64) {
	m.RequestDuration.WithLabelValues(method, route).Observe(seconds)
}
