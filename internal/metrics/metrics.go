package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics aggregates the settlement pipeline counters.
type Metrics struct {
	registry *prometheus.Registry

	WebhookEvents *prometheus.CounterVec
	Withdrawals   *prometheus.CounterVec
	SplitsApplied prometheus.Counter
}

// New creates a Metrics set on its own registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		WebhookEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chowpay_webhook_events_total",
			Help: "Webhook events received, by event type and outcome.",
		}, []string{"event", "outcome"}),
		Withdrawals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chowpay_withdrawals_total",
			Help: "Withdrawal requests, by terminal outcome of the initiation step.",
		}, []string{"outcome"}),
		SplitsApplied: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chowpay_payment_splits_total",
			Help: "Order payments split and credited to wallets.",
		}),
	}

	registry.MustRegister(m.WebhookEvents, m.Withdrawals, m.SplitsApplied)
	return m
}

// Handler serves the registry in prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
