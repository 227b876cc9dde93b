// Package metrics exposes Prometheus instruments for Adyen calls.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels.
const (
	OutcomeSuccess  = "success"
	OutcomeDeclined = "declined"
	OutcomeError    = "error"
)

// Metrics holds the gateway instruments.
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// New registers the instruments on reg. A nil reg falls back to the default
// registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "adyen_requests_total",
			Help: "Total number of Adyen API calls by action and outcome.",
		}, []string{"action", "outcome"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "adyen_request_duration_seconds",
			Help:    "Latency of Adyen API calls.",
			Buckets: prometheus.DefBuckets,
		}, []string{"action"}),
	}
}

// Observe records one call. Safe on a nil receiver.
func (m *Metrics) Observe(action, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(action, outcome).Inc()
	m.requestDuration.WithLabelValues(action).Observe(d.Seconds())
}

// RequestsTotal returns the request counter.
func (m *Metrics) RequestsTotal() *prometheus.CounterVec { return m.requestsTotal }

// RequestDuration returns the latency histogram.
func (m *Metrics) RequestDuration() *prometheus.HistogramVec { return m.requestDuration }
