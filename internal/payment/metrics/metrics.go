// Package metrics exposes counters for the payment orchestration pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	PaymentsTotal      *prometheus.CounterVec
	FaultsInjected     *prometheus.CounterVec
	DownstreamDuration *prometheus.HistogramVec
}

func New() *Metrics {
	return &Metrics{
		PaymentsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "emart_gateway_payments_total",
			Help: "Total payment attempts by outcome",
		}, []string{"outcome"}),
		FaultsInjected: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "emart_gateway_faults_injected_total",
			Help: "Total scenario faults injected by scenario name",
		}, []string{"scenario"}),
		DownstreamDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "emart_gateway_downstream_duration_seconds",
			Help:    "Latency of downstream collaborator calls",
			Buckets: prometheus.DefBuckets,
		}, []string{"target"}),
	}
}

// The helpers are nil-safe so the orchestrator can run unmetered in tests.

func (m *Metrics) RecordPayment(outcome string) {
	if m != nil {
		m.PaymentsTotal.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) RecordFault(scenario string) {
	if m != nil {
		m.FaultsInjected.WithLabelValues(scenario).Inc()
	}
}

func (m *Metrics) ObserveDownstream(target string, elapsed time.Duration) {
	if m != nil {
		m.DownstreamDuration.WithLabelValues(target).Observe(elapsed.Seconds())
	}
}
