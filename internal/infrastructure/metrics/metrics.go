package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics implements usecase.MetricsRecorder with Prometheus counters.
type Metrics struct {
	operationsCompleted  *prometheus.CounterVec
	idempotentReplays    *prometheus.CounterVec
	idempotencyConflicts *prometheus.CounterVec
}

// New creates and registers all ledger metrics.
func New() *Metrics {
	return &Metrics{
		operationsCompleted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gowallet_operations_completed_total",
				Help: "Total ledger operations completed by operation",
			},
			[]string{"operation"},
		),
		idempotentReplays: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gowallet_idempotent_replays_total",
				Help: "Total requests answered from the idempotency registry",
			},
			[]string{"operation"},
		),
		idempotencyConflicts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gowallet_idempotency_conflicts_total",
				Help: "Total idempotency races lost to a concurrent first committer",
			},
			[]string{"operation"},
		),
	}
}

// OperationCompleted records a successfully committed mutation.
func (m *Metrics) OperationCompleted(operation string) {
	m.operationsCompleted.WithLabelValues(operation).Inc()
}

// IdempotentReplay records a request served from the registry.
func (m *Metrics) IdempotentReplay(operation string) {
	m.idempotentReplays.WithLabelValues(operation).Inc()
}

// IdempotencyConflict records a lost first-committer race.
func (m *Metrics) IdempotencyConflict(operation string) {
	m.idempotencyConflicts.WithLabelValues(operation).Inc()
}
