// Package metrics instruments the board engine with Prometheus collectors.
//
// Usage:
//
//	reg := prometheus.NewRegistry()
//	m := metrics.New(reg)
//	s, err := store.New(store.WithMetrics(m))
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the collectors the engine reports to.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Mutations counts engine operations.
	// Labels: op (addCard, moveCard, ...), outcome (applied|no_change|not_found|invalid_range|corrupted)
	Mutations *prometheus.CounterVec

	// Persists counts slot writes.
	// Labels: status (success|error)
	Persists *prometheus.CounterVec

	// PersistDuration measures slot write latency in seconds.
	PersistDuration prometheus.Histogram

	// Boards tracks the number of boards in the store, closed ones included.
	Boards prometheus.Gauge
}

// New creates the collectors and registers them with reg.
// Passing nil registers with the Prometheus default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		Mutations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nanoboard_mutations_total",
				Help: "Total number of board mutations by operation and outcome",
			},
			[]string{"op", "outcome"},
		),
		Persists: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nanoboard_persist_total",
				Help: "Total number of board state writes by status",
			},
			[]string{"status"},
		),
		PersistDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "nanoboard_persist_duration_seconds",
				Help:    "Duration of board state writes in seconds",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
		),
		Boards: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "nanoboard_boards",
				Help: "Number of boards in the store",
			},
		),
	}
}

// Mutation records one engine operation.
func (m *Metrics) Mutation(op, outcome string) {
	if m == nil {
		return
	}
	m.Mutations.WithLabelValues(op, outcome).Inc()
}

// Persisted records one slot write.
func (m *Metrics) Persisted(d time.Duration, err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.Persists.WithLabelValues(status).Inc()
	m.PersistDuration.Observe(d.Seconds())
}

// SetBoards records the current board count.
func (m *Metrics) SetBoards(n int) {
	if m == nil {
		return
	}
	m.Boards.Set(float64(n))
}
