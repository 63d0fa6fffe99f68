package etl

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Row results
const (
	ResultMigrated = "migrated"
	ResultFailed   = "failed"
)

// Metrics are the Prometheus collectors of a migration. A nil *Metrics
// records nothing.
type Metrics struct {
	rowsTotal     *prometheus.CounterVec
	stageFailures *prometheus.CounterVec
	rowDuration   prometheus.Histogram
	running       prometheus.Gauge
}

// NewMetrics registers the migration collectors with reg. A nil reg creates
// unregistered collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		rowsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "legacy",
			Subsystem: "migration",
			Name:      "rows_total",
			Help:      "Total number of legacy rows processed by result.",
		}, []string{"result"}),
		stageFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "legacy",
			Subsystem: "migration",
			Name:      "stage_failures_total",
			Help:      "Total number of failed upsert stages.",
		}, []string{"stage"}),
		rowDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "legacy",
			Subsystem: "migration",
			Name:      "row_duration_seconds",
			Help:      "Time taken to migrate one legacy row.",
			Buckets: []float64{
				0.005, 0.01, 0.02, 0.05,
				0.1, 0.2, 0.5,
				1, 2, 5, 10, 30,
			},
		}),
		running: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "legacy",
			Subsystem: "migration",
			Name:      "running",
			Help:      "Whether a migration run is in progress (1/0).",
		}),
	}
}

// RowDone records one processed row.
func (m *Metrics) RowDone(result string, took time.Duration) {
	if m == nil {
		return
	}
	m.rowsTotal.WithLabelValues(result).Inc()
	m.rowDuration.Observe(took.Seconds())
}

// StageFailed records one failed stage.
func (m *Metrics) StageFailed(stage string) {
	if m == nil {
		return
	}
	m.stageFailures.WithLabelValues(stage).Inc()
}

// SetRunning flips the running gauge.
func (m *Metrics) SetRunning(running bool) {
	if m == nil {
		return
	}
	if running {
		m.running.Set(1)
		return
	}
	m.running.Set(0)
}
