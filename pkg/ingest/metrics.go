package ingest

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the Prometheus counters for the ingestion pipeline.
type Metrics struct {
	RowsIngested *prometheus.CounterVec
	RowsSkipped  *prometheus.CounterVec
}

// Skip reasons used as label values on RowsSkipped.
const (
	SkipReasonTooFewColumns = "too_few_columns"
	SkipReasonNoIdentity    = "no_identity"
	SkipReasonRowPanic      = "row_panic"
)

// NewMetrics creates ingestion metrics and registers them with reg.
// Pass prometheus.DefaultRegisterer in production; tests use a fresh
// prometheus.NewRegistry to avoid duplicate registration.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RowsIngested: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "renewaldesk",
				Subsystem: "ingest",
				Name:      "rows_ingested_total",
				Help:      "Number of CSV rows successfully converted into records",
			},
			[]string{"kind"},
		),
		RowsSkipped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "renewaldesk",
				Subsystem: "ingest",
				Name:      "rows_skipped_total",
				Help:      "Number of CSV rows skipped during ingestion",
			},
			[]string{"kind", "reason"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.RowsIngested, m.RowsSkipped)
	}
	return m
}

func (m *Metrics) ingested(kind string) {
	if m != nil {
		m.RowsIngested.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) skipped(kind, reason string) {
	if m != nil {
		m.RowsSkipped.WithLabelValues(kind, reason).Inc()
	}
}
