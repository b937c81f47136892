package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	leadsConverted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "leads_converted_total",
			Help: "Total number of leads converted and dequeued",
		},
	)

	leadsFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lead_conversion_failures_total",
			Help: "Total number of leads routed to the error table",
		},
	)

	leadsUnresolved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "leads_unresolved_total",
			Help: "Leads left pending because the store mutation failed",
		},
	)

	conversionRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "conversion_runs_total",
			Help: "Total number of reconciliation runs",
		},
		[]string{"status"},
	)

	runDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "conversion_run_duration_seconds",
			Help:    "Duration of reconciliation runs in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	publishErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lead_event_publish_errors_total",
			Help: "Failed lead.converted event publishes (non-blocking)",
		},
	)
)

func RecordLeadConverted() {
	leadsConverted.Inc()
}

func RecordLeadFailed() {
	leadsFailed.Inc()
}

func RecordLeadUnresolved() {
	leadsUnresolved.Inc()
}

func RecordRun(status string, elapsed time.Duration) {
	conversionRuns.WithLabelValues(status).Inc()
	runDuration.Observe(elapsed.Seconds())
}

func RecordPublishError() {
	publishErrors.Inc()
}
