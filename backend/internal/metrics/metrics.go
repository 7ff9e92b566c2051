// Package metrics exposes Prometheus collectors for the import pipeline and
// the query engine.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Query outcomes
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

var (
	importRecords = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hivery_import_records_total",
		Help: "Records read from each import source",
	}, []string{"source"})

	importFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hivery_import_failures_total",
		Help: "Aborted imports by reason",
	}, []string{"reason"})

	importDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "hivery_import_duration_seconds",
		Help:    "Wall time of a complete import",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 14), // 1ms to ~8s
	})

	friendshipsConfirmed = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "hivery_friendships_confirmed",
		Help: "Confirmed friendship pairs in the last successful import",
	})

	queryTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hivery_queries_total",
		Help: "Query engine calls by operation and outcome",
	}, []string{"operation", "outcome"})

	queryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hivery_query_duration_seconds",
		Help:    "Query engine latency by operation",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14), // 0.1ms to ~800ms
	}, []string{"operation"})
)

// RecordImported counts n records read from source
func RecordImported(source string, n int) {
	importRecords.WithLabelValues(source).Add(float64(n))
}

// ImportFailed counts an aborted import
func ImportFailed(reason string) {
	importFailures.WithLabelValues(reason).Inc()
}

// ImportSucceeded records the duration and friendship count of an import
func ImportSucceeded(d time.Duration, friendships int) {
	importDuration.Observe(d.Seconds())
	friendshipsConfirmed.Set(float64(friendships))
}

// ObserveQuery records one query engine call
func ObserveQuery(operation, outcome string, d time.Duration) {
	queryTotal.WithLabelValues(operation, outcome).Inc()
	queryDuration.WithLabelValues(operation).Observe(d.Seconds())
}
