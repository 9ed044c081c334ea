// Package metrics holds prometheus collectors for sweeps and classifier calls
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Sweeps counts completed sweeps
	Sweeps = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "watchmon_sweeps_total",
		Help: "Number of completed sweeps.",
	})

	// SkippedSweeps counts ticks dropped because a sweep was in flight
	SkippedSweeps = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "watchmon_sweeps_skipped_total",
		Help: "Number of sweep triggers skipped while another sweep was running.",
	})

	// ItemsProcessed counts watched items visited by sweeps
	ItemsProcessed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "watchmon_items_processed_total",
		Help: "Number of watched items processed.",
	})

	// MessagesAnalyzed counts ledger rows inserted
	MessagesAnalyzed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "watchmon_messages_analyzed_total",
		Help: "Number of messages recorded as analyzed.",
	})

	// ActionsGenerated counts persisted actions
	ActionsGenerated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "watchmon_actions_generated_total",
		Help: "Number of actions created from classifier verdicts.",
	})

	// FetchFailures counts adapter failures, labeled by platform
	FetchFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "watchmon_fetch_failures_total",
		Help: "Number of failed content fetches.",
	}, []string{"platform"})

	// ClassifyFailures counts classifier call errors and unusable responses
	ClassifyFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "watchmon_classify_failures_total",
		Help: "Number of failed or unparseable classifier calls.",
	})

	// PersistFailures counts ledger and action store write failures
	PersistFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "watchmon_persist_failures_total",
		Help: "Number of failed ledger or action writes.",
	})

	// SweepDuration observes sweep wall time in seconds
	SweepDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "watchmon_sweep_duration_seconds",
		Help:    "Sweep duration in seconds.",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
	})
)

func init() {
	prometheus.MustRegister(Sweeps, SkippedSweeps, ItemsProcessed, MessagesAnalyzed, ActionsGenerated,
		FetchFailures, ClassifyFailures, PersistFailures, SweepDuration)
}

// Handler serves the default registry in prometheus text format
func Handler() http.Handler {
	return promhttp.Handler()
}
