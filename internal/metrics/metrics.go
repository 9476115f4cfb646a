// file: internal/metrics/metrics.go
// version: 1.0.0
// guid: bbb68433-b66c-4fdb-b0c3-2608e40c87ab

package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	checkCycles = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bookwatch",
		Name:      "check_cycles_total",
		Help:      "Total number of completed check cycles by checker",
	}, []string{"checker"})
	checkCycleDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "bookwatch",
		Name:      "check_cycle_duration_seconds",
		Help:      "Histogram of check cycle durations in seconds by checker",
		Buckets:   prometheus.ExponentialBuckets(0.05, 2.0, 12), // ~50ms up to minutes
	}, []string{"checker"})
	listsProcessed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "bookwatch",
		Name:      "lists_processed_total",
		Help:      "Total number of import lists processed",
	})
	listFetchErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "bookwatch",
		Name:      "list_fetch_errors_total",
		Help:      "Total number of list fetch failures",
	})
	booksImported = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "bookwatch",
		Name:      "books_imported_total",
		Help:      "Total number of books imported from lists",
	})
	requestsChecked = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "bookwatch",
		Name:      "requests_checked_total",
		Help:      "Total number of download requests evaluated",
	})
	requestsFulfilled = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "bookwatch",
		Name:      "requests_fulfilled_total",
		Help:      "Total number of download requests fulfilled",
	})

	enabledListsGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "bookwatch",
		Name:      "enabled_lists",
		Help:      "Current number of enabled import lists",
	})
	activeRequestsGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "bookwatch",
		Name:      "active_requests",
		Help:      "Current number of active download requests",
	})
	catalogBooksGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "bookwatch",
		Name:      "catalog_books",
		Help:      "Current number of books in the discovered catalog",
	})
)

// Register initializes metrics with the global Prometheus registry (idempotent)
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(checkCycles, checkCycleDuration,
			listsProcessed, listFetchErrors, booksImported,
			requestsChecked, requestsFulfilled,
			enabledListsGauge, activeRequestsGauge, catalogBooksGauge)
	})
}

// Cycle helpers
func IncCheckCycle(checker string) { checkCycles.WithLabelValues(checker).Inc() }
func ObserveCycleDuration(checker string, d time.Duration) {
	checkCycleDuration.WithLabelValues(checker).Observe(d.Seconds())
}

// Counters
func AddListsProcessed(n int)  { listsProcessed.Add(float64(n)) }
func AddListFetchErrors(n int) { listFetchErrors.Add(float64(n)) }
func AddBooksImported(n int)   { booksImported.Add(float64(n)) }
func AddRequestsChecked(n int) { requestsChecked.Add(float64(n)) }
func IncRequestFulfilled()     { requestsFulfilled.Inc() }

// Gauges
func SetEnabledLists(n int)   { enabledListsGauge.Set(float64(n)) }
func SetActiveRequests(n int) { activeRequestsGauge.Set(float64(n)) }
func SetCatalogBooks(n int)   { catalogBooksGauge.Set(float64(n)) }
