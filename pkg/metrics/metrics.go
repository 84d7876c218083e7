// Package metrics holds the Prometheus collectors exported by the catalog.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_http_requests_total",
			Help: "Count of handled HTTP requests",
		},
		[]string{"method", "status"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_http_request_duration_seconds",
			Help:    "Time taken to handle HTTP requests",
			Buckets: []float64{0.005, 0.025, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method"},
	)

	PosterOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_poster_operations_total",
			Help: "Count of poster asset store operations",
		},
		[]string{"operation", "status"}, // store, delete, retrieve
	)
	PosterBytes = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_poster_bytes_stored_total",
			Help: "Bytes written to the poster asset store",
		},
	)

	GuardedDeletes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_guarded_deletes_total",
			Help: "Count of actor and director deletes by outcome",
		},
		[]string{"entity", "outcome"}, // deleted, referenced, not_found
	)
)

var (
	registry = prometheus.NewRegistry()
	once     sync.Once
)

// Init registers the catalog collectors along with Go runtime and process
// collectors. Repeated calls are no-ops.
func Init() {
	once.Do(func() {
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			HTTPRequests,
			HTTPDuration,
			PosterOperations,
			PosterBytes,
			GuardedDeletes,
		)
	})
}

// Handler serves the registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

// Status returns the label value recorded for an operation outcome.
func Status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
