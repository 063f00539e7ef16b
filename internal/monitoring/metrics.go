// Package monitoring provides Prometheus metrics for the tech feed filter
package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	fetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blogchecker_fetch_total",
			Help: "HTTP fetches by response status class",
		},
		[]string{"class"},
	)

	runTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blogchecker_run_total",
			Help: "Pipeline runs by site kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	runDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "blogchecker_run_duration_seconds",
			Help:    "Duration of pipeline runs including the pre-fetch delay",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)

	entriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blogchecker_entries_total",
			Help: "Feed entries scored, by result",
		},
		[]string{"result"},
	)

	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blogchecker_http_requests_total",
			Help: "HTTP requests served, by status code",
		},
		[]string{"code"},
	)
)

// RecordFetch counts one HTTP fetch
func RecordFetch(class string) {
	fetchTotal.WithLabelValues(class).Inc()
}

// RecordRun counts one pipeline run
func RecordRun(kind, outcome string, duration time.Duration) {
	runTotal.WithLabelValues(kind, outcome).Inc()
	runDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordEntries counts scored entries
func RecordEntries(kept, dropped int) {
	entriesTotal.WithLabelValues("kept").Add(float64(kept))
	entriesTotal.WithLabelValues("dropped").Add(float64(dropped))
}

// RecordHTTPRequest counts one served request
func RecordHTTPRequest(code string) {
	httpRequests.WithLabelValues(code).Inc()
}

// Handler exposes the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
