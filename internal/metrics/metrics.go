// Package metrics exposes the Prometheus instrumentation recorded by the
// batch runner: per-status sample counts, solver retry counts, and
// per-sample compute latency.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	SampleStatusTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "microlens_sample_status_total",
			Help: "Total samples evaluated, by status.",
		},
		[]string{"status"},
	)

	SolverRetriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "microlens_solver_retries_total",
			Help: "Total wide-binary and brute-force inversion retries.",
		},
		[]string{"reason"},
	)

	SampleDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "microlens_sample_duration_seconds",
			Help:    "Per-sample trajectory driver step duration, in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"job"},
	)
)

func init() {
	prometheus.MustRegister(SampleStatusTotal)
	prometheus.MustRegister(SolverRetriesTotal)
	prometheus.MustRegister(SampleDurationSeconds)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
