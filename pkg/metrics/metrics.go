// Package metrics provides Prometheus metrics for foldertug.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Size job results.
const (
	ResultExact     = "exact"
	ResultEstimated = "estimated"
	ResultUnknown   = "unknown"
	ResultDropped   = "dropped"
	ResultMissing   = "missing"
)

var (
	sizeJobsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foldertug_size_jobs_total",
			Help: "Total number of folder size jobs by result",
		},
		[]string{"result"},
	)

	sizeJobDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "foldertug_size_job_duration_seconds",
			Help:    "Folder size job duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	sizeJobsPending = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "foldertug_size_jobs_pending",
			Help: "Number of folder size jobs queued or running",
		},
	)

	listingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foldertug_listings_total",
			Help: "Total number of listings rendered by mode",
		},
		[]string{"mode"},
	)
)

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordSizeJob records a finished size job.
func RecordSizeJob(result string, duration time.Duration) {
	sizeJobsTotal.WithLabelValues(result).Inc()
	if result != ResultDropped {
		sizeJobDuration.Observe(duration.Seconds())
	}
}

// SizeJobQueued increments the pending gauge.
func SizeJobQueued() {
	sizeJobsPending.Inc()
}

// SizeJobDone decrements the pending gauge.
func SizeJobDone() {
	sizeJobsPending.Dec()
}

// RecordListing counts a rendered listing.
func RecordListing(mode string) {
	listingsTotal.WithLabelValues(mode).Inc()
}
