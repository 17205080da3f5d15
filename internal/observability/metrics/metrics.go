package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recruitdesk_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "recruitdesk_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	loginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recruitdesk_logins_total",
		Help: "Count of login attempts by result",
	}, []string{"result"})

	registrationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recruitdesk_registrations_total",
		Help: "Count of company registration attempts by result",
	}, []string{"result"})

	applicationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "recruitdesk_applications_submitted_total",
		Help: "Count of public job applications accepted",
	})

	scopedLookupMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recruitdesk_scoped_lookup_misses_total",
		Help: "Count of tenant-scoped lookups that matched nothing (absent or foreign)",
	}, []string{"entity"})

	retentionPurged = promauto.NewCounter(prometheus.CounterOpts{
		Name: "recruitdesk_retention_purged_total",
		Help: "Count of applicants removed by the retention worker",
	})

	feedSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "recruitdesk_feed_subscribers",
		Help: "Number of connected applicant-feed websocket clients",
	})
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveLogin records a login attempt with a result label.
func ObserveLogin(result string) {
	loginsTotal.WithLabelValues(result).Inc()
}

// ObserveRegistration records a registration attempt with a result label.
func ObserveRegistration(result string) {
	registrationsTotal.WithLabelValues(result).Inc()
}

// ObserveApplication records an accepted public application.
func ObserveApplication() {
	applicationsTotal.Inc()
}

// ObserveScopedMiss records a scoped lookup that matched nothing.
func ObserveScopedMiss(entity string) {
	scopedLookupMisses.WithLabelValues(entity).Inc()
}

// ObserveRetentionPurge records applicants removed by the retention worker.
func ObserveRetentionPurge(count int64) {
	if count > 0 {
		retentionPurged.Add(float64(count))
	}
}

// IncrementFeedSubscribers increments the websocket subscriber gauge.
func IncrementFeedSubscribers() {
	feedSubscribers.Inc()
}

// DecrementFeedSubscribers decrements the websocket subscriber gauge.
func DecrementFeedSubscribers() {
	feedSubscribers.Dec()
}
