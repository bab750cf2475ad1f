package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method and route.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// RequestTotal counts HTTP requests by method, route and status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// AuditEntriesTotal counts appended audit entries.
	AuditEntriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "audit_entries_total",
			Help: "Total number of audit entries recorded",
		},
		[]string{"module", "action"},
	)

	// AuditWriteFailuresTotal counts mutations whose audit entry could not be stored.
	AuditWriteFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "audit_write_failures_total",
			Help: "Total number of failed audit appends",
		},
		[]string{"module"},
	)
)

var initOnce sync.Once

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, RequestTotal, AuditEntriesTotal, AuditWriteFailuresTotal)
	})
}

// RecordRequest records duration and count for an HTTP request. path is the
// route template, not the raw URL.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	if path == "" {
		path = "<no-route>"
	}
	RequestDuration.WithLabelValues(method, path).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
}

func IncAuditEntries(module, action string) {
	AuditEntriesTotal.WithLabelValues(module, action).Inc()
}

func IncAuditWriteFailures(module string) {
	AuditWriteFailuresTotal.WithLabelValues(module).Inc()
}
