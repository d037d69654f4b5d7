package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mediagate",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"node", "method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mediagate",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"node", "method", "path", "status"},
	)
	selectionDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mediagate",
			Subsystem: "selection",
			Name:      "decisions_total",
			Help:      "Selection decisions by outcome.",
		},
		[]string{"outcome"},
	)
	selectionMissingFields = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mediagate",
			Subsystem: "selection",
			Name:      "missing_fields_total",
			Help:      "Metadata fields reported missing by skipped selections.",
		},
		[]string{"field"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, selectionDecisions, selectionMissingFields)
	})
}

func RecordHTTPRequest(node, method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(node, method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(node, method, path, statusLabel).Observe(duration.Seconds())
}

// RecordSelection counts one decision and, for missing metadata, each field
// that was missing.
func RecordSelection(outcome string, missing []string) {
	RegisterMetrics()
	selectionDecisions.WithLabelValues(outcome).Inc()
	for _, field := range missing {
		selectionMissingFields.WithLabelValues(field).Inc()
	}
}
