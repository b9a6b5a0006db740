package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// APIClientMetrics tracks outgoing backend calls by operation. Exposed on
// an optional local metrics port; disabled by default for a terminal app.
type APIClientMetrics struct {
	registry *prometheus.Registry

	requestTotal     *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	authExpiredTotal prometheus.Counter
	uploadRejects    prometheus.Counter
	aiFallbackTotal  *prometheus.CounterVec
}

func NewAPIClientMetrics(service string) *APIClientMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "notelm",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total backend API calls by operation and status.",
		},
		[]string{"service", "operation", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "notelm",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "Backend API call duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "operation"},
	)
	authExpiredTotal := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "notelm",
			Subsystem: "api",
			Name:      "auth_expired_total",
			Help:      "Total forced logouts triggered by 401 responses.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	uploadRejects := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "notelm",
			Subsystem: "upload",
			Name:      "preflight_rejects_total",
			Help:      "Total uploads rejected before any network call.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	aiFallbackTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "notelm",
			Subsystem: "ai",
			Name:      "fallback_total",
			Help:      "Total AI results replaced by a placeholder.",
		},
		[]string{"service", "feature"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		authExpiredTotal,
		uploadRejects,
		aiFallbackTotal,
	)

	return &APIClientMetrics{
		registry:         registry,
		requestTotal:     requestTotal,
		requestDuration:  requestDuration,
		authExpiredTotal: authExpiredTotal,
		uploadRejects:    uploadRejects,
		aiFallbackTotal:  aiFallbackTotal,
	}
}

func (m *APIClientMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *APIClientMetrics) RecordRequest(service, operation string, statusCode int, duration time.Duration) {
	m.requestTotal.WithLabelValues(service, operation, strconv.Itoa(statusCode)).Inc()
	m.requestDuration.WithLabelValues(service, operation).Observe(duration.Seconds())
}

func (m *APIClientMetrics) RecordAuthExpired() {
	m.authExpiredTotal.Inc()
}

func (m *APIClientMetrics) RecordUploadReject() {
	m.uploadRejects.Inc()
}

func (m *APIClientMetrics) RecordAIFallback(service, feature string) {
	m.aiFallbackTotal.WithLabelValues(service, feature).Inc()
}
