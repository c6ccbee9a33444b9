package observability

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registerOnce           sync.Once
	apiRequestsTotal       *prometheus.CounterVec
	apiLatencySeconds      *prometheus.HistogramVec
	apiErrorsTotal         *prometheus.CounterVec
	wsConnectionsActive    prometheus.Gauge
	wsEventsDeliveredTotal *prometheus.CounterVec
	wsEventsDroppedTotal   *prometheus.CounterVec
	notificationsTotal     *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used across the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		apiRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		apiLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "api_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		apiErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "api_errors_total",
			Help: "Total number of error responses returned by API endpoints.",
		}, []string{"method", "route", "status"})

		wsConnectionsActive = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ws_connections_active",
			Help: "Number of websocket connections currently open.",
		})

		wsEventsDeliveredTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ws_events_delivered_total",
			Help: "Total number of realtime events written to client channels.",
		}, []string{"type"})

		wsEventsDroppedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ws_events_dropped_total",
			Help: "Total number of realtime events dropped for slow or closed channels.",
		}, []string{"type"})

		notificationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "notifications_published_total",
			Help: "Total number of durable notifications created.",
		}, []string{"type"})

		prometheus.MustRegister(
			apiRequestsTotal,
			apiLatencySeconds,
			apiErrorsTotal,
			wsConnectionsActive,
			wsEventsDeliveredTotal,
			wsEventsDroppedTotal,
			notificationsTotal,
		)
	})
}

// APIRequests exposes the counter for API requests.
func APIRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return apiRequestsTotal
}

// APILatency exposes the latency histogram for API requests.
func APILatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return apiLatencySeconds
}

// APIErrors exposes the counter for API error responses.
func APIErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return apiErrorsTotal
}

// ConnectionsActive exposes the gauge of open websocket connections.
func ConnectionsActive() prometheus.Gauge {
	RegisterMetrics()
	return wsConnectionsActive
}

// EventsDelivered exposes the counter of delivered realtime events.
func EventsDelivered() *prometheus.CounterVec {
	RegisterMetrics()
	return wsEventsDeliveredTotal
}

// EventsDropped exposes the counter of dropped realtime events.
func EventsDropped() *prometheus.CounterVec {
	RegisterMetrics()
	return wsEventsDroppedTotal
}

// NotificationsPublished exposes the counter of durable notifications created.
func NotificationsPublished() *prometheus.CounterVec {
	RegisterMetrics()
	return notificationsTotal
}

// MetricsHandler exposes the Prometheus scrape endpoint via Fiber.
func MetricsHandler() fiber.Handler {
	RegisterMetrics()
	return adaptor.HTTPHandler(promhttp.Handler())
}
