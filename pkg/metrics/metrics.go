package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the storefront collectors; it is served on /metrics.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "storefront",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "route"},
	)

	upstreamRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "upstream",
			Name:      "requests_total",
			Help:      "Total number of calls made to the rental backend.",
		},
		[]string{"method", "route", "status"},
	)

	upstreamDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "storefront",
			Subsystem: "upstream",
			Name:      "request_duration_seconds",
			Help:      "Duration of calls made to the rental backend.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10), // 10ms to ~10s
		},
		[]string{"method", "route"},
	)

	sessionEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "session",
			Name:      "events_total",
			Help:      "Session lifecycle events (login, logout, purge, restore_failed).",
		},
		[]string{"event"},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		httpRequests,
		httpDuration,
		upstreamRequests,
		upstreamDuration,
		sessionEvents,
	)
}

// Handler exposes the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Middleware records one sample per request, labelled by the matched route template.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method
			httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
			httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// ObserveUpstream records a backend call. status is 0 for transport failures.
func ObserveUpstream(method, route string, status int, elapsed time.Duration) {
	code := "error"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	upstreamRequests.WithLabelValues(method, route, code).Inc()
	upstreamDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func SessionEvent(event string) {
	sessionEvents.WithLabelValues(event).Inc()
}
