package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "commute",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "commute",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "commute",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		},
		[]string{"method", "path"},
	)

	insightCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "commute",
			Subsystem: "ai_insights",
			Name:      "calls_total",
			Help:      "Itinerary insight calls by outcome (ok, timeout, transport, status, decode, canceled).",
		},
		[]string{"outcome"},
	)

	insightDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "commute",
			Subsystem: "ai_insights",
			Name:      "call_duration_seconds",
			Help:      "Duration of itinerary insight calls.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		},
	)

	routingCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "commute",
			Subsystem: "routing",
			Name:      "calls_total",
			Help:      "Routing API plan queries by outcome.",
		},
		[]string{"outcome"},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		httpInFlight,
		httpRequests,
		httpDuration,
		insightCalls,
		insightDuration,
		routingCalls,
	)
}

// Handler exposes the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// TrackInFlight increments the gauge and returns the matching decrement.
func TrackInFlight() func() {
	httpInFlight.Inc()
	return httpInFlight.Dec
}

// ObserveHTTP records one finished request. path should be the route template.
func ObserveHTTP(method, path string, status int, elapsed time.Duration) {
	if path == "" {
		path = "unmatched"
	}
	httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

func ObserveInsightCall(outcome string, elapsed time.Duration) {
	insightCalls.WithLabelValues(outcome).Inc()
	insightDuration.Observe(elapsed.Seconds())
}

func ObserveRoutingCall(outcome string) {
	routingCalls.WithLabelValues(outcome).Inc()
}
