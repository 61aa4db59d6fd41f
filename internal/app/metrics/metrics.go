package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "petstore",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "petstore",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "petstore",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "path"},
	)

	internalErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "petstore",
			Subsystem: "failsafe",
			Name:      "internal_errors_total",
			Help:      "Total number of requests answered with the failsafe error page.",
		},
	)

	cartAdditions = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "petstore",
			Subsystem: "cart",
			Name:      "additions_total",
			Help:      "Total number of items added to shopping carts.",
		},
	)

	cartsPurged = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "petstore",
			Subsystem: "cart",
			Name:      "purged_total",
			Help:      "Total number of idle carts discarded.",
		},
	)

	ordersPlaced = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "petstore",
			Subsystem: "orders",
			Name:      "placed_total",
			Help:      "Total number of orders placed, by card type.",
		},
		[]string{"card_type"},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		internalErrors,
		cartAdditions,
		cartsPurged,
		ordersPlaced,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// RequestStarted tracks an in-flight request and returns the function that
// records its completion.
func RequestStarted(method string) func(path string, status int) {
	start := time.Now()
	httpInFlight.Inc()
	return func(path string, status int) {
		httpInFlight.Dec()
		method := strings.ToUpper(method)
		httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
		httpDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}

// RecordInternalError counts one failsafe response.
func RecordInternalError() {
	internalErrors.Inc()
}

// RecordCartAddition counts one item added to a cart.
func RecordCartAddition() {
	cartAdditions.Inc()
}

// RecordCartsPurged counts carts dropped for inactivity.
func RecordCartsPurged(n int) {
	if n > 0 {
		cartsPurged.Add(float64(n))
	}
}

// RecordOrderPlaced counts one order.
func RecordOrderPlaced(cardType string) {
	if cardType == "" {
		cardType = "unknown"
	}
	ordersPlaced.WithLabelValues(strings.ToLower(cardType)).Inc()
}
