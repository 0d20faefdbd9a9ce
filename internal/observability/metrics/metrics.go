package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kirillkom/business-assistant/internal/core/domain"
	"github.com/kirillkom/business-assistant/internal/infrastructure/resilience"
)

// Metrics holds the assistant's Prometheus instruments on a private
// registry, mirroring request handling, the query pipeline, caching and the
// resilience layer.
type Metrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	queriesTotal       *prometheus.CounterVec
	queryDuration      *prometheus.HistogramVec
	breakerTransitions *prometheus.CounterVec
	invalidationsTotal prometheus.Counter
}

func New(service string) *Metrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bizassist",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "bizassist",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "bizassist",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	queriesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bizassist",
			Subsystem: "pipeline",
			Name:      "queries_total",
			Help:      "Total answered queries by intent and cache outcome.",
		},
		[]string{"service", "intent", "cache"},
	)
	queryDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "bizassist",
			Subsystem: "pipeline",
			Name:      "query_duration_seconds",
			Help:      "Query pipeline duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "intent"},
	)
	breakerTransitions := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bizassist",
			Subsystem: "resilience",
			Name:      "breaker_transitions_total",
			Help:      "Circuit breaker state transitions by downstream service.",
		},
		[]string{"service", "downstream", "to"},
	)
	invalidationsTotal := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "bizassist",
			Subsystem: "cache",
			Name:      "invalidations_total",
			Help:      "Total business-level cache invalidations.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		queriesTotal,
		queryDuration,
		breakerTransitions,
		invalidationsTotal,
	)

	return &Metrics{
		registry:           registry,
		requestTotal:       requestTotal,
		requestDuration:    requestDuration,
		requestInFlight:    requestInFlight,
		queriesTotal:       queriesTotal,
		queryDuration:      queryDuration,
		breakerTransitions: breakerTransitions,
		invalidationsTotal: invalidationsTotal,
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			r.URL.Path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
	})
}

// RecordQuery implements the pipeline's metrics contract.
func (m *Metrics) RecordQuery(service string, intent domain.QueryIntent, cacheHit bool, duration time.Duration) {
	outcome := "miss"
	if cacheHit {
		outcome = "hit"
	}
	m.queriesTotal.WithLabelValues(service, string(intent), outcome).Inc()
	m.queryDuration.WithLabelValues(service, string(intent)).Observe(duration.Seconds())
}

// BreakerStateHook adapts the metrics to the resilience registry's
// transition callback.
func (m *Metrics) BreakerStateHook(service string) resilience.StateChangeHook {
	return func(downstream string, _, to resilience.BreakerState) {
		m.breakerTransitions.WithLabelValues(service, downstream, to.String()).Inc()
	}
}

func (m *Metrics) RecordInvalidation() {
	m.invalidationsTotal.Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusRecorder) Flush() {
	flusher, ok := w.ResponseWriter.(http.Flusher)
	if ok {
		flusher.Flush()
	}
}

func (w *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not implement http.Hijacker")
	}
	return hijacker.Hijack()
}

func (w *statusRecorder) Push(target string, opts *http.PushOptions) error {
	pusher, ok := w.ResponseWriter.(http.Pusher)
	if !ok {
		return http.ErrNotSupported
	}
	return pusher.Push(target, opts)
}
