package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type ServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	triageTotal    *prometheus.CounterVec
	triageDuration *prometheus.HistogramVec
	triageErrors   *prometheus.CounterVec
}

func NewServerMetrics(service string) *ServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "triage",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "triage",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "triage",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	triageTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "triage",
			Subsystem: "email",
			Name:      "classifications_total",
			Help:      "Total completed triages by classification label.",
		},
		[]string{"service", "classification"},
	)
	triageDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "triage",
			Subsystem: "email",
			Name:      "duration_seconds",
			Help:      "End-to-end triage duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service"},
	)
	triageErrors := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "triage",
			Subsystem: "email",
			Name:      "errors_total",
			Help:      "Total failed triages by HTTP status class.",
		},
		[]string{"service", "status"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		triageTotal,
		triageDuration,
		triageErrors,
	)

	return &ServerMetrics{
		registry:        registry,
		requestTotal:    requestTotal,
		requestDuration: requestDuration,
		requestInFlight: requestInFlight,
		triageTotal:     triageTotal,
		triageDuration:  triageDuration,
		triageErrors:    triageErrors,
	}
}

func (m *ServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *ServerMetrics) Middleware(service string, next http.Handler) http.Handler {
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

func (m *ServerMetrics) RecordTriage(service, classification string, duration time.Duration) {
	if classification == "" {
		classification = "unknown"
	}
	m.triageTotal.WithLabelValues(service, classification).Inc()
	m.triageDuration.WithLabelValues(service).Observe(duration.Seconds())
}

func (m *ServerMetrics) RecordTriageError(service string, status int) {
	m.triageErrors.WithLabelValues(service, strconv.Itoa(status)).Inc()
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
