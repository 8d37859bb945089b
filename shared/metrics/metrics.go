// Package metrics exposes the service's Prometheus counters. A nil *Metrics is valid and records
// nothing, which keeps callers free of enable checks.
package metrics

import (
	"net/http"
	"salon/config"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const defaultNamespace = "salon"

const (
	OTPResultSuccess  = "success"
	OTPResultMismatch = "mismatch"
	OTPResultExpired  = "expired"
	OTPResultLocked   = "locked"
)

type Metrics struct {
	registry          *prometheus.Registry
	statusTransitions *prometheus.CounterVec
	otpVerifications  *prometheus.CounterVec
	bookingsCreated   prometheus.Counter
	httpRequests      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
}

func New(cfg *config.Config) *Metrics {
	namespace := cfg.Metrics.Namespace
	if namespace == "" {
		namespace = defaultNamespace
	}

	m := &Metrics{
		registry: prometheus.NewRegistry(),
		statusTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_status_transitions_total",
			Help:      "Booking status changes by source and target status.",
		}, []string{"from", "to"}),
		otpVerifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "otp_verifications_total",
			Help:      "OTP verification attempts by result.",
		}, []string{"result"}),
		bookingsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_items_created_total",
			Help:      "Booking line items created.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.statusTransitions,
		m.otpVerifications,
		m.bookingsCreated,
		m.httpRequests,
		m.httpDuration,
	)

	return m
}

func (m *Metrics) IncStatusTransition(from, to string) {
	if m == nil {
		return
	}

	m.statusTransitions.WithLabelValues(from, to).Inc()
}

func (m *Metrics) IncOTPVerification(result string) {
	if m == nil {
		return
	}

	m.otpVerifications.WithLabelValues(result).Inc()
}

func (m *Metrics) AddBookingsCreated(n int) {
	if m == nil {
		return
	}

	m.bookingsCreated.Add(float64(n))
}

func (m *Metrics) ObserveHTTP(method, route string, code int, elapsed time.Duration) {
	if m == nil {
		return
	}

	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}

	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry is exposed for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
