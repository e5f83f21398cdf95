package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the application's Prometheus collectors.
type Metrics struct {
	// HTTP
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Domain
	UsersRegisteredTotal prometheus.Counter
	ExercisesLoggedTotal prometheus.Counter
	LogExportsTotal      *prometheus.CounterVec
}

// NewMetrics registers all collectors with reg. Pass a fresh registry in tests
// so repeated construction does not collide.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		HTTPRequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
		),

		UsersRegisteredTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "users_registered_total",
				Help: "Total number of users registered",
			},
		),

		ExercisesLoggedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "exercises_logged_total",
				Help: "Total number of exercise entries appended",
			},
		),

		LogExportsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "log_exports_total",
				Help: "Total number of exercise log exports",
			},
			[]string{"status"}, // success, failed
		),
	}
}

// The helpers below accept a nil receiver so services can run without metrics.

func (m *Metrics) UserRegistered() {
	if m == nil {
		return
	}
	m.UsersRegisteredTotal.Inc()
}

func (m *Metrics) ExerciseLogged() {
	if m == nil {
		return
	}
	m.ExercisesLoggedTotal.Inc()
}

func (m *Metrics) LogExported(err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failed"
	}
	m.LogExportsTotal.WithLabelValues(status).Inc()
}
