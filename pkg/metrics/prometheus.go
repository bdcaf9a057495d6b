package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for client requests.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// latencyBuckets covers a LAN admin backend up to the default 10s client timeout.
var latencyBuckets = []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000}

// Manager owns the Prometheus collectors.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Client side: one series per binding.
	requests         *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	requestErrors    *prometheus.CounterVec
	requestsInFlight prometheus.Gauge

	// Batch fan-out used by the CLI.
	batchJobs    *prometheus.CounterVec
	batchWorkers prometheus.Gauge

	// Development backend.
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // process-wide registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "sideline",
		subsystem:        "zodiac",
		histogramBuckets: latencyBuckets,
		constLabels:      map[string]string{},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.requests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "client_requests_total",
		Help:        "Requests issued through the endpoint bindings",
		ConstLabels: m.constLabels,
	}, []string{"binding", "method", "outcome"})

	m.requestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "client_request_duration_milliseconds",
		Help:        "Round trip time of binding requests in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"binding", "method"})

	m.requestErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "client_errors_total",
		Help:        "Failed binding requests by error kind",
		ConstLabels: m.constLabels,
	}, []string{"binding", "kind"})

	m.requestsInFlight = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "client_requests_in_flight",
		Help:        "Binding requests currently waiting on the backend",
		ConstLabels: m.constLabels,
	})

	m.batchJobs = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "batch_jobs_total",
		Help:        "Ids processed by the batch pool",
		ConstLabels: m.constLabels,
	}, []string{"outcome"})

	m.batchWorkers = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "batch_workers",
		Help:        "Workers started by the most recent batch run",
		ConstLabels: m.constLabels,
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "backend_http_requests_total",
		Help:        "Requests served by the development backend",
		ConstLabels: m.constLabels,
	}, []string{"route", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "backend_http_request_duration_milliseconds",
		Help:        "Development backend handler latency in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"route", "method", "status_code"})
}

// RecordRequest counts one binding request and its outcome.
func (m *Manager) RecordRequest(binding, method, outcome string) {
	m.requests.WithLabelValues(binding, method, outcome).Inc()
}

// RecordRequestDuration observes the latency of one binding request.
func (m *Manager) RecordRequestDuration(binding, method string, durationMs float64) {
	m.requestDuration.WithLabelValues(binding, method).Observe(durationMs)
}

// RecordRequestError counts a failed binding request by error kind.
func (m *Manager) RecordRequestError(binding, kind string) {
	m.requestErrors.WithLabelValues(binding, kind).Inc()
}

// IncInFlight marks a request as started.
func (m *Manager) IncInFlight() { m.requestsInFlight.Inc() }

// DecInFlight marks a request as finished.
func (m *Manager) DecInFlight() { m.requestsInFlight.Dec() }

// RecordBatchJob counts one id handled by the batch pool.
func (m *Manager) RecordBatchJob(outcome string) {
	m.batchJobs.WithLabelValues(outcome).Inc()
}

// UpdateBatchWorkers sets the batch worker gauge.
func (m *Manager) UpdateBatchWorkers(count int) {
	m.batchWorkers.Set(float64(count))
}

// RecordHTTPRequest counts one request served by the development backend.
func (m *Manager) RecordHTTPRequest(route, method, statusCode string) {
	m.httpRequests.WithLabelValues(route, method, statusCode).Inc()
}

// RecordHTTPRequestDuration observes development backend handler latency.
func (m *Manager) RecordHTTPRequestDuration(route, method, statusCode string, durationMs float64) {
	m.httpRequestDuration.WithLabelValues(route, method, statusCode).Observe(durationMs)
}

// Default returns the global manager.
func Default() *Manager {
	return globalManager
}

// GetRegistry returns the registry the global manager registers on.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
