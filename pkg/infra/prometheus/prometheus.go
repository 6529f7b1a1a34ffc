package prometheus

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var registry = prometheus.NewRegistry()

var registerer = prometheus.WrapRegistererWith(prometheus.Labels{"app": "tms_harness"}, registry)

var (
	// Latency buckets in milliseconds
	latencyBuckets = []float64{
		5, 10, 25,
		50, 100, 250,
		500, 1000, 2500,
		5000, 10000, 30000,
	}

	TMSRequestTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "tms_harness_tms_requests_total",
			Help: "Messages sent to the TMS by message type and HTTP status",
		},
		[]string{"message_type", "status"},
	)

	TMSRequestLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tms_harness_tms_latency_ms",
			Help:    "TMS round trip latency in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"message_type"},
	)

	TestRunsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "tms_harness_test_runs_total",
			Help: "Recorded test runs by type and outcome",
		},
		[]string{"type", "success"},
	)

	FraudAlertsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "tms_harness_fraud_alerts_total",
			Help: "Fraud alerts found in rule processor logs",
		},
		[]string{"container"},
	)

	TMSCircuitBreakerState = promauto.With(registerer).NewGauge(
		prometheus.GaugeOpts{
			Name: "tms_harness_tms_circuit_breaker_state",
			Help: "State of the TMS circuit breaker: 0 closed, 1 half-open, 2 open",
		},
	)

	MockEvaluationsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "tms_harness_mock_evaluations_total",
			Help: "pacs.008 messages answered by the mock TMS",
		},
		[]string{"result"},
	)

	HTTPRequestsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "tms_harness_http_requests_total",
			Help: "Requests served by the harness API",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tms_harness_http_latency_ms",
			Help:    "Harness API handler latency in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"method", "route"},
	)

	LogStreams = promauto.With(registerer).NewGauge(
		prometheus.GaugeOpts{
			Name: "tms_harness_log_streams",
			Help: "Open websocket log streams",
		},
	)
)

type MetricsConfig struct {
	Enabled bool
}

var (
	Config   MetricsConfig
	initOnce sync.Once
)

// Initialize makes the harness registry the default gatherer. Calling it
// more than once is a no-op.
func Initialize(cfg MetricsConfig) {
	initOnce.Do(func() {
		Config = cfg
		registry.MustRegister(
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewGoCollector(),
		)
		prometheus.DefaultRegisterer = registry
		prometheus.DefaultGatherer = registry
	})
}

func Registry() *prometheus.Registry {
	return registry
}
