package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type PipelineMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	oracleCalls     *prometheus.CounterVec
	oracleDuration  *prometheus.HistogramVec
	oracleInFlight  prometheus.Gauge
	cacheLookups    *prometheus.CounterVec
}

func NewPipelineMetrics(service string) *PipelineMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docsctx",
			Subsystem: "pipeline",
			Name:      "requests_total",
			Help:      "Total context-build requests by status.",
		},
		[]string{"service", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "docsctx",
			Subsystem: "pipeline",
			Name:      "request_duration_seconds",
			Help:      "Context-build request duration in seconds by status.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "status"},
	)
	oracleCalls := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docsctx",
			Subsystem: "oracle",
			Name:      "calls_total",
			Help:      "Total oracle calls by operation and status.",
		},
		[]string{"service", "operation", "status"},
	)
	oracleDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "docsctx",
			Subsystem: "oracle",
			Name:      "call_duration_seconds",
			Help:      "Oracle call duration in seconds by operation.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"service", "operation"},
	)
	oracleInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "docsctx",
			Subsystem: "oracle",
			Name:      "calls_in_flight",
			Help:      "Number of oracle calls currently in flight.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	cacheLookups := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docsctx",
			Subsystem: "filter_cache",
			Name:      "lookups_total",
			Help:      "Filter cache lookups by result.",
		},
		[]string{"service", "result"},
	)

	registry.MustRegister(requestTotal, requestDuration, oracleCalls, oracleDuration, oracleInFlight, cacheLookups)

	return &PipelineMetrics{
		registry:        registry,
		requestTotal:    requestTotal,
		requestDuration: requestDuration,
		oracleCalls:     oracleCalls,
		oracleDuration:  oracleDuration,
		oracleInFlight:  oracleInFlight,
		cacheLookups:    cacheLookups,
	}
}

func (m *PipelineMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *PipelineMetrics) ObserveRequest(service string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.requestTotal.WithLabelValues(service, status).Inc()
	m.requestDuration.WithLabelValues(service, status).Observe(duration.Seconds())
}

func (m *PipelineMetrics) StartOracleCall() {
	m.oracleInFlight.Inc()
}

func (m *PipelineMetrics) FinishOracleCall(service, operation string, duration time.Duration, err error) {
	m.oracleInFlight.Dec()

	status := "success"
	if err != nil {
		status = "error"
	}
	m.oracleCalls.WithLabelValues(service, operation, status).Inc()
	m.oracleDuration.WithLabelValues(service, operation).Observe(duration.Seconds())
}

func (m *PipelineMetrics) ObserveCacheLookup(service string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(service, result).Inc()
}
