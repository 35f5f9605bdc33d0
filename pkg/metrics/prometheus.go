// Package metrics provides Prometheus metrics for the Roots & Roads service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// latencyBuckets are millisecond buckets suited to remote fetches.
var latencyBuckets = []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000}

// Manager owns every metric the service exports.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Dataset pipeline
	datasetLoads        *prometheus.CounterVec
	datasetLoadDuration prometheus.Histogram
	rowsRejected        *prometheus.CounterVec
	contributors        prometheus.Gauge
	countries           prometheus.Gauge
	geolocated          prometheus.Gauge

	// Country boundary overlay
	boundaryLookups   *prometheus.CounterVec
	boundaryLatency   prometheus.Histogram
	statsStreamsOpen  prometheus.Gauge
	statsStreamFrames prometheus.Counter

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByEndpoint *prometheus.CounterVec
	errorRateByType     *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// customRegistry keeps the default Go collectors out of /healthz.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its metrics.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "rootsroads",
		subsystem:        "site",
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

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every metric definition
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.constLabels)

	m.datasetLoads = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: "dataset_loads_total",
		Help: "Dataset loads by outcome and error kind",
	}, []string{"outcome", "kind"})

	m.datasetLoadDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name:    "dataset_load_duration_milliseconds",
		Help:    "Time to fetch, parse and normalize the spreadsheet",
		Buckets: m.histogramBuckets,
	})

	m.rowsRejected = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: "rows_rejected_total",
		Help: "Spreadsheet rows rejected by the consent or name gate",
	}, []string{"reason"})

	m.contributors = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: "contributors",
		Help: "Contributors in the current dataset",
	})

	m.countries = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: "countries",
		Help: "Distinct countries in the current dataset",
	})

	m.geolocated = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: "geolocated_contributors",
		Help: "Contributors with both coordinates present",
	})

	m.boundaryLookups = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: "boundary_lookups_total",
		Help: "Country boundary lookups by outcome (hit, fetched, unknown, failed)",
	}, []string{"outcome"})

	m.boundaryLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name:    "boundary_fetch_latency_milliseconds",
		Help:    "Latency of boundary service requests",
		Buckets: m.histogramBuckets,
	})

	m.statsStreamsOpen = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: "stats_streams_open",
		Help: "Open dashboard counter streams",
	})

	m.statsStreamFrames = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: "stats_stream_frames_total",
		Help: "Counter frames sent to dashboard streams",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: "http_requests_total",
		Help: "HTTP requests by endpoint, method and status",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name:    "http_request_duration_milliseconds",
		Help:    "HTTP request duration in milliseconds",
		Buckets: m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.errorRateByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: "errors_by_endpoint_total",
		Help: "HTTP errors by endpoint, method and error type",
	}, []string{"endpoint", "method", "error_type"})

	m.errorRateByType = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: "errors_by_type_total",
		Help: "HTTP errors by type and severity",
	}, []string{"error_type", "severity"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: "system_memory_usage_bytes",
		Help: "Heap bytes allocated",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: "system_goroutine_count",
		Help: "Number of goroutines",
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name:    "system_gc_pause_time_milliseconds",
		Help:    "Average GC pause in milliseconds",
		Buckets: prometheus.DefBuckets,
	})
}

// Dataset pipeline.

func RecordDatasetLoad(outcome, kind string) {
	globalManager.datasetLoads.WithLabelValues(outcome, kind).Inc()
}

func RecordDatasetLoadDuration(ms float64) { globalManager.datasetLoadDuration.Observe(ms) }

func RecordRowsRejected(reason string, n int) {
	if n > 0 {
		globalManager.rowsRejected.WithLabelValues(reason).Add(float64(n))
	}
}

func UpdateContributors(n int) { globalManager.contributors.Set(float64(n)) }
func UpdateCountries(n int)    { globalManager.countries.Set(float64(n)) }
func UpdateGeolocated(n int)   { globalManager.geolocated.Set(float64(n)) }

// Boundary overlay and dashboard streams.

func RecordBoundaryLookup(outcome string) {
	globalManager.boundaryLookups.WithLabelValues(outcome).Inc()
}

func RecordBoundaryLatency(ms float64) { globalManager.boundaryLatency.Observe(ms) }

func IncStatsStreams()       { globalManager.statsStreamsOpen.Inc() }
func DecStatsStreams()       { globalManager.statsStreamsOpen.Dec() }
func RecordStatsStreamFrame() { globalManager.statsStreamFrames.Inc() }

// HTTP.

func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

func RecordHTTPRequestDuration(endpoint, method, statusCode string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(ms)
}

func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// System.

func UpdateSystemMemoryUsage(bytes uint64)   { globalManager.systemMemoryUsage.Set(float64(bytes)) }
func UpdateSystemGoroutineCount(count int)   { globalManager.systemGoroutineCount.Set(float64(count)) }
func RecordSystemGCPauseTime(pauseMs float64) { globalManager.systemGCPauseTime.Observe(pauseMs) }

// GetRegistry returns the registry served on /healthz.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
