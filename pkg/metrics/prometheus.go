// Package metrics provides Prometheus metrics for the event ranking service.
package metrics

import (
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 5 * time.Second
)

// Encoder states reported by the encoder state gauge.
const (
	EncoderUninitialized = 0
	EncoderAvailable     = 1
	EncoderUnavailable   = 2
)

// Manager manages all Prometheus metrics for the ranking service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Scoring
	requestsAnalyzed    *prometheus.CounterVec
	descriptionGrades   *prometheus.CounterVec
	successPredictions  *prometheus.CounterVec
	recommendations     prometheus.Counter
	popularityEstimates prometheus.Counter

	// Search
	searches         *prometheus.CounterVec
	searchLatency    prometheus.Histogram
	encoderState     prometheus.Gauge
	encoderFallbacks prometheus.Counter
	embeddingCache   *prometheus.CounterVec

	// Intake
	requestsDuplicate prometheus.Counter
	queueSize         prometheus.Gauge
	queueCapacity     prometheus.Gauge
	queueEnqueue      prometheus.Counter
	queueDequeue      prometheus.Counter
	queueEnqueueErrs  prometheus.Counter
	workerCount       prometheus.Gauge
	workerLatency     prometheus.Histogram
	workerErrors      prometheus.Counter

	// Store
	storeEvents   prometheus.Gauge
	storeRequests prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	errorsByComponent *prometheus.CounterVec
}

// Global metrics manager and the registry it exports to. Configure swaps
// both; Record* and Update* functions read the current manager.
var (
	globalManager  atomic.Pointer[Manager]             //nolint:gochecknoglobals // singleton metrics manager
	customRegistry atomic.Pointer[prometheus.Registry] //nolint:gochecknoglobals // registry served on /metrics
)

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	Configure()
}

// Configure replaces the global manager with one built from opts on a fresh
// registry. Call it at startup, before metrics are recorded concurrently.
func Configure(opts ...Option) {
	registry := prometheus.NewRegistry()
	m := NewManager(append([]Option{WithPrometheusRegistry(registry)}, opts...)...)
	customRegistry.Store(registry)
	globalManager.Store(m)
}

func current() *Manager {
	return globalManager.Load()
}

// Enabled reports whether the global manager exports its metrics.
func Enabled() bool {
	return current().enabled
}

// RefreshInterval is the period at which gauge updaters publish sizes.
func RefreshInterval() time.Duration {
	return current().refreshInterval
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "eventrank",
		subsystem:        "ranking",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) name(n string) string {
	return m.metricPrefix + n
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) histogramOpts(name, help string) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		Buckets:     m.histogramBuckets,
		ConstLabels: m.customLabels,
	}
}

// initializeMetrics creates all the Prometheus metrics. A disabled manager
// still creates them so recording stays safe, but registers none.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	var registry prometheus.Registerer
	if m.enabled {
		registry = m.registry
	}
	auto := promauto.With(registry)

	m.requestsAnalyzed = auto.NewCounterVec(
		m.counterOpts("requests_analyzed_total", "Total number of requests analyzed by detected category"),
		[]string{"category"},
	)
	m.descriptionGrades = auto.NewCounterVec(
		m.counterOpts("description_grades_total", "Total number of descriptions scored by grade"),
		[]string{"grade"},
	)
	m.successPredictions = auto.NewCounterVec(
		m.counterOpts("success_predictions_total", "Total number of success predictions by level"),
		[]string{"level"},
	)
	m.recommendations = auto.NewCounter(
		m.counterOpts("recommendations_served_total", "Total number of recommended events returned"),
	)
	m.popularityEstimates = auto.NewCounter(
		m.counterOpts("popularity_estimates_total", "Total number of popularity estimates"),
	)

	m.searches = auto.NewCounterVec(
		m.counterOpts("searches_total", "Total number of searches by match type"),
		[]string{"match_type"},
	)
	m.searchLatency = auto.NewHistogram(
		m.histogramOpts("search_latency_milliseconds", "Search latency in milliseconds"),
	)
	m.encoderState = auto.NewGauge(
		m.gaugeOpts("encoder_state", "Semantic encoder state (0 uninitialized, 1 available, 2 unavailable)"),
	)
	m.encoderFallbacks = auto.NewCounter(
		m.counterOpts("encoder_fallbacks_total", "Total number of searches that fell back to keyword matching"),
	)
	m.embeddingCache = auto.NewCounterVec(
		m.counterOpts("embedding_cache_lookups_total", "Embedding cache lookups by result"),
		[]string{"result"},
	)

	m.requestsDuplicate = auto.NewCounter(
		m.counterOpts("requests_duplicate_total", "Total number of duplicate request submissions"),
	)
	m.queueSize = auto.NewGauge(m.gaugeOpts("queue_size", "Current size of the request queue"))
	m.queueCapacity = auto.NewGauge(m.gaugeOpts("queue_capacity", "Maximum request queue capacity"))
	m.queueEnqueue = auto.NewCounter(m.counterOpts("queue_enqueue_total", "Total number of requests enqueued"))
	m.queueDequeue = auto.NewCounter(m.counterOpts("queue_dequeue_total", "Total number of requests dequeued"))
	m.queueEnqueueErrs = auto.NewCounter(m.counterOpts("queue_enqueue_errors_total", "Total number of enqueue errors"))
	m.workerCount = auto.NewGauge(m.gaugeOpts("worker_count", "Current number of request workers"))
	m.workerLatency = auto.NewHistogram(
		m.histogramOpts("worker_processing_latency_milliseconds", "Worker processing latency in milliseconds"),
	)
	m.workerErrors = auto.NewCounter(m.counterOpts("worker_errors_total", "Total number of worker errors"))

	m.storeEvents = auto.NewGauge(m.gaugeOpts("store_events", "Number of events in the snapshot store"))
	m.storeRequests = auto.NewGauge(m.gaugeOpts("store_requests", "Number of stored requests"))

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds"),
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorsByComponent = auto.NewCounterVec(
		m.counterOpts("errors_by_component_total", "Total number of errors by component"),
		[]string{"component", "error_type"},
	)
}

// RecordRequestAnalyzed counts an analyzed request.
func RecordRequestAnalyzed(category string) {
	current().requestsAnalyzed.WithLabelValues(category).Inc()
}

// RecordDescriptionGrade counts a scored description.
func RecordDescriptionGrade(grade string) {
	current().descriptionGrades.WithLabelValues(grade).Inc()
}

// RecordSuccessPrediction counts a success prediction.
func RecordSuccessPrediction(level string) {
	current().successPredictions.WithLabelValues(level).Inc()
}

// RecordRecommendations adds served recommendations.
func RecordRecommendations(n int) {
	current().recommendations.Add(float64(n))
}

// RecordPopularityEstimate counts a popularity estimate.
func RecordPopularityEstimate() {
	current().popularityEstimates.Inc()
}

// RecordSearch counts a search and observes its latency.
func RecordSearch(matchType string, latencyMs float64) {
	current().searches.WithLabelValues(matchType).Inc()
	current().searchLatency.Observe(latencyMs)
}

// UpdateEncoderState sets the encoder state gauge.
func UpdateEncoderState(state int) {
	current().encoderState.Set(float64(state))
}

// RecordEncoderFallback counts a search that fell back to keyword matching.
func RecordEncoderFallback() {
	current().encoderFallbacks.Inc()
}

// RecordEmbeddingCache counts a cache lookup; result is hit, miss or error.
func RecordEmbeddingCache(result string) {
	current().embeddingCache.WithLabelValues(result).Inc()
}

// RecordRequestDuplicate counts a duplicate request submission.
func RecordRequestDuplicate() {
	current().requestsDuplicate.Inc()
}

// UpdateQueueSize sets the current queue size.
func UpdateQueueSize(size int) {
	current().queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the maximum queue capacity.
func UpdateQueueCapacity(capacity int) {
	current().queueCapacity.Set(float64(capacity))
}

// RecordQueueEnqueue increments the enqueue counter.
func RecordQueueEnqueue() {
	current().queueEnqueue.Inc()
}

// RecordQueueDequeue increments the dequeue counter.
func RecordQueueDequeue() {
	current().queueDequeue.Inc()
}

// RecordQueueEnqueueError increments the enqueue error counter.
func RecordQueueEnqueueError() {
	current().queueEnqueueErrs.Inc()
}

// UpdateWorkerCount sets the current worker count.
func UpdateWorkerCount(count int) {
	current().workerCount.Set(float64(count))
}

// RecordWorkerProcessingLatency records worker processing latency.
func RecordWorkerProcessingLatency(latencyMs float64) {
	current().workerLatency.Observe(latencyMs)
}

// RecordWorkerError increments the worker error counter.
func RecordWorkerError() {
	current().workerErrors.Inc()
}

// UpdateStoreSize sets the store gauges.
func UpdateStoreSize(events, requests int) {
	current().storeEvents.Set(float64(events))
	current().storeRequests.Set(float64(requests))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	current().httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	current().httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	current().errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry.Load()
}
