// Package metrics provides Prometheus metrics for the squadcraft service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every squadcraft metric.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Engine
	compositions        *prometheus.CounterVec
	compositionWarnings *prometheus.CounterVec
	selectionLatency    *prometheus.HistogramVec
	ratingChanges       *prometheus.CounterVec
	ratingExcluded      prometheus.Counter
	ratingConflicts     prometheus.Counter
	rosterPlayers       prometheus.Gauge

	// Rating job queue
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueUtilization   prometheus.Gauge
	queueEnqueued      prometheus.Counter
	queueDequeued      prometheus.Counter
	queueEnqueueErrors *prometheus.CounterVec

	// Workers
	workerCount             prometheus.Gauge
	workerActive            prometheus.Gauge
	workerProcessingLatency prometheus.Histogram
	workerErrors            prometheus.Counter
	jobsProcessed           prometheus.Counter
	jobsDuplicate           prometheus.Counter

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByEndpoint    *prometheus.CounterVec
	errorsByComponent   *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var globalManager *Manager //nolint:gochecknoglobals // singleton used by the Record helpers

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // registry served at /healthz

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its metrics.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "squadcraft",
		subsystem:        "engine",
		histogramBuckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) opts(name, help string) prometheus.Opts {
	return prometheus.Opts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) histogram(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
		Buckets:     buckets,
	}
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every metric
	auto := promauto.With(m.registry)

	m.compositions = auto.NewCounterVec(prometheus.CounterOpts(m.opts("compositions_total",
		"Team compositions produced by operation and source")), []string{"operation", "source"})
	m.compositionWarnings = auto.NewCounterVec(prometheus.CounterOpts(m.opts("composition_warnings_total",
		"Non-fatal warnings attached to compositions")), []string{"operation"})
	m.selectionLatency = auto.NewHistogramVec(m.histogram("selection_latency_milliseconds",
		"Time to compute a composition or split", m.histogramBuckets), []string{"operation"})
	m.ratingChanges = auto.NewCounterVec(prometheus.CounterOpts(m.opts("rating_changes_total",
		"Applied rating changes by discipline and direction")), []string{"discipline", "direction"})
	m.ratingExcluded = auto.NewCounter(prometheus.CounterOpts(m.opts("rating_excluded_total",
		"Players skipped because they are excluded from auto rating")))
	m.ratingConflicts = auto.NewCounter(prometheus.CounterOpts(m.opts("rating_conflicts_total",
		"Rating changes rejected because the stored rating moved")))
	m.rosterPlayers = auto.NewGauge(prometheus.GaugeOpts(m.opts("roster_players",
		"Players in the roster store")))

	m.queueSize = auto.NewGauge(prometheus.GaugeOpts(m.opts("queue_size",
		"Rating jobs waiting in the queue")))
	m.queueCapacity = auto.NewGauge(prometheus.GaugeOpts(m.opts("queue_capacity",
		"Rating job queue capacity")))
	m.queueUtilization = auto.NewGauge(prometheus.GaugeOpts(m.opts("queue_utilization_ratio",
		"Rating job queue size divided by capacity")))
	m.queueEnqueued = auto.NewCounter(prometheus.CounterOpts(m.opts("queue_enqueued_total",
		"Rating jobs enqueued")))
	m.queueDequeued = auto.NewCounter(prometheus.CounterOpts(m.opts("queue_dequeued_total",
		"Rating jobs handed to workers")))
	m.queueEnqueueErrors = auto.NewCounterVec(prometheus.CounterOpts(m.opts("queue_enqueue_errors_total",
		"Rating jobs refused by the queue")), []string{"reason"})

	m.workerCount = auto.NewGauge(prometheus.GaugeOpts(m.opts("worker_count",
		"Configured rating workers")))
	m.workerActive = auto.NewGauge(prometheus.GaugeOpts(m.opts("worker_active",
		"Rating workers currently processing a job")))
	m.workerProcessingLatency = auto.NewHistogram(m.histogram("worker_processing_latency_milliseconds",
		"Time to process one rating job", m.histogramBuckets))
	m.workerErrors = auto.NewCounter(prometheus.CounterOpts(m.opts("worker_errors_total",
		"Rating jobs that failed")))
	m.jobsProcessed = auto.NewCounter(prometheus.CounterOpts(m.opts("jobs_processed_total",
		"Rating jobs processed successfully")))
	m.jobsDuplicate = auto.NewCounter(prometheus.CounterOpts(m.opts("jobs_duplicate_total",
		"Rating jobs dropped as duplicates")))

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts(m.opts("http_requests_total",
		"HTTP requests by endpoint, method and status")), []string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(m.histogram("http_request_duration_milliseconds",
		"HTTP request duration", m.histogramBuckets), []string{"endpoint", "method", "status_code"})
	m.errorsByEndpoint = auto.NewCounterVec(prometheus.CounterOpts(m.opts("errors_by_endpoint_total",
		"HTTP errors by endpoint and kind")), []string{"endpoint", "method", "error_type"})
	m.errorsByComponent = auto.NewCounterVec(prometheus.CounterOpts(m.opts("errors_by_component_total",
		"Errors by component and kind")), []string{"component", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts(m.opts("system_memory_usage_bytes",
		"Heap bytes in use")))
	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts(m.opts("system_goroutine_count",
		"Number of goroutines")))
	m.systemGCPauseTime = auto.NewHistogram(m.histogram("system_gc_pause_time_milliseconds",
		"Most recent GC pause", []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}))
}

// RecordComposition counts one composition and its warnings.
func RecordComposition(operation, source string, warnings int) {
	globalManager.compositions.WithLabelValues(operation, source).Inc()
	if warnings > 0 {
		globalManager.compositionWarnings.WithLabelValues(operation).Add(float64(warnings))
	}
}

// RecordSelectionLatency records how long an operation took in milliseconds.
func RecordSelectionLatency(operation string, latencyMs float64) {
	globalManager.selectionLatency.WithLabelValues(operation).Observe(latencyMs)
}

// RecordRatingChange counts one applied change.
func RecordRatingChange(discipline string, delta int) {
	direction := "up"
	if delta < 0 {
		direction = "down"
	}
	globalManager.ratingChanges.WithLabelValues(discipline, direction).Inc()
}

// RecordRatingExcluded counts a player skipped by auto rating.
func RecordRatingExcluded() { globalManager.ratingExcluded.Inc() }

// RecordRatingConflict counts a change rejected as stale.
func RecordRatingConflict() { globalManager.ratingConflicts.Inc() }

// UpdateRosterPlayers sets the roster size.
func UpdateRosterPlayers(count int) { globalManager.rosterPlayers.Set(float64(count)) }

// UpdateQueue sets queue size, capacity and utilization.
func UpdateQueue(size, capacity int) {
	globalManager.queueSize.Set(float64(size))
	globalManager.queueCapacity.Set(float64(capacity))
	if capacity > 0 {
		globalManager.queueUtilization.Set(float64(size) / float64(capacity))
	}
}

// RecordQueueEnqueue counts an accepted job.
func RecordQueueEnqueue() { globalManager.queueEnqueued.Inc() }

// RecordQueueDequeue counts a job handed to a worker.
func RecordQueueDequeue() { globalManager.queueDequeued.Inc() }

// RecordQueueEnqueueError counts a refused job.
func RecordQueueEnqueueError(reason string) {
	globalManager.queueEnqueueErrors.WithLabelValues(reason).Inc()
}

// UpdateWorkerCount sets the configured worker count.
func UpdateWorkerCount(count int) { globalManager.workerCount.Set(float64(count)) }

// AddWorkerActive moves the active worker gauge by delta.
func AddWorkerActive(delta int) { globalManager.workerActive.Add(float64(delta)) }

// RecordWorkerProcessingLatency records one job's processing time in milliseconds.
func RecordWorkerProcessingLatency(latencyMs float64) {
	globalManager.workerProcessingLatency.Observe(latencyMs)
}

// RecordWorkerError counts a failed job.
func RecordWorkerError() { globalManager.workerErrors.Inc() }

// RecordJobProcessed counts a successful job.
func RecordJobProcessed() { globalManager.jobsProcessed.Inc() }

// RecordJobDuplicate counts a job dropped as a duplicate.
func RecordJobDuplicate() { globalManager.jobsDuplicate.Inc() }

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByEndpoint counts an HTTP error.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorByComponent counts an error raised inside a component.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// UpdateSystemMemoryUsage sets heap bytes in use.
func UpdateSystemMemoryUsage(bytes uint64) { globalManager.systemMemoryUsage.Set(float64(bytes)) }

// UpdateSystemGoroutineCount sets the goroutine count.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records a GC pause in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) { globalManager.systemGCPauseTime.Observe(pauseMs) }

// GetRegistry returns the registry every global metric is registered on.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
