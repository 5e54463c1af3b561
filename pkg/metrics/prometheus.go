// Package metrics provides Prometheus metrics for the device profiler.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the profiler.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Classification
	performanceScore  prometheus.Gauge
	performanceRating *prometheus.GaugeVec
	classifications   *prometheus.CounterVec

	// Host probing
	probeErrors   *prometheus.CounterVec
	probeDuration prometheus.Histogram

	// Reporting
	summariesRendered prometheus.Counter
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "devprobe",
		subsystem:        "profiler",
		histogramBuckets: []float64{0.1, 0.5, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
		enabled:          true,
		customLabels:     make(map[string]string),
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
	constLabels := prometheus.Labels(m.customLabels)

	m.performanceScore = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "performance_score",
		Help:        "Latest performance score assigned to this device",
		ConstLabels: constLabels,
	})

	m.performanceRating = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "performance_rating",
		Help:        "Latest performance rating; the current rating is 1, others are absent",
		ConstLabels: constLabels,
	}, []string{"rating"})

	m.classifications = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "classifications_total",
		Help:        "Total number of performance classifications by platform",
		ConstLabels: constLabels,
	}, []string{"platform"})

	m.probeErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "probe_errors_total",
		Help:        "Host probe failures replaced by fallback values, by source",
		ConstLabels: constLabels,
	}, []string{"source"})

	m.probeDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "probe_duration_milliseconds",
		Help:        "Time taken to sample host attributes in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: constLabels,
	})

	m.summariesRendered = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "summaries_rendered_total",
		Help:        "Total number of diagnostic summaries rendered",
		ConstLabels: constLabels,
	})
}

// RecordClassification stores the latest score and rating.
func (m *Manager) RecordClassification(platform string, score int, rating string) {
	if !m.enabled {
		return
	}
	m.performanceScore.Set(float64(score))
	m.performanceRating.Reset()
	m.performanceRating.WithLabelValues(rating).Set(1)
	m.classifications.WithLabelValues(platform).Inc()
}

// RecordProbeError counts a failed host probe.
func (m *Manager) RecordProbeError(source string) {
	if !m.enabled {
		return
	}
	m.probeErrors.WithLabelValues(source).Inc()
}

// RecordProbeDuration observes the duration of a host snapshot.
func (m *Manager) RecordProbeDuration(durationMs float64) {
	if !m.enabled {
		return
	}
	m.probeDuration.Observe(durationMs)
}

// RecordSummaryRendered counts a rendered summary.
func (m *Manager) RecordSummaryRendered() {
	if !m.enabled {
		return
	}
	m.summariesRendered.Inc()
}

// RecordClassification stores the latest score and rating on the global manager.
func RecordClassification(platform string, score int, rating string) {
	globalManager.RecordClassification(platform, score, rating)
}

// RecordProbeError counts a failed host probe on the global manager.
func RecordProbeError(source string) {
	globalManager.RecordProbeError(source)
}

// RecordProbeDuration observes a host snapshot duration on the global manager.
func RecordProbeDuration(durationMs float64) {
	globalManager.RecordProbeDuration(durationMs)
}

// RecordSummaryRendered counts a rendered summary on the global manager.
func RecordSummaryRendered() {
	globalManager.RecordSummaryRendered()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// WriteTextfile writes the global registry in the text exposition format,
// suitable for the node_exporter textfile collector.
func WriteTextfile(path string) error {
	return writeTextfile(path, customRegistry)
}

func writeTextfile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrExportFailed, path, err)
	}
	return nil
}
