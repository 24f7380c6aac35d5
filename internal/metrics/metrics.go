// Package metrics collects batch processing counters for the command line
// tools and writes them as a Prometheus textfile for node_exporter.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recording results.
const (
	ResultOK     = "ok"
	ResultFailed = "failed"
)

// Event outcomes.
const (
	OutcomeAligned    = "aligned"
	OutcomeExcluded   = "excluded"
	OutcomeOutOfRange = "out_of_range"
)

// Recorder holds the metrics of one run on a private registry.
type Recorder struct {
	namespace string
	buckets   []float64
	registry  *prometheus.Registry

	recordings *prometheus.CounterVec
	events     *prometheus.CounterVec
	duration   prometheus.Histogram
}

// Option applies a configuration option to the Recorder.
type Option func(*Recorder)

// WithNamespace sets the namespace for all metrics.
func WithNamespace(namespace string) Option {
	return func(r *Recorder) {
		if namespace != "" {
			r.namespace = namespace
		}
	}
}

// WithHistogramBuckets sets custom buckets for the processing histogram.
func WithHistogramBuckets(buckets []float64) Option {
	return func(r *Recorder) {
		if len(buckets) > 0 {
			r.buckets = buckets
		}
	}
}

// NewRecorder creates a Recorder with its own registry.
func NewRecorder(opts ...Option) *Recorder {
	r := &Recorder{
		namespace: "fiberphotometry",
		buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		registry:  prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(r)
	}

	auto := promauto.With(r.registry)
	r.recordings = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace,
		Name:      "recordings_total",
		Help:      "Recordings processed, by result.",
	}, []string{"result"})

	r.events = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace,
		Name:      "events_total",
		Help:      "Behavioural events seen, by alignment outcome.",
	}, []string{"outcome"})

	r.duration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: r.namespace,
		Name:      "processing_seconds",
		Help:      "Wall time spent processing one recording.",
		Buckets:   r.buckets,
	})

	return r
}

// Recording counts one finished recording and its processing time.
func (r *Recorder) Recording(result string, elapsed time.Duration) {
	r.recordings.WithLabelValues(result).Inc()
	r.duration.Observe(elapsed.Seconds())
}

// Events adds n events with the given outcome.
func (r *Recorder) Events(outcome string, n int) {
	if n <= 0 {
		return
	}
	r.events.WithLabelValues(outcome).Add(float64(n))
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes all metrics to path in the text exposition format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("metrics: write %s: %w", path, err)
	}
	return nil
}
