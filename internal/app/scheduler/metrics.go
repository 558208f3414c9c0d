package scheduler

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rroosshhaann/whisper-diarization/internal/app/model"
)

const metricsNamespace = "diarization"

// Metrics records scheduler activity as Prometheus collectors
type Metrics struct {
	submitted     prometheus.Counter
	finished      *prometheus.CounterVec
	skipped       prometheus.Counter
	collected     prometheus.Counter
	stageDuration *prometheus.HistogramVec
	jobDuration   prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg (nil skips registration)
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		submitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "jobs_submitted_total",
			Help:      "Jobs accepted into the queue.",
		}),
		finished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "jobs_finished_total",
			Help:      "Jobs that reached a terminal status.",
		}, []string{"status"}),
		skipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "jobs_skipped_total",
			Help:      "Dequeued ids whose job had been deleted while waiting.",
		}),
		collected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "jobs_expired_total",
			Help:      "Terminal jobs removed by garbage collection.",
		}),
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "stage_duration_seconds",
			Help:      "Wall time spent in each pipeline stage.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 14),
		}, []string{"stage"}),
		jobDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "job_duration_seconds",
			Help:      "Wall time from Processing to a terminal status.",
			Buckets:   prometheus.ExponentialBuckets(0.5, 2, 14),
		}),
	}

	if reg != nil {
		reg.MustRegister(m.submitted, m.finished, m.skipped, m.collected, m.stageDuration, m.jobDuration)
	}
	return m
}

// RegisterGauges exposes live queued/processing counts read from the registry
func (m *Metrics) RegisterGauges(reg prometheus.Registerer, registry *Registry) {
	if reg == nil {
		return
	}
	reg.MustRegister(
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "jobs_queued",
			Help:      "Jobs currently waiting in the queue.",
		}, func() float64 {
			return float64(registry.Count(hasStatus(model.JobStatusQueued)))
		}),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "jobs_processing",
			Help:      "Jobs currently running through the pipeline (0 or 1).",
		}, func() float64 {
			return float64(registry.Count(hasStatus(model.JobStatusProcessing)))
		}),
	)
}

func (m *Metrics) jobSubmitted() {
	if m == nil {
		return
	}
	m.submitted.Inc()
}

func (m *Metrics) jobFinished(status model.JobStatus, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.finished.WithLabelValues(string(status)).Inc()
	m.jobDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) jobSkipped() {
	if m == nil {
		return
	}
	m.skipped.Inc()
}

func (m *Metrics) jobsCollected(n int) {
	if m == nil || n == 0 {
		return
	}
	m.collected.Add(float64(n))
}

func (m *Metrics) stageFinished(stage model.Stage, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.stageDuration.WithLabelValues(string(stage)).Observe(elapsed.Seconds())
}
