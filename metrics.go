package hello

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the Prometheus collectors a pool updates when constructed
// with WithMetrics. All fields must be non-nil; use NewMetrics, or build the
// struct with unregistered collectors when a private registry is needed.
type Metrics struct {
	JobsSubmitted prometheus.Counter
	JobsCompleted prometheus.Counter
	JobPanics     prometheus.Counter
	ActiveWorkers prometheus.Gauge
	JobLatency    prometheus.Histogram
}

// NewMetrics creates the pool collectors and registers them on the default
// registerer.
func NewMetrics(namespace, subsystem string) *Metrics {
	m := &Metrics{
		JobsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "jobs_submitted_total",
			Help:      "Total number of jobs submitted to the pool",
		}),
		JobsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "jobs_completed_total",
			Help:      "Total number of jobs that ran to completion",
		}),
		JobPanics: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "job_panics_total",
			Help:      "Total number of jobs that panicked and took down their worker",
		}),
		ActiveWorkers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "active_workers",
			Help:      "Current number of live workers",
		}),
		JobLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "job_latency_seconds",
			Help:      "Histogram of job execution latency",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	prometheus.MustRegister(
		m.JobsSubmitted,
		m.JobsCompleted,
		m.JobPanics,
		m.ActiveWorkers,
		m.JobLatency,
	)
	return m
}
