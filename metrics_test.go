package hello

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

// newTestMetrics builds unregistered collectors so tests don't collide on the
// default registry.
func newTestMetrics() *Metrics {
	return &Metrics{
		JobsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{Name: "jobs_submitted_total"}),
		JobsCompleted: prometheus.NewCounter(prometheus.CounterOpts{Name: "jobs_completed_total"}),
		JobPanics:     prometheus.NewCounter(prometheus.CounterOpts{Name: "job_panics_total"}),
		ActiveWorkers: prometheus.NewGauge(prometheus.GaugeOpts{Name: "active_workers"}),
		JobLatency:    prometheus.NewHistogram(prometheus.HistogramOpts{Name: "job_latency_seconds"}),
	}
}

func TestMetrics(t *testing.T) {
	t.Run("counts submitted and completed jobs", func(t *testing.T) {
		m := newTestMetrics()
		subject := NewThreadPool(3, WithMetrics(m))

		for i := 0; i < 7; i++ {
			subject.Execute(func() {})
		}
		subject.Close()

		require.Equal(t, float64(7), testutil.ToFloat64(m.JobsSubmitted))
		require.Equal(t, float64(7), testutil.ToFloat64(m.JobsCompleted))
		require.Equal(t, float64(0), testutil.ToFloat64(m.ActiveWorkers))
	})

	t.Run("counts job panics", func(t *testing.T) {
		m := newTestMetrics()
		subject := NewThreadPool(2, WithMetrics(m))

		subject.Execute(func() { panic("boom") })
		subject.Close()

		require.Equal(t, float64(1), testutil.ToFloat64(m.JobPanics))
		require.Equal(t, float64(0), testutil.ToFloat64(m.ActiveWorkers))
	})

	t.Run("nil metrics leaves instrumentation off", func(t *testing.T) {
		subject := NewThreadPool(2, WithMetrics(nil))
		subject.Execute(func() {})
		subject.Close()
	})
}
