package hello

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Job is a one-shot unit of work: no arguments, no return value, run at most
// once on one of the pool's workers.
type Job func()

type config struct {
	logger  *slog.Logger
	metrics *Metrics
}

func defaultConfig() config {
	return config{
		logger: slog.New(disabledSlogHandler{}),
	}
}

func WithLogger(l *slog.Logger) func(*config) {
	return func(c *config) { c.logger = l }
}

// WithMetrics attaches Prometheus collectors to the pool. A nil Metrics
// leaves instrumentation off.
func WithMetrics(m *Metrics) func(*config) {
	return func(c *config) { c.metrics = m }
}

// ThreadPool runs submitted jobs on a fixed set of long-lived workers. Jobs
// are delivered to exactly one worker each, in FIFO submission order; jobs on
// different workers run concurrently. The pool never cancels, reprioritizes,
// or reports back on a job.
type ThreadPool struct {
	logger  *slog.Logger
	metrics *Metrics
	queue   *jobQueue
	workers []*worker
	once    sync.Once
}

// worker pairs a stable identifier with the channel its goroutine closes on
// exit, so Close can join each worker exactly once.
type worker struct {
	id   int
	done chan struct{}
}

// NewThreadPool creates a pool of size workers, ids 1 through size, each
// immediately blocked waiting for work. A size below 1 is a programmer error
// and panics; an empty pool must never be constructed silently. No jobs run
// during construction.
func NewThreadPool(size int, opts ...func(*config)) *ThreadPool {
	if size < 1 {
		panic(fmt.Sprintf("hello: thread pool size must be at least 1, got %d", size))
	}

	c := defaultConfig()
	for _, o := range opts {
		o(&c)
	}

	p := &ThreadPool{
		logger:  c.logger,
		metrics: c.metrics,
		queue:   newJobQueue(),
		workers: make([]*worker, 0, size),
	}

	if p.metrics != nil {
		p.metrics.ActiveWorkers.Add(float64(size))
	}

	for id := 1; id <= size; id++ {
		w := &worker{id: id, done: make(chan struct{})}
		p.workers = append(p.workers, w)
		go p.run(w)
	}

	p.logger.Info("thread pool started", slog.Int("workers_count", size))

	return p
}

// Size returns the number of workers the pool was constructed with.
func (p *ThreadPool) Size() int {
	return len(p.workers)
}

// Execute submits job for execution by exactly one worker and returns
// immediately; it never blocks and never waits for the job to start or
// finish. Calling Execute after Close panics.
func (p *ThreadPool) Execute(job Job) {
	p.queue.push(job)

	if p.metrics != nil {
		p.metrics.JobsSubmitted.Inc()
	}
}

func (p *ThreadPool) run(w *worker) {
	defer close(w.done)
	defer func() {
		if p.metrics != nil {
			p.metrics.ActiveWorkers.Dec()
		}
	}()
	defer func() {
		if r := recover(); r != nil {
			// A panicking job takes down its own worker, not the process.
			// The worker is not replaced, so pool capacity silently shrinks
			// by one until the pool is closed.
			p.logger.Error("worker terminated by job panic",
				slog.Int("worker_id", w.id), slog.Any("panic", r))
			if p.metrics != nil {
				p.metrics.JobPanics.Inc()
			}
		}
	}()

	for {
		job, ok := p.queue.pop()
		if !ok { // queue closed and drained
			p.logger.Debug("work queue closed", slog.Int("worker_id", w.id))
			return
		}

		p.logger.Debug("worker got a job", slog.Int("worker_id", w.id))
		p.runJob(job)
	}
}

func (p *ThreadPool) runJob(job Job) {
	if p.metrics == nil {
		job()
		return
	}

	start := time.Now()
	job()
	p.metrics.JobLatency.Observe(time.Since(start).Seconds())
	p.metrics.JobsCompleted.Inc()
}

// Close shuts the pool down gracefully: it seals the queue so no further
// jobs can be submitted, then joins the workers in ascending id order. Every
// job enqueued before Close still runs to completion before Close returns,
// and after it returns no worker goroutine is left running. There is no
// forced termination; Close always waits for in-flight work. Safe to call
// more than once and from multiple goroutines.
func (p *ThreadPool) Close() {
	p.once.Do(p.close)
}

func (p *ThreadPool) close() {
	p.logger.Info("thread pool shutting down")
	p.queue.close() // stop accepting; workers drain what is left.

	for _, w := range p.workers {
		<-w.done
		p.logger.Info("worker stopped", slog.Int("worker_id", w.id))
	}

	p.logger.Info("thread pool shutdown completed")
}
