package hello

import "sync"

// jobQueue is the work channel between Execute and the workers: an unbounded
// FIFO whose single consumer end is shared by every worker. push never blocks;
// pop blocks until a job arrives or the queue has been closed and drained.
// The mutex arbitrates exactly one dequeue at a time and is never held while
// a job runs.
type jobQueue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	jobs   []Job
	closed bool
}

func newJobQueue() *jobQueue {
	q := &jobQueue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// push enqueues job for exactly one worker. It is called only from Execute;
// pushing after close is the submit-after-shutdown logic error and fails
// loudly, like a send on a closed channel.
func (q *jobQueue) push(job Job) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		panic("hello: Execute called after Close")
	}

	q.jobs = append(q.jobs, job)
	q.cond.Signal()
}

// pop returns the next job in FIFO order, blocking while the queue is empty
// and still open. Jobs enqueued before close are still delivered; only once
// the queue is both closed and empty does pop report false, the workers'
// signal to stop.
func (q *jobQueue) pop() (Job, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.jobs) == 0 && !q.closed {
		q.cond.Wait()
	}

	if len(q.jobs) == 0 {
		return nil, false
	}

	job := q.jobs[0]
	q.jobs[0] = nil // release the closure
	q.jobs = q.jobs[1:]
	return job, true
}

// close seals the producer side and wakes every blocked pop so drained
// workers can observe closure.
func (q *jobQueue) close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.closed = true
	q.cond.Broadcast()
}

func (q *jobQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.jobs)
}
