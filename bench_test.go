package hello

import (
	"fmt"
	"sync"
	"testing"
)

func noopJob() {}

func BenchmarkNewThreadPool(b *testing.B) {
	for i := 0; i < b.N; i++ {
		NewThreadPool(4).Close()
	}
}

func BenchmarkExecute(b *testing.B) {
	subject := NewThreadPool(1)

	// Park the only worker so the benchmark measures enqueue cost alone.
	release := make(chan struct{})
	subject.Execute(func() { <-release })

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		subject.Execute(noopJob)
	}
	b.StopTimer()

	close(release)
	subject.Close()
}

func BenchmarkDrain(b *testing.B) {
	q := newJobQueue()
	for i := 0; i < b.N; i++ {
		q.push(noopJob)
	}
	q.close()

	b.ResetTimer()
	for {
		job, ok := q.pop()
		if !ok {
			break
		}
		job()
	}
}

type FullFlowBenchmarkCase struct {
	workers    int
	submitters int
}

func (bc FullFlowBenchmarkCase) Name() string {
	return fmt.Sprintf("w%d_s%d", bc.workers, bc.submitters)
}

func (bc FullFlowBenchmarkCase) Run(b *testing.B) {
	subject := NewThreadPool(bc.workers)

	start := make(chan struct{})

	wg := sync.WaitGroup{}
	wg.Add(bc.submitters)
	for i := 0; i < bc.submitters; i++ {
		go func() {
			defer wg.Done()
			<-start
			for i := 0; i < b.N; i++ {
				subject.Execute(noopJob)
			}
		}()
	}
	close(start)

	wg.Wait()
	subject.Close()
}

func BenchmarkFullFlow(b *testing.B) {
	tests := []FullFlowBenchmarkCase{
		{workers: 4, submitters: 4},
		{workers: 4, submitters: 16},
		{workers: 8, submitters: 16},
		{workers: 8, submitters: 32},
	}

	for idx, bc := range tests {
		b.Run(fmt.Sprintf("%d_%s", idx, bc.Name()), bc.Run)
	}
}
