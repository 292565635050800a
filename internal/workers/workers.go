package workers

import (
	"context"
	"sync"
)

// Workers aggregates background jobs under one lifecycle.
type Workers struct {
	workers []Worker
}

// NewWorkers builds an aggregate over the given jobs. Order is preserved
// but carries no semantics; jobs run concurrently.
func NewWorkers(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

// Run starts every worker in its own goroutine and blocks until all of them
// return after ctx is cancelled.
func (w *Workers) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, worker := range w.workers {
		wg.Add(1)
		go func(worker Worker) {
			defer wg.Done()
			worker.Run(ctx)
		}(worker)
	}
	wg.Wait()
}
