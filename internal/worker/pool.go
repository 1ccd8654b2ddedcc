// Package worker provides a bounded worker pool for fanning independent
// simulation jobs across goroutines.
package worker

import (
	"context"
	"sync"
)

// Job is an independent unit of simulation work.
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is the output of one job.
type Result interface {
	GetError() error
}

// Pool fans a fixed job set across a bounded set of workers. Results come
// back in completion order; callers that need determinism re-order them by
// their own keys afterward.
type Pool struct {
	workers int
}

// NewPool creates a pool with the given worker count (minimum 1).
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{workers: workers}
}

// Run executes every job and returns all results. It blocks until each job
// has finished or the context is cancelled; on cancellation the jobs not
// yet started are skipped.
func (p *Pool) Run(ctx context.Context, jobs []Job) []Result {
	if len(jobs) == 0 {
		return nil
	}

	queue := make(chan Job)
	results := make(chan Result, len(jobs))

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range queue {
				select {
				case <-ctx.Done():
					return
				default:
				}
				results <- job.Execute(ctx)
			}
		}()
	}

	go func() {
		defer close(queue)
		for _, job := range jobs {
			select {
			case <-ctx.Done():
				return
			case queue <- job:
			}
		}
	}()

	wg.Wait()
	close(results)

	collected := make([]Result, 0, len(jobs))
	for r := range results {
		collected = append(collected, r)
	}
	return collected
}
