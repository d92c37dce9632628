// ABOUTME: Fixed-size worker pool distributing jobs through one shared queue
// ABOUTME: Each job runs exactly once; shutdown drains then joins all workers

package pool

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Job is a single, owned, one-shot unit of work. It takes no arguments,
// runs to completion once, and reports failure through its error return.
// Anything it captures must be owned or internally synchronized
type Job func() error

var (
	// ErrInvalidWorkers is returned by New when the worker count is below 1
	ErrInvalidWorkers = errors.New("worker count must be at least 1")

	// ErrPoolClosed is returned by Submit once shutdown has begun
	ErrPoolClosed = errors.New("pool is shut down")

	// ErrNilJob is returned by Submit for a nil job
	ErrNilJob = errors.New("job must not be nil")
)

// Pool owns a fixed set of workers and the producer side of the shared
// queue. The worker count is immutable after construction
type Pool struct {
	queue    *queue
	hooks    Hooks
	stats    counters
	workers  []*worker
	wg       sync.WaitGroup // tracks worker goroutine lifetime
	shutdown sync.Once
}

// New creates a pool with exactly workers workers contending on one shared
// queue. It fails without spawning anything when workers < 1
func New(workers int, opts ...Option) (*Pool, error) {
	if workers < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWorkers, workers)
	}

	p := &Pool{
		queue: newQueue(),
	}

	for _, opt := range opts {
		opt(p)
	}

	p.workers = make([]*worker, workers)
	for i := range workers {
		w := &worker{id: i + 1, pool: p}
		p.workers[i] = w

		p.wg.Add(1)
		go w.run()
	}

	return p, nil
}

// Submit enqueues a job for execution by exactly one worker. It may wait
// only on the queue lock, never on job execution. After Shutdown has begun
// it fails with ErrPoolClosed and the job will never run
func (p *Pool) Submit(fn Job) error {
	if fn == nil {
		return ErrNilJob
	}

	t := task{id: uuid.NewString(), fn: fn}
	if err := p.queue.push(t); err != nil {
		p.stats.rejected.Add(1)

		return err
	}

	p.stats.submitted.Add(1)

	return nil
}

// Shutdown closes submission, lets the workers drain every queued job, and
// blocks until all of them have terminated. It is safe to call from any
// goroutine and more than once; every call waits for the same completion
func (p *Pool) Shutdown() {
	p.shutdown.Do(p.queue.close)
	p.wg.Wait()
}
