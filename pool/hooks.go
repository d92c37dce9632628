// ABOUTME: Optional observability callbacks surfaced by pool workers
// ABOUTME: Advisory only, never affects scheduling or shutdown correctness

package pool

import "time"

// Hooks carries optional callbacks fired from worker goroutines as jobs move
// through the pool. Any field may be nil. Callbacks run inline on the worker,
// so they must be fast and must not block
type Hooks struct {
	WorkerStarted func(worker int)
	JobStarted    func(worker int, job string)
	JobFinished   func(worker int, job string, took time.Duration, err error)
	WorkerStopped func(worker int)
}

func (h Hooks) workerStarted(worker int) {
	if h.WorkerStarted != nil {
		h.WorkerStarted(worker)
	}
}

func (h Hooks) jobStarted(worker int, job string) {
	if h.JobStarted != nil {
		h.JobStarted(worker, job)
	}
}

func (h Hooks) jobFinished(worker int, job string, took time.Duration, err error) {
	if h.JobFinished != nil {
		h.JobFinished(worker, job, took, err)
	}
}

func (h Hooks) workerStopped(worker int) {
	if h.WorkerStopped != nil {
		h.WorkerStopped(worker)
	}
}
