// ABOUTME: Worker goroutine looping on the shared queue until closure
// ABOUTME: Runs one job at a time and survives job errors and panics

package pool

import (
	"fmt"
	"time"
)

// worker is one persistent execution context with a stable identity.
// It processes jobs strictly sequentially and never runs two concurrently
type worker struct {
	id   int
	pool *Pool
}

// run is the worker loop: dequeue, execute, repeat until the queue reports
// closed-and-drained. Started as a goroutine during pool construction
func (w *worker) run() {
	defer w.pool.wg.Done()

	w.pool.hooks.workerStarted(w.id)

	for {
		t, ok := w.pool.queue.pop()
		if !ok {
			break
		}

		w.execute(t)
	}

	w.pool.hooks.workerStopped(w.id)
}

func (w *worker) execute(t task) {
	w.pool.hooks.jobStarted(w.id, t.id)

	start := time.Now()
	err := runJob(t.fn)
	took := time.Since(start)

	if err != nil {
		w.pool.stats.failed.Add(1)
	} else {
		w.pool.stats.completed.Add(1)
	}

	w.pool.hooks.jobFinished(w.id, t.id, took, err)
}

// runJob invokes the job body, converting a panic into an ordinary error so
// a misbehaving job is confined to this invocation and the loop continues
func runJob(fn Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job panicked: %v", r)
		}
	}()

	return fn()
}
