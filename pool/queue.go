// ABOUTME: Unbounded FIFO job queue shared between producers and workers
// ABOUTME: Mutex+condvar hand-off delivering each item to exactly one worker

package pool

import "sync"

// task pairs a submitted job with the id it was assigned at submit time
type task struct {
	id string
	fn Job
}

// queue is the single hand-off point between the pool and its workers.
// Producers append under the lock; workers contend for the head. A closed
// queue still drains its remaining items before pop reports closure.
type queue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	items  []task
	closed bool
}

func newQueue() *queue {
	q := &queue{}
	q.cond = sync.NewCond(&q.mu)

	return q
}

// push appends a task in submission order
// Fails with ErrPoolClosed once close has been called
func (q *queue) push(t task) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrPoolClosed
	}

	q.items = append(q.items, t)
	q.cond.Signal()

	return nil
}

// pop blocks until a task is available or the queue is closed and drained
// The second return value is false only in the closed-and-drained state
func (q *queue) pop() (task, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.items) == 0 && !q.closed {
		q.cond.Wait()
	}

	if len(q.items) == 0 {
		return task{}, false
	}

	t := q.items[0]
	q.items = q.items[1:]

	return t, true
}

// close marks the queue closed and wakes every blocked pop
// Closing is relevant to all waiters, so Broadcast rather than Signal
func (q *queue) close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.closed = true
	q.cond.Broadcast()
}

func (q *queue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.items)
}
