// ABOUTME: Execution counters kept by the pool and their public snapshot
// ABOUTME: Counters are atomic so workers and producers never contend

package pool

import "sync/atomic"

// counters is the pool's internal tally, updated lock-free from workers
// and producers
type counters struct {
	submitted atomic.Uint64
	completed atomic.Uint64
	failed    atomic.Uint64
	rejected  atomic.Uint64
}

// Stats is a point-in-time snapshot of pool activity
type Stats struct {
	Workers   int
	Submitted uint64
	Completed uint64
	Failed    uint64
	Rejected  uint64
	Queued    int
}

// Stats returns a snapshot of the pool's counters and current queue depth.
// The snapshot is not atomic across fields; it is meant for progress
// reporting, not accounting
func (p *Pool) Stats() Stats {
	return Stats{
		Workers:   len(p.workers),
		Submitted: p.stats.submitted.Load(),
		Completed: p.stats.completed.Load(),
		Failed:    p.stats.failed.Load(),
		Rejected:  p.stats.rejected.Load(),
		Queued:    p.queue.len(),
	}
}

// Workers returns the fixed worker count chosen at construction
func (p *Pool) Workers() int {
	return len(p.workers)
}
