// ABOUTME: Thread-safe result collector shared by all jobs in a batch
// ABOUTME: The caller-owned channel for smuggling outcomes out of the pool

package workload

import (
	"sync"
	"time"
)

// Entry is one job's recorded outcome
type Entry struct {
	Job    string        // display name
	Detail string        // workload-specific result, empty for plain success
	Took   time.Duration
	Err    error
}

// Collector accumulates job outcomes in arrival order. Jobs run on worker
// goroutines, so all access is mutex-guarded; the pool knows nothing of it
type Collector struct {
	mu      sync.Mutex
	entries []Entry
}

func NewCollector() *Collector {
	return &Collector{}
}

// Record appends one outcome
func (c *Collector) Record(e Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = append(c.entries, e)
}

// Entries returns a copy of everything recorded so far
func (c *Collector) Entries() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Entry, len(c.entries))
	copy(out, c.entries)

	return out
}

// Counts returns how many recorded entries succeeded and failed
func (c *Collector) Counts() (completed, failed int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, e := range c.entries {
		if e.Err != nil {
			failed++
		} else {
			completed++
		}
	}

	return completed, failed
}
