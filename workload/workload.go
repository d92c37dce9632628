// ABOUTME: Workload plans that turn config into batches of pool jobs
// ABOUTME: Dispatches to the sleep, hash and scan job factories

// Package workload builds the jobs the host feeds into the pool.
// Each factory returns closures that record their outcome in a
// caller-owned Collector; the pool itself never sees a result.
package workload

import (
	"errors"
	"fmt"
	"time"

	"task-runner/pool"
)

// Workload kinds accepted in config and on the command line
const (
	KindSleep = "sleep"
	KindHash  = "hash"
	KindScan  = "scan"
)

// Plan describes one batch of work: what kind of jobs, how many, and the
// knobs for duration and fault injection
type Plan struct {
	Kind       string
	Jobs       int
	JobTime    time.Duration
	FailEvery  int // every n-th sleep job returns an error, 0 disables
	PanicEvery int // every n-th sleep job panics, 0 disables
	HashRounds int
	Dir        string // scan workload only
}

// Build turns the plan into submit-ready jobs recording into c
func (p Plan) Build(c *Collector) ([]pool.Job, error) {
	switch p.Kind {
	case KindSleep:
		return sleepJobs(p, c), nil
	case KindHash:
		return hashJobs(p, c), nil
	case KindScan:
		if p.Dir == "" {
			return nil, errors.New("scan workload requires a directory")
		}

		return ScanJobs(p.Dir, c)
	default:
		return nil, fmt.Errorf("unknown workload %q", p.Kind)
	}
}
