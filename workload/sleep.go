// ABOUTME: Sleep workload simulating I/O-bound jobs of a fixed duration
// ABOUTME: Carries the fault-injection knobs for error and panic drills

package workload

import (
	"fmt"
	"time"

	"task-runner/pool"
)

func sleepJobs(plan Plan, c *Collector) []pool.Job {
	jobs := make([]pool.Job, plan.Jobs)
	for i := range jobs {
		jobs[i] = sleepJob(i, plan, c)
	}

	return jobs
}

// sleepJob sleeps for the planned duration, with every n-th job optionally
// failing or panicking so fault confinement can be exercised end to end
func sleepJob(i int, plan Plan, c *Collector) pool.Job {
	name := fmt.Sprintf("sleep-%d", i)

	return func() error {
		start := time.Now()

		if plan.PanicEvery > 0 && (i+1)%plan.PanicEvery == 0 {
			panic(fmt.Sprintf("injected panic in %s", name))
		}

		time.Sleep(plan.JobTime)

		if plan.FailEvery > 0 && (i+1)%plan.FailEvery == 0 {
			err := fmt.Errorf("injected failure in %s", name)
			c.Record(Entry{Job: name, Took: time.Since(start), Err: err})

			return err
		}

		c.Record(Entry{Job: name, Took: time.Since(start)})

		return nil
	}
}
