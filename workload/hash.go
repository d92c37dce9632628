// ABOUTME: Hash workload keeping workers CPU-bound with iterated SHA-256
// ABOUTME: Also provides the file checksum job used by watch mode

package workload

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"task-runner/pool"
)

func hashJobs(plan Plan, c *Collector) []pool.Job {
	jobs := make([]pool.Job, plan.Jobs)
	for i := range jobs {
		jobs[i] = hashJob(i, plan.HashRounds, c)
	}

	return jobs
}

// hashJob chains SHA-256 over a per-job seed. Same index and rounds always
// produce the same digest
func hashJob(i, rounds int, c *Collector) pool.Job {
	name := fmt.Sprintf("hash-%d", i)

	return func() error {
		start := time.Now()

		sum := sha256.Sum256(fmt.Appendf(nil, "seed-%d", i))
		for range rounds {
			sum = sha256.Sum256(sum[:])
		}

		c.Record(Entry{
			Job:    name,
			Detail: hex.EncodeToString(sum[:])[:12],
			Took:   time.Since(start),
		})

		return nil
	}
}

// ChecksumJob hashes the contents of a single file. Watch mode submits one
// of these for every non-audio file that changes
func ChecksumJob(path string, c *Collector) pool.Job {
	name := filepath.Base(path)

	return func() error {
		start := time.Now()

		f, err := os.Open(path)
		if err != nil {
			err = fmt.Errorf("failed to open %s: %w", name, err)
			c.Record(Entry{Job: name, Took: time.Since(start), Err: err})

			return err
		}
		defer func() { _ = f.Close() }()

		h := sha256.New()
		if _, err := io.Copy(h, f); err != nil {
			err = fmt.Errorf("failed to read %s: %w", name, err)
			c.Record(Entry{Job: name, Took: time.Since(start), Err: err})

			return err
		}

		c.Record(Entry{
			Job:    name,
			Detail: hex.EncodeToString(h.Sum(nil))[:12],
			Took:   time.Since(start),
		})

		return nil
	}
}
