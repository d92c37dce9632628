// ABOUTME: Injected dependency types for the TUI package
// ABOUTME: Allows clean separation and easy testing with mocks

package tui

import (
	"context"

	"task-runner/config"
	"task-runner/pool"
)

// RunnerFunc runs one batch against a fresh pool, streaming progress into
// updates until the pool has drained. Cancelling ctx stops submission; jobs
// already queued still run before the final update arrives.
type RunnerFunc func(ctx context.Context, cfg config.Config, updates chan<- Update, epoch int)

// LogFunc provides debug logging capability
type LogFunc func(format string, args ...interface{})

// Update represents a progress update from a batch runner
type Update struct {
	Epoch    int        // which runner generation sent this
	Stats    pool.Stats // pool counters at send time
	Rate     float64    // finished jobs per second
	Line     string     // one worker event line, empty for stats-only refreshes
	Finished bool       // the batch has drained and all workers joined
}
