// ABOUTME: Bridges the batch runner to the TUI dashboard
// ABOUTME: Runs pool batches per epoch and streams stats and worker events as tui.Update messages

package main

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"task-runner/config"
	"task-runner/pool"
	"task-runner/tui"
	"task-runner/workload"
)

const (
	statsInterval    = 100 * time.Millisecond // How often the dashboard stats refresh
	eventChanBuffer  = 64                     // Worker event lines buffered between hooks and the pump
	updateSendWindow = time.Second            // How long the final update may wait for the TUI
)

// RunTUI starts the interactive dashboard wired to the batch runner
func RunTUI(opts RunOptions) error {
	shared := config.NewSharedConfig(opts.Config)
	dir := opts.Dir

	runner := func(ctx context.Context, cfg config.Config, updates chan<- tui.Update, epoch int) {
		runBatchForTUI(ctx, cfg, dir, updates, epoch)
	}

	tuiOpts := tui.Options{
		ConfigPath: opts.ConfigPath,
		Debug:      opts.Debug,
	}

	return tui.Run(tuiOpts, shared, runner, log.Debugf)
}

// runBatchForTUI runs one batch and reports progress on the updates channel.
// It blocks until the pool has drained, then sends a final Finished update
func runBatchForTUI(ctx context.Context, cfg config.Config, dir string, updates chan<- tui.Update, epoch int) {
	collector := workload.NewCollector()

	jobs, err := planFromConfig(cfg, dir).Build(collector)
	if err != nil {
		log.Errorf("Failed to build workload: %v", err)
		sendFinal(updates, tui.Update{
			Epoch:    epoch,
			Line:     fmt.Sprintf("-- cannot build workload: %v --", err),
			Finished: true,
		})

		return
	}

	events := make(chan string, eventChanBuffer)

	p, err := pool.New(cfg.Workers, pool.WithHooks(tuiHooks(events)))
	if err != nil {
		log.Errorf("Failed to start pool: %v", err)
		sendFinal(updates, tui.Update{
			Epoch:    epoch,
			Line:     fmt.Sprintf("-- cannot start pool: %v --", err),
			Finished: true,
		})

		return
	}

	start := time.Now()

submitLoop:
	for i, job := range jobs {
		select {
		case <-ctx.Done():
			log.Debugf("Batch cancelled after %d of %d jobs", i, len(jobs))

			break submitLoop
		default:
		}

		if err := p.Submit(job); err != nil {
			log.Warnf("Failed to submit job: %v", err)

			break submitLoop
		}
	}

	// Drain in the background so the pump below keeps the dashboard live
	done := make(chan struct{})

	go func() {
		p.Shutdown()
		close(done)
	}()

	ticker := time.NewTicker(statsInterval)
	defer ticker.Stop()

pump:
	for {
		select {
		case <-done:
			break pump

		case line := <-events:
			sendUpdate(updates, tui.Update{
				Epoch: epoch,
				Stats: p.Stats(),
				Rate:  jobsPerSecond(p.Stats(), time.Since(start)),
				Line:  line,
			})

		case <-ticker.C:
			sendUpdate(updates, tui.Update{
				Epoch: epoch,
				Stats: p.Stats(),
				Rate:  jobsPerSecond(p.Stats(), time.Since(start)),
			})
		}
	}

	// Flush event lines the hooks buffered before shutdown finished
flush:
	for {
		select {
		case line := <-events:
			sendUpdate(updates, tui.Update{
				Epoch: epoch,
				Stats: p.Stats(),
				Rate:  jobsPerSecond(p.Stats(), time.Since(start)),
				Line:  line,
			})
		default:
			break flush
		}
	}

	sendFinal(updates, tui.Update{
		Epoch:    epoch,
		Stats:    p.Stats(),
		Rate:     jobsPerSecond(p.Stats(), time.Since(start)),
		Finished: true,
	})
}

// tuiHooks formats worker events as feed lines. Sends drop when the buffer is
// full so a busy terminal never slows the workers down
func tuiHooks(events chan<- string) pool.Hooks {
	return pool.Hooks{
		JobFinished: func(worker int, job string, took time.Duration, err error) {
			var line string
			if err != nil {
				line = fmt.Sprintf("[w%d] job %s failed after %s: %v", worker, shortID(job), took.Round(time.Millisecond), err)
			} else {
				line = fmt.Sprintf("[w%d] job %s done in %s", worker, shortID(job), took.Round(time.Millisecond))
			}

			select {
			case events <- line:
			default:
			}
		},
		WorkerStopped: func(worker int) {
			select {
			case events <- fmt.Sprintf("[w%d] worker shutting down", worker):
			default:
			}
		},
	}
}

// sendUpdate delivers a progress update without blocking, dropping it when
// the TUI is behind. The next ticker update carries fresher stats anyway
func sendUpdate(updates chan<- tui.Update, update tui.Update) {
	select {
	case updates <- update:
	default:
	}
}

// sendFinal delivers the Finished update the TUI relies on to leave the
// running state. Unlike progress updates it must not be dropped, but the
// send still times out in case the TUI exited mid-batch
func sendFinal(updates chan<- tui.Update, update tui.Update) {
	select {
	case updates <- update:
	case <-time.After(updateSendWindow):
		log.Debugf("Dropped final update for epoch %d, TUI gone", update.Epoch)
	}
}

// jobsPerSecond computes the finish rate for the dashboard status bar
func jobsPerSecond(stats pool.Stats, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}

	return float64(stats.Completed+stats.Failed) / elapsed.Seconds()
}
