// ABOUTME: Batch mode implementation for non-interactive runs
// ABOUTME: Handles progress display, summary output, and signal handling for command-line usage

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	log "github.com/sirupsen/logrus"

	"task-runner/pool"
	"task-runner/workload"
)

const spinnerUpdateInterval = 500 * time.Millisecond

// isTTY checks if the given file is a terminal
func isTTY(f *os.File) bool {
	stat, err := f.Stat()
	if err != nil {
		return false
	}

	return (stat.Mode() & os.ModeCharDevice) != 0
}

// RunBatch builds the configured workload, submits it to a fresh pool,
// drains the queue and prints a summary. Ctrl+C stops submission early;
// already queued jobs still run to completion.
func RunBatch(opts RunOptions) error {
	cfg := opts.Config
	collector := workload.NewCollector()

	jobs, err := planFromConfig(cfg, opts.Dir).Build(collector)
	if err != nil {
		return fmt.Errorf("failed to build workload: %w", err)
	}

	p, err := pool.New(cfg.Workers, pool.WithHooks(loggingHooks()))
	if err != nil {
		return fmt.Errorf("failed to create pool: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-stop
		cancel()
	}()

	fmt.Printf("Submitting %d %s jobs to %d workers... (press Ctrl+C to stop submitting)\n",
		len(jobs), cfg.Workload, cfg.Workers)

	startTime := time.Now()
	submitted := 0

submitLoop:
	for _, job := range jobs {
		select {
		case <-ctx.Done():
			fmt.Printf("\nInterrupted after %d of %d jobs, draining the queue...\n", submitted, len(jobs))

			break submitLoop
		default:
		}

		if err := p.Submit(job); err != nil {
			return fmt.Errorf("failed to submit job: %w", err)
		}
		submitted++
	}

	drainPool(p, startTime)
	printSummary(p.Stats(), collector, time.Since(startTime), cfg.Workload)

	return nil
}

// drainPool shuts the pool down in the background and animates a status line
// until every queued job has run and all workers have joined
func drainPool(p *pool.Pool, startTime time.Time) {
	done := make(chan struct{})

	go func() {
		p.Shutdown()
		close(done)
	}()

	// Non-TTY contexts (cron, pipes) skip the spinner entirely to avoid log spam
	if !isTTY(os.Stdout) {
		<-done

		return
	}

	spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	spinnerIdx := 0

	statusTicker := time.NewTicker(spinnerUpdateInterval)
	defer statusTicker.Stop()

	for {
		select {
		case <-done:
			// Clear status line at end
			fmt.Print("\r\033[K")

			return
		case <-statusTicker.C:
			stats := p.Stats()
			fmt.Printf("\r%s %s %d/%d done, %d queued     ",
				formatElapsed(time.Since(startTime)),
				spinnerFrames[spinnerIdx],
				stats.Completed+stats.Failed,
				stats.Submitted,
				stats.Queued,
			)
			spinnerIdx = (spinnerIdx + 1) % len(spinnerFrames)
		}
	}
}

// printSummary writes the run totals, then either the per-file scan results
// or the failure list depending on the workload kind
func printSummary(stats pool.Stats, collector *workload.Collector, elapsed time.Duration, kind string) {
	fmt.Println("\nRun summary:")

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	rows := [][2]string{
		{"Workers", fmt.Sprintf("%d", stats.Workers)},
		{"Submitted", fmt.Sprintf("%d", stats.Submitted)},
		{"Completed", fmt.Sprintf("%d", stats.Completed)},
		{"Failed", fmt.Sprintf("%d", stats.Failed)},
		{"Rejected", fmt.Sprintf("%d", stats.Rejected)},
		{"Elapsed", elapsed.Round(time.Millisecond).String()},
		{"Throughput", FormatRate(stats.Completed+stats.Failed, elapsed)},
	}

	for _, row := range rows {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", row[0], row[1]); err != nil {
			log.Warnf("failed to write summary row: %v", err)
		}
	}

	if err := w.Flush(); err != nil {
		log.Warnf("failed to flush summary: %v", err)
	}

	if kind == workload.KindScan {
		printScanResults(collector)

		return
	}

	printFailures(collector)
}

// printScanResults renders one row per scanned file
func printScanResults(collector *workload.Collector) {
	entries := collector.Entries()
	if len(entries) == 0 {
		return
	}

	fmt.Println("\nScanned files:")

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "#\tFile\tResult\tTook"); err != nil {
		log.Warnf("failed to write header: %v", err)
	}

	if _, err := fmt.Fprintln(w, "---\t----\t------\t----"); err != nil {
		log.Warnf("failed to write separator: %v", err)
	}

	for i, entry := range entries {
		result := entry.Detail
		if entry.Err != nil {
			result = "error: " + entry.Err.Error()
		}

		if _, err := fmt.Fprintf(w, "%d\t%s\t%s\t%v\n",
			i+1,
			truncate(entry.Job, 40),
			truncate(result, 50),
			entry.Took.Round(time.Millisecond),
		); err != nil {
			log.Warnf("failed to write result row %d: %v", i+1, err)
		}
	}

	if err := w.Flush(); err != nil {
		log.Warnf("failed to flush results: %v", err)
	}
}

// printFailures lists the failed jobs after the summary, capped to keep the
// output readable on large batches
func printFailures(collector *workload.Collector) {
	var failures []workload.Entry
	for _, entry := range collector.Entries() {
		if entry.Err != nil {
			failures = append(failures, entry)
		}
	}

	if len(failures) == 0 {
		return
	}

	const maxFailureLines = 10

	fmt.Printf("\nFailures (%d):\n", len(failures))

	for i, entry := range failures {
		if i == maxFailureLines {
			fmt.Printf("  ... and %d more\n", len(failures)-maxFailureLines)

			break
		}

		fmt.Printf("  %s: %v\n", entry.Job, truncate(entry.Err.Error(), 80))
	}
}
