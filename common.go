// ABOUTME: Shared initialization code for all modes (run, scan, watch, TUI)
// ABOUTME: Provides logging setup, plan construction and the pool event logging hooks

package main

import (
	"fmt"
	"io"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"task-runner/config"
	"task-runner/pool"
	"task-runner/workload"
)

const debugLogPath = "task-runner-debug.log"

// RunOptions contains the resolved settings shared by all modes
type RunOptions struct {
	Config     config.Config
	ConfigPath string
	Dir        string
	Debug      bool
}

// SetupLogging configures logrus for the selected mode
//
// In visual mode the terminal belongs to the dashboard, so log output goes to
// a file when -debug is set and is discarded otherwise. Returns a cleanup
// function that closes the log file.
func SetupLogging(debug, visual bool) (func(), error) {
	cleanup := func() {}

	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000",
	})

	if debug {
		log.SetLevel(log.DebugLevel)
	}

	if !visual {
		return cleanup, nil
	}

	if !debug {
		log.SetOutput(io.Discard)

		return cleanup, nil
	}

	f, err := os.Create(debugLogPath)
	if err != nil {
		return cleanup, fmt.Errorf("failed to create debug log file: %w", err)
	}

	log.SetOutput(f)

	if isTTY(os.Stdout) {
		fmt.Printf("Debug logging enabled: %s\n", debugLogPath)
	}

	cleanup = func() {
		if err := f.Close(); err != nil {
			fmt.Printf("Warning: failed to close debug log file: %v\n", err)
		}
	}

	return cleanup, nil
}

// planFromConfig maps the resolved config onto a workload plan
func planFromConfig(cfg config.Config, dir string) workload.Plan {
	return workload.Plan{
		Kind:       cfg.Workload,
		Jobs:       cfg.Jobs,
		JobTime:    time.Duration(cfg.JobMs) * time.Millisecond,
		FailEvery:  cfg.FailEvery,
		PanicEvery: cfg.PanicEvery,
		HashRounds: cfg.HashRounds,
		Dir:        dir,
	}
}

// loggingHooks reports pool lifecycle events through logrus
func loggingHooks() pool.Hooks {
	return pool.Hooks{
		WorkerStarted: func(worker int) {
			log.Debugf("worker %d started", worker)
		},
		JobStarted: func(worker int, job string) {
			log.Debugf("worker %d started job %s", worker, shortID(job))
		},
		JobFinished: func(worker int, job string, took time.Duration, err error) {
			if err != nil {
				log.Warnf("worker %d job %s failed after %s: %v", worker, shortID(job), took.Round(time.Millisecond), err)

				return
			}

			log.Debugf("worker %d finished job %s in %s", worker, shortID(job), took.Round(time.Millisecond))
		},
		WorkerStopped: func(worker int) {
			log.Infof("worker %d shutting down", worker)
		},
	}
}

// shortID trims a job id to its first UUID group for log and status lines
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}

	return id
}

// truncate shortens string to maxLen, adding "..." if needed
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}

	if maxLen <= 3 {
		return s[:maxLen]
	}

	return s[:maxLen-3] + "..."
}
