// ABOUTME: Watch mode implementation that feeds file change events into the pool
// ABOUTME: Monitors a directory tree and submits a checksum or tag job per changed file

package main

import (
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"

	"task-runner/pool"
	"task-runner/workload"
)

// RunWatch watches a directory and submits one job per changed file: a tag
// read for audio files, a checksum for everything else. Ctrl+C stops the
// watcher and drains whatever is still queued.
func RunWatch(opts RunOptions) error {
	cfg := opts.Config
	collector := workload.NewCollector()

	p, err := pool.New(cfg.Workers, pool.WithHooks(loggingHooks()))
	if err != nil {
		return fmt.Errorf("failed to create pool: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		p.Shutdown()

		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watchTree(watcher, opts.Dir); err != nil {
		p.Shutdown()

		return err
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	debounce := time.Duration(cfg.DebounceMs) * time.Millisecond
	lastEvent := make(map[string]time.Time)

	startTime := time.Now()

	log.Infof("Watching %s with %d workers (Ctrl+C to stop)", opts.Dir, cfg.Workers)

	for {
		select {
		case <-stop:
			log.Info("Stopping watch, draining queued jobs")
			p.Shutdown()
			printSummary(p.Stats(), collector, time.Since(startTime), cfg.Workload)

			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				p.Shutdown()

				return nil
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			info, err := os.Stat(event.Name)
			if err != nil {
				continue
			}

			// New directories join the watch so files created inside them
			// are picked up too
			if info.IsDir() {
				if event.Op&fsnotify.Create != 0 {
					if err := watcher.Add(event.Name); err != nil {
						log.Warnf("failed to watch new directory %s: %v", event.Name, err)
					}
				}

				continue
			}

			// Debounce: editors and atomic writes fire several events per save
			if last, seen := lastEvent[event.Name]; seen && time.Since(last) < debounce {
				continue
			}
			lastEvent[event.Name] = time.Now()

			job := workload.ChecksumJob(event.Name, collector)
			if workload.IsAudioFile(event.Name) {
				job = workload.TagJob(event.Name, collector)
			}

			if err := p.Submit(job); err != nil {
				log.Warnf("failed to submit job for %s: %v", event.Name, err)
			} else {
				log.Debugf("queued %s", event.Name)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				continue
			}

			log.Warnf("watcher error: %v", err)
		}
	}
}

// watchTree registers dir and every subdirectory with the watcher, since
// fsnotify watches are not recursive
func watchTree(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to walk %s: %w", path, err)
		}

		if !d.IsDir() {
			return nil
		}

		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}

		return nil
	})
}
