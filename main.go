// ABOUTME: Entry point for task-runner application
// ABOUTME: Handles command-line parsing, profiling, and routing to batch, watch or TUI modes

// Package main provides the entry point for task-runner, a fixed-size worker pool with batch, scan and watch front ends.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"text/tabwriter"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"task-runner/config"
	"task-runner/workload"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "path to config file (default: task-runner.toml, then ~/.config/task-runner/)")
	workers := flag.Int("workers", 0, "number of workers (overrides config)")
	jobs := flag.Int("jobs", -1, "number of jobs to submit (overrides config)")
	workloadKind := flag.String("workload", "", "workload kind: sleep, hash or scan (overrides config)")
	jobMs := flag.Int("job-ms", -1, "per-job duration in milliseconds for the sleep workload (overrides config)")
	failEvery := flag.Int("fail-every", -1, "make every n-th job fail, 0 disables (overrides config)")
	visual := flag.Bool("visual", false, "run in visual/interactive mode with live parameter tuning")
	debugFlag := flag.Bool("debug", false, "enable debug logging")
	dryRun := flag.Bool("dry-run", false, "print the resolved configuration without running anything")
	cpuprofile := flag.String("cpuprofile", "", "write cpu profile to file")
	memprofile := flag.String("memprofile", "", "write memory profile to file")
	flag.Parse()

	mode, dir, ok := parseMode(flag.Args())
	if !ok {
		printUsage()

		return 1
	}

	if mode == "watch" && *visual {
		fmt.Println("watch mode does not support -visual")

		return 1
	}

	// Precedence: defaults, then config file, then environment, then flags
	if err := godotenv.Load(".env"); err == nil {
		log.Debug("loaded .env file")
	}

	path := *configPath
	if path == "" {
		path = config.GetConfigPath()
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		log.Warnf("using default config: %v", err)
	}

	cfg, err = config.ApplyEnv(cfg)
	if err != nil {
		log.Errorf("invalid environment override: %v", err)

		return 1
	}

	if *workers > 0 {
		cfg.Workers = *workers
	}
	if *jobs >= 0 {
		cfg.Jobs = *jobs
	}
	if *workloadKind != "" {
		cfg.Workload = *workloadKind
	}
	if *jobMs >= 0 {
		cfg.JobMs = *jobMs
	}
	if *failEvery >= 0 {
		cfg.FailEvery = *failEvery
	}
	if mode == "scan" {
		cfg.Workload = workload.KindScan
	}

	if err := cfg.Validate(); err != nil {
		log.Errorf("invalid configuration: %v", err)

		return 1
	}

	opts := RunOptions{
		Config:     cfg,
		ConfigPath: path,
		Dir:        dir,
		Debug:      *debugFlag,
	}

	if *dryRun {
		printResolvedConfig(opts, mode)

		return 0
	}

	cleanup, err := SetupLogging(*debugFlag, *visual)
	if err != nil {
		log.Errorf("failed to set up logging: %v", err)

		return 1
	}
	defer cleanup()

	if *cpuprofile != "" {
		stopCPUProfile := setupCPUProfile(*cpuprofile)
		defer stopCPUProfile()
	}

	if *memprofile != "" {
		defer writeMemoryProfile(*memprofile)
	}

	switch {
	case mode == "watch":
		if err := RunWatch(opts); err != nil {
			log.Errorf("watch error: %v", err)

			return 1
		}
	case *visual:
		if err := RunTUI(opts); err != nil {
			log.Errorf("TUI error: %v", err)

			return 1
		}
	default:
		if err := RunBatch(opts); err != nil {
			log.Errorf("run error: %v", err)

			return 1
		}
	}

	return 0
}

// parseMode maps the positional arguments onto a mode and optional directory
func parseMode(args []string) (mode, dir string, ok bool) {
	switch {
	case len(args) == 0:
		return "run", "", true
	case args[0] == "run" && len(args) == 1:
		return "run", "", true
	case args[0] == "scan" && len(args) == 2:
		return "scan", args[1], true
	case args[0] == "watch" && len(args) == 2:
		return "watch", args[1], true
	default:
		return "", "", false
	}
}

func printUsage() {
	fmt.Println("Usage: task-runner [flags] [run | scan <dir> | watch <dir>]")
	fmt.Println("Example: task-runner -workers 8 -jobs 500 -workload hash run")
	fmt.Println("\nFlags:")
	flag.PrintDefaults()
}

// printResolvedConfig shows what a run would use, for -dry-run
func printResolvedConfig(opts RunOptions, mode string) {
	cfg := opts.Config

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	rows := [][2]string{
		{"Mode", mode},
		{"Config file", opts.ConfigPath},
		{"Workload", cfg.Workload},
		{"Workers", fmt.Sprintf("%d", cfg.Workers)},
		{"Jobs", fmt.Sprintf("%d", cfg.Jobs)},
		{"Job time", fmt.Sprintf("%dms", cfg.JobMs)},
		{"Fail every", fmt.Sprintf("%d", cfg.FailEvery)},
		{"Panic every", fmt.Sprintf("%d", cfg.PanicEvery)},
		{"Hash rounds", fmt.Sprintf("%d", cfg.HashRounds)},
	}

	if opts.Dir != "" {
		rows = append(rows, [2]string{"Directory", opts.Dir})
	}

	for _, row := range rows {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", row[0], row[1]); err != nil {
			log.Warnf("failed to write config row: %v", err)
		}
	}

	if err := w.Flush(); err != nil {
		log.Warnf("failed to flush config output: %v", err)
	}
}

// setupCPUProfile starts CPU profiling, returns cleanup function
func setupCPUProfile(filename string) func() {
	f, err := os.Create(filename)
	if err != nil {
		log.Fatalf("could not create CPU profile: %v", err)
	}

	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		log.Fatalf("could not start CPU profile: %v", err)
	}

	return func() {
		pprof.StopCPUProfile()

		if err := f.Close(); err != nil {
			log.Warnf("failed to close CPU profile: %v", err)
		}
	}
}

// writeMemoryProfile writes memory profile to file
func writeMemoryProfile(filename string) {
	f, err := os.Create(filename)
	if err != nil {
		log.Warnf("could not create memory profile: %v", err)

		return
	}

	defer func() {
		if err := f.Close(); err != nil {
			log.Warnf("failed to close memory profile: %v", err)
		}
	}()

	runtime.GC()

	if err := pprof.WriteHeapProfile(f); err != nil {
		log.Warnf("could not write memory profile: %v", err)
	}
}
