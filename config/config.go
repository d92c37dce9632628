// ABOUTME: Configuration management for pool sizing and workload shape
// ABOUTME: Handles loading/saving TOML config files with fallback to defaults

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Config holds all tunable runner parameters
type Config struct {
	// Pool sizing
	Workers int `toml:"workers"`

	// Workload shape
	Workload   string `toml:"workload"` // sleep, hash or scan
	Jobs       int    `toml:"jobs"`
	JobMs      int    `toml:"job_ms"`
	FailEvery  int    `toml:"fail_every"`  // every n-th job fails, 0 disables
	PanicEvery int    `toml:"panic_every"` // every n-th job panics, 0 disables
	HashRounds int    `toml:"hash_rounds"`

	// Watch mode
	DebounceMs int `toml:"debounce_ms"`
}

// GetConfigPath returns the default config file path
// First tries current directory, then falls back to ~/.config/task-runner/config.toml
func GetConfigPath() string {
	// First try current directory
	if _, err := os.Stat("./task-runner.toml"); err == nil {
		return "./task-runner.toml"
	}

	// Then try ~/.config/task-runner/config.toml
	home, err := os.UserHomeDir()
	if err != nil {
		return "./task-runner.toml"
	}

	return filepath.Join(home, ".config", "task-runner", "config.toml")
}

// LoadConfig loads configuration from a TOML file
// If the file doesn't exist or fails to load, returns default config
func LoadConfig(path string) (Config, error) {
	// Try to read the file
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// File doesn't exist, return defaults
			return DefaultConfig(), nil
		}

		return DefaultConfig(), fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse TOML
	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves configuration to a TOML file
func SaveConfig(path string, config Config) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Create file
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			fmt.Printf("Warning: failed to close config file: %v\n", err)
		}
	}()

	// Encode config as TOML
	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(config); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// DefaultConfig returns the default runner configuration
func DefaultConfig() Config {
	return Config{
		Workers:    runtime.NumCPU(),
		Workload:   "sleep",
		Jobs:       100,
		JobMs:      100,
		FailEvery:  0,
		PanicEvery: 0,
		HashRounds: 20000,
		DebounceMs: 100,
	}
}

// Validate reports the first invalid field, or nil for a usable config
func (c Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}

	if c.Jobs < 0 {
		return fmt.Errorf("jobs must not be negative, got %d", c.Jobs)
	}

	if c.JobMs < 0 {
		return fmt.Errorf("job_ms must not be negative, got %d", c.JobMs)
	}

	if c.FailEvery < 0 || c.PanicEvery < 0 {
		return fmt.Errorf("fail_every and panic_every must not be negative")
	}

	if c.HashRounds < 1 {
		return fmt.Errorf("hash_rounds must be at least 1, got %d", c.HashRounds)
	}

	if c.DebounceMs < 0 {
		return fmt.Errorf("debounce_ms must not be negative, got %d", c.DebounceMs)
	}

	switch c.Workload {
	case "sleep", "hash", "scan":
	default:
		return fmt.Errorf("unknown workload %q", c.Workload)
	}

	return nil
}

// ApplyEnv overlays TASK_RUNNER_* environment variables onto the config
// Unset variables leave the corresponding field untouched
func ApplyEnv(config Config) (Config, error) {
	intVars := []struct {
		name  string
		field *int
	}{
		{"TASK_RUNNER_WORKERS", &config.Workers},
		{"TASK_RUNNER_JOBS", &config.Jobs},
		{"TASK_RUNNER_JOB_MS", &config.JobMs},
		{"TASK_RUNNER_FAIL_EVERY", &config.FailEvery},
		{"TASK_RUNNER_HASH_ROUNDS", &config.HashRounds},
	}

	for _, v := range intVars {
		raw := os.Getenv(v.name)
		if raw == "" {
			continue
		}

		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return config, fmt.Errorf("failed to parse %s: %w", v.name, err)
		}

		*v.field = parsed
	}

	if raw := os.Getenv("TASK_RUNNER_WORKLOAD"); raw != "" {
		config.Workload = raw
	}

	return config, nil
}
