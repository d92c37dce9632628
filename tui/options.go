// ABOUTME: TUI mode configuration and command-line options
// ABOUTME: Defines input parameters for running the dashboard

package tui

// Options contains configuration for running the TUI
type Options struct {
	ConfigPath string // Where to save tuned parameters on quit
	Debug      bool   // Enable debug logging to file
}
