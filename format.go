// ABOUTME: Display formatting helpers for elapsed times and throughput
// ABOUTME: Keeps status lines and summaries aligned across the CLI and watch modes

package main

import (
	"fmt"
	"time"
)

// formatElapsed renders a duration as seconds or minutes:seconds,
// right-aligned to six characters so status lines stay stable
func formatElapsed(elapsed time.Duration) string {
	totalSeconds := int(elapsed.Seconds())
	if totalSeconds < 60 {
		return fmt.Sprintf("%5ds", totalSeconds)
	}

	minutes := totalSeconds / 60
	seconds := totalSeconds % 60

	return fmt.Sprintf("%3dm%02d", minutes, seconds)
}

// FormatRate returns a jobs-per-second figure with precision scaled to the
// magnitude, so slow drains show "0.83 jobs/s" and fast ones "1284 jobs/s"
func FormatRate(jobs uint64, elapsed time.Duration) string {
	if elapsed <= 0 {
		return "0 jobs/s"
	}

	rate := float64(jobs) / elapsed.Seconds()
	switch {
	case rate >= 100:
		return fmt.Sprintf("%.0f jobs/s", rate)
	case rate >= 1:
		return fmt.Sprintf("%.1f jobs/s", rate)
	default:
		return fmt.Sprintf("%.2f jobs/s", rate)
	}
}
