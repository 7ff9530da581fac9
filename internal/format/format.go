// Package format renders counts, sizes and durations for people.
package format

import (
	"fmt"
	"time"
)

// Count formats n with noun, adding "s" unless n is exactly one.
// Examples: "1 word", "0 words", "42 words".
func Count(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// DurationHuman formats a duration for human display.
// Examples: "2h", "30m", "1h30m", "45s", "1.2s"
func DurationHuman(d time.Duration) string {
	if d >= time.Hour {
		hours := d / time.Hour
		minutes := (d % time.Hour) / time.Minute
		if minutes > 0 {
			return fmt.Sprintf("%dh%dm", hours, minutes)
		}
		return fmt.Sprintf("%dh", hours)
	}
	if d >= time.Minute {
		return fmt.Sprintf("%dm", d/time.Minute)
	}
	if d >= 10*time.Second {
		return fmt.Sprintf("%ds", d/time.Second)
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

// Size formats a size in bytes for human display.
// Uses MB for sizes >= 1MB, KB for >= 1KB, bytes otherwise.
func Size(bytes int) string {
	const (
		kb = 1024
		mb = 1024 * kb
	)
	if bytes >= mb {
		return fmt.Sprintf("%d MB", bytes/mb)
	}
	if bytes >= kb {
		return fmt.Sprintf("%d KB", bytes/kb)
	}
	return fmt.Sprintf("%d bytes", bytes)
}
