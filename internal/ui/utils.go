package ui

import (
	"fmt"
	"time"
)

// formatUptime renders d as hh:mm:ss, dropping fractions of a second.
func formatUptime(d time.Duration) string {
	d = max(d, 0).Truncate(time.Second)
	hrs := int64(d / time.Hour)
	mins := int64(d % time.Hour / time.Minute)
	secs := int64(d % time.Minute / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", hrs, mins, secs)
}

func formatTime(t time.Time) string {
	return t.Format("15:04:05")
}

// truncateName shortens a source name to maxLen runes, ending in "..."
// when there is room for it.
func truncateName(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:max(maxLen, 0)])
	}
	return string(r[:maxLen-3]) + "..."
}

// formatBytes renders a byte count in MiB, matching the overlay's units.
func formatBytes(b uint64) string {
	return fmt.Sprintf("%d MB", b/(1024*1024))
}
