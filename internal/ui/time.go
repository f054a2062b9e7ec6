package ui

import (
	"fmt"
	"time"
)

// FormatDurationShort formats a duration using short units (s/m/h/d).
func FormatDurationShort(duration time.Duration) string {
	if duration < 0 {
		duration = 0
	}

	duration = duration.Truncate(time.Second)
	seconds := int64(duration.Seconds())
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}

	minutes := seconds / 60
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}

	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf("%dh", hours)
	}

	days := hours / 24
	return fmt.Sprintf("%dd", days)
}

// FormatRelative describes then relative to now, like "in 2d" or "3h ago".
// A nil time renders as "-".
func FormatRelative(then *time.Time, now time.Time) string {
	if then == nil || then.IsZero() {
		return "-"
	}
	if then.After(now) {
		return "in " + FormatDurationShort(then.Sub(now))
	}
	return FormatDurationShort(now.Sub(*then)) + " ago"
}

// FormatTimestamp renders t in local time for detail views, or "-" when nil.
func FormatTimestamp(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}
