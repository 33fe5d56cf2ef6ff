package repository

import (
	"time"
)

// FormatTimeForStore formats a time.Time value as an RFC3339 string with
// nanoseconds so it parses back to the same instant
func FormatTimeForStore(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

// ParseTimeFromStore parses a time string written by FormatTimeForStore.
// Plain RFC3339 values are accepted as well.
func ParseTimeFromStore(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
