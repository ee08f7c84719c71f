package utils

import (
	"fmt"
	"strings"
	"time"
)

const layoutHM = "15:04"

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// FormatISO renders a timestamp as RFC 3339 keeping its offset.
func FormatISO(t time.Time) string {
	return t.Format(time.RFC3339)
}

// ParseISO parses RFC 3339 timestamps with or without fractional seconds.
func ParseISO(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, strings.TrimSpace(s))
}

// FormatHM formats a clock time as HH:MM in the timestamp's own zone.
func FormatHM(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(layoutHM)
}

// FormatDuration renders seconds as "1h 05min" / "12 min".
func FormatDuration(seconds int) string {
	if seconds <= 0 {
		return "0 min"
	}
	minutes := (seconds + 59) / 60
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	return fmt.Sprintf("%dh %02dmin", minutes/60, minutes%60)
}

// FormatDistance renders meters as "850 m" / "12.3 km".
func FormatDistance(meters float64) string {
	if meters < 1000 {
		return fmt.Sprintf("%.0f m", meters)
	}
	return fmt.Sprintf("%.1f km", meters/1000)
}
