package aggregation

import (
	"fmt"
	"strings"
	"time"
)

// WindowSpec represents a parsed and validated window size.
type WindowSpec struct {
	Size time.Duration
}

// ParseWindowSize parses a duration string into a WindowSpec.
// Supports Go duration syntax (e.g., "10s", "1m", "1h") plus "Xd" for days.
func ParseWindowSize(s string) (WindowSpec, error) {
	if s == "" {
		return WindowSpec{}, fmt.Errorf("window_size must not be empty")
	}

	// Handle "d" suffix (days), not supported by time.ParseDuration.
	if len(s) > 1 && s[len(s)-1] == 'd' {
		var days int
		if _, err := fmt.Sscanf(s, "%dd", &days); err != nil {
			return WindowSpec{}, fmt.Errorf("invalid window_size %q: %w", s, err)
		}
		if days <= 0 {
			return WindowSpec{}, fmt.Errorf("window_size must be positive, got %q", s)
		}
		return WindowSpec{Size: time.Duration(days) * 24 * time.Hour}, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return WindowSpec{}, fmt.Errorf("invalid window_size %q: %w", s, err)
	}
	if d <= 0 {
		return WindowSpec{}, fmt.Errorf("window_size must be positive, got %q", s)
	}
	return WindowSpec{Size: d}, nil
}

// BucketFor truncates a timestamp to the nearest granularity boundary.
// Example: BucketFor(10:35:42, time.Hour) → 10:00:00
func BucketFor(t time.Time, granularity time.Duration) time.Time {
	return t.Truncate(granularity)
}

// HourStart floors an epoch-second timestamp to the start of its UTC hour.
func HourStart(ts int64) int64 {
	return BucketFor(time.Unix(ts, 0).UTC(), time.Hour).Unix()
}

// FormatHour renders the hour label for an hour-start timestamp.
func FormatHour(startTS int64) string {
	return time.Unix(startTS, 0).UTC().Format(HourLayout)
}

// ParseHour parses an hour label back into its UTC start timestamp.
func ParseHour(label string) (int64, error) {
	t, err := time.ParseInLocation(HourLayout, label, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("invalid hour label %q: %w", label, err)
	}
	return t.Unix(), nil
}

// IsLastHourOfDay reports whether the label names the 23:00–24:00 bucket.
func IsLastHourOfDay(label string) bool {
	return strings.HasSuffix(label, "T23")
}

// DateOf returns the date portion of an hour label.
func DateOf(hourLabel string) string {
	if i := strings.IndexByte(hourLabel, 'T'); i >= 0 {
		return hourLabel[:i]
	}
	return hourLabel
}

// DayStartForLastHour derives the day-start timestamp from the start of its T23 hour.
func DayStartForLastHour(lastHourStartTS int64) int64 {
	return lastHourStartTS - 23*HourSeconds
}

// ParseDate parses a date label into its UTC start timestamp.
func ParseDate(label string) (int64, error) {
	t, err := time.ParseInLocation(DateLayout, label, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("invalid date label %q: %w", label, err)
	}
	return t.Unix(), nil
}
