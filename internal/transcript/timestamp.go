package transcript

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatTimestamp renders whole seconds as "MM:SS", truncating any
// sub-second fraction.
func FormatTimestamp(seconds float64) string {
	total := int64(seconds)
	minutes := total / 60
	secs := total % 60
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}

// ParseTimestamp accepts "MM:SS" or "HH:MM:SS" with non-negative integer
// components (a trailing ".fraction" on the seconds field is truncated,
// not rounded) and returns whole seconds.
func ParseTimestamp(ts string) (int64, error) {
	ts = strings.TrimSpace(ts)
	parts := strings.Split(ts, ":")

	var hoursStr, minutesStr, secondsStr string
	switch len(parts) {
	case 2:
		hoursStr, minutesStr, secondsStr = "0", parts[0], parts[1]
	case 3:
		hoursStr, minutesStr, secondsStr = parts[0], parts[1], parts[2]
	default:
		return 0, fmt.Errorf("invalid timestamp format: %q", ts)
	}

	if dot := strings.IndexByte(secondsStr, '.'); dot >= 0 {
		secondsStr = secondsStr[:dot]
	}

	hours, err := strconv.ParseInt(hoursStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp components: %w", err)
	}
	minutes, err := strconv.ParseInt(minutesStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp components: %w", err)
	}
	seconds, err := strconv.ParseInt(secondsStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp components: %w", err)
	}
	if hours < 0 || minutes < 0 || seconds < 0 {
		return 0, fmt.Errorf("negative timestamp not allowed: %q", ts)
	}

	return hours*3600 + minutes*60 + seconds, nil
}
