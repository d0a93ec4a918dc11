// Package duration parses retention ages for vacuum --older-than.
//
// Calendar units ("7d", "4w", "3m") are accepted alongside anything
// time.ParseDuration understands ("36h", "90m30s"). A month is 30 days.
// "m" is always months; write "90m0s" for ninety minutes.
package duration

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

const day = 24 * time.Hour

var (
	calendar = regexp.MustCompile(`^(\d+)([dwm])$`)
	units    = map[string]time.Duration{
		"d": day,
		"w": 7 * day,
		"m": 30 * day,
	}
)

// Parse returns the duration s describes. Negative durations are rejected.
func Parse(s string) (time.Duration, error) {
	if m := calendar.FindStringSubmatch(s); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q: %w", s, err)
		}
		return time.Duration(n) * units[m[2]], nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q (use 7d, 4w, 3m or a Go duration such as 36h)", s)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid duration %q: must not be negative", s)
	}
	return d, nil
}
