// Package timeline keeps a day's activities contiguous and inside the
// 06:00-23:00 window while a user edits their times.
package timeline

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	DayStart = 6 * 60
	DayEnd   = 23 * 60
)

var clockPattern = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)

// ValidClock reports whether s is a 24-hour H:MM or HH:MM wall-clock time.
func ValidClock(s string) bool {
	return clockPattern.MatchString(s)
}

// ParseClock converts a wall-clock time to minutes since midnight.
func ParseClock(s string) (int, error) {
	if !ValidClock(s) {
		return 0, fmt.Errorf("invalid clock %q", s)
	}
	hh, mm, _ := strings.Cut(s, ":")
	h, _ := strconv.Atoi(hh)
	m, _ := strconv.Atoi(mm)
	return h*60 + m, nil
}

func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
