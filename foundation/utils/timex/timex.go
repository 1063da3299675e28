// File: timex.go
// Title: Time Parsing Utilities
// Description: Parses the time filters of the journal: timestamps in the
//              usual layouts, durations with day and week units, and
//              "since" values that are either a timestamp or an age.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation with comprehensive time utilities
// - 2026-10-18 v0.2.0: Reduced to the parsers used by the journal filters

package timex

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Layouts accepted by Parse, tried in order
var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	time.DateTime,
	"2006-01-02 15:04",
	time.DateOnly,
	"02.01.2006",
}

// Day and Week extend the time package units
const (
	Day  = 24 * time.Hour
	Week = 7 * Day
)

// Parse parses value in one of the supported layouts. Values without a zone
// are taken as UTC.
func Parse(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty time string")
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse time string: %s", value)
}

// ParseDuration parses a non-negative duration. Besides the time package
// syntax it accepts compact day and week values ("30d", "2w") and the long
// form "<n> <unit>" with second, minute, hour, day and week units.
func ParseDuration(value string) (time.Duration, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return 0, fmt.Errorf("empty duration string")
	}
	if strings.HasPrefix(value, "-") {
		return 0, fmt.Errorf("negative durations are not supported: %s", value)
	}

	if d, err := time.ParseDuration(value); err == nil {
		return d, nil
	}

	num, unit := splitNumber(value)
	n, err := strconv.ParseFloat(num, 64)
	if err != nil || num == "" {
		return 0, fmt.Errorf("unable to parse duration string: %s", value)
	}
	unit = strings.TrimSuffix(strings.TrimSpace(unit), "s")

	var base time.Duration
	switch unit {
	case "d", "day":
		base = Day
	case "w", "week":
		base = Week
	case "second", "sec":
		base = time.Second
	case "minute", "min":
		base = time.Minute
	case "hour", "hr":
		base = time.Hour
	default:
		return 0, fmt.Errorf("unable to parse duration string: %s", value)
	}
	return time.Duration(n * float64(base)), nil
}

// splitNumber cuts value after its leading number
func splitNumber(value string) (num, rest string) {
	i := strings.IndexFunc(value, func(r rune) bool {
		return (r < '0' || r > '9') && r != '.'
	})
	if i < 0 {
		return value, ""
	}
	return value[:i], value[i:]
}

// ParseSince turns a "since" filter into a point in time: either a
// timestamp accepted by Parse or a duration back from now. "" is the zero
// time, meaning no filter.
func ParseSince(value string, now time.Time) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, nil
	}
	if t, err := Parse(value); err == nil {
		return t, nil
	}
	d, err := ParseDuration(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid since %q: want a timestamp or a duration like 24h or 7d", value)
	}
	return now.Add(-d), nil
}
