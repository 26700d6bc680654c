// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cron

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Schedule is a parsed cron expression. The zero value matches nothing;
// use Parse.
type Schedule struct {
	expression string

	minutes     bitset64
	hours       bitset64
	daysOfMonth bitset64
	months      bitset64
	daysOfWeek  bitset64
}

// bitset64 is a set of integers 0-63.
type bitset64 uint64

func (b bitset64) has(value int) bool { return b&(1<<uint(value)) != 0 }
func (b *bitset64) set(value int)     { *b |= 1 << uint(value) }

// fieldSpec names one position of a 5-field expression and its bounds.
type fieldSpec struct {
	name     string
	minimum  int
	maximum  int
	selector func(*Schedule) *bitset64
}

var fieldSpecs = [5]fieldSpec{
	{"minute", 0, 59, func(s *Schedule) *bitset64 { return &s.minutes }},
	{"hour", 0, 23, func(s *Schedule) *bitset64 { return &s.hours }},
	{"day-of-month", 1, 31, func(s *Schedule) *bitset64 { return &s.daysOfMonth }},
	{"month", 1, 12, func(s *Schedule) *bitset64 { return &s.months }},
	{"day-of-week", 0, 6, func(s *Schedule) *bitset64 { return &s.daysOfWeek }},
}

var shortcuts = map[string]string{
	"@hourly":   "0 * * * *",
	"@daily":    "0 0 * * *",
	"@midnight": "0 0 * * *",
	"@weekly":   "0 0 * * 0",
	"@monthly":  "0 0 1 * *",
	"@yearly":   "0 0 1 1 *",
	"@annually": "0 0 1 1 *",
}

// Parse parses a 5-field expression or shortcut.
func Parse(expression string) (Schedule, error) {
	trimmed := strings.TrimSpace(expression)
	source := trimmed
	if strings.HasPrefix(trimmed, "@") {
		expanded, ok := shortcuts[strings.ToLower(trimmed)]
		if !ok {
			return Schedule{}, fmt.Errorf("cron: unknown shortcut %q", trimmed)
		}
		source = expanded
	}

	fields := strings.Fields(source)
	if len(fields) != len(fieldSpecs) {
		return Schedule{}, fmt.Errorf("cron: expected %d fields, got %d", len(fieldSpecs), len(fields))
	}

	schedule := Schedule{expression: trimmed}
	for index, spec := range fieldSpecs {
		bits, err := parseField(fields[index], spec.minimum, spec.maximum)
		if err != nil {
			return Schedule{}, fmt.Errorf("cron: %s field: %w", spec.name, err)
		}
		*spec.selector(&schedule) = bits
	}
	return schedule, nil
}

// MustParse is Parse for expressions known at compile time. It panics
// on error.
func MustParse(expression string) Schedule {
	schedule, err := Parse(expression)
	if err != nil {
		panic(err)
	}
	return schedule
}

// String returns the expression the schedule was parsed from.
func (s Schedule) String() string { return s.expression }

// Next returns the earliest minute strictly after t that matches the
// schedule. Day-of-month and day-of-week must both match. Returns an
// error when nothing matches within four years of t (for example
// February 31).
func (s Schedule) Next(t time.Time) (time.Time, error) {
	t = t.UTC().Truncate(time.Minute).Add(time.Minute)
	limit := t.AddDate(4, 0, 0)

	for t.Before(limit) {
		switch {
		case !s.months.has(int(t.Month())):
			t = time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, time.UTC)
		case !s.daysOfMonth.has(t.Day()) || !s.daysOfWeek.has(int(t.Weekday())):
			t = time.Date(t.Year(), t.Month(), t.Day()+1, 0, 0, 0, 0, time.UTC)
		case !s.hours.has(t.Hour()):
			t = time.Date(t.Year(), t.Month(), t.Day(), t.Hour()+1, 0, 0, 0, time.UTC)
		case !s.minutes.has(t.Minute()):
			t = t.Add(time.Minute)
		default:
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("cron: %q has no matching time within 4 years of %s",
		s.expression, t.Format(time.RFC3339))
}

// Until returns how long after now the next run is due.
func (s Schedule) Until(now time.Time) (time.Duration, error) {
	next, err := s.Next(now)
	if err != nil {
		return 0, err
	}
	return next.Sub(now), nil
}

// parseField parses comma-separated terms into one bitset.
func parseField(field string, minimum, maximum int) (bitset64, error) {
	var result bitset64
	for _, term := range strings.Split(field, ",") {
		bits, err := parseTerm(term, minimum, maximum)
		if err != nil {
			return 0, err
		}
		result |= bits
	}
	return result, nil
}

// parseTerm parses one of *, */N, V, V-V, V-V/N, V/N.
func parseTerm(term string, minimum, maximum int) (bitset64, error) {
	rangeText, stepText, stepped := strings.Cut(term, "/")
	step := 1
	if stepped {
		parsed, err := strconv.Atoi(stepText)
		if err != nil {
			return 0, fmt.Errorf("invalid step %q: %w", stepText, err)
		}
		if parsed <= 0 {
			return 0, fmt.Errorf("step must be positive, got %d", parsed)
		}
		step = parsed
	}

	var start, end int
	switch startText, endText, isRange := strings.Cut(rangeText, "-"); {
	case rangeText == "*":
		start, end = minimum, maximum
	case isRange:
		var err error
		if start, err = strconv.Atoi(startText); err != nil {
			return 0, fmt.Errorf("invalid range start %q: %w", startText, err)
		}
		if end, err = strconv.Atoi(endText); err != nil {
			return 0, fmt.Errorf("invalid range end %q: %w", endText, err)
		}
		if start > end {
			return 0, fmt.Errorf("range start %d > end %d", start, end)
		}
	default:
		value, err := strconv.Atoi(rangeText)
		if err != nil {
			return 0, fmt.Errorf("invalid value %q: %w", rangeText, err)
		}
		start = value
		end = value
		if stepped {
			end = maximum
		}
	}

	if start < minimum || end > maximum {
		return 0, fmt.Errorf("value out of range [%d-%d]: got %d-%d", minimum, maximum, start, end)
	}

	var result bitset64
	for value := start; value <= end; value += step {
		result.set(value)
	}
	return result, nil
}
