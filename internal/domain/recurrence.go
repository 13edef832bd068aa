// internal/domain/recurrence.go
package domain

import (
	"fmt"
	"strings"
	"time"
)

// RecurrencePattern is the step used to expand one entry into a series.
type RecurrencePattern string

const (
	RecurrenceNone     RecurrencePattern = "none"
	RecurrenceDaily    RecurrencePattern = "daily"
	RecurrenceWeekly   RecurrencePattern = "weekly"
	RecurrenceBiweekly RecurrencePattern = "biweekly"
	RecurrenceMonthly  RecurrencePattern = "monthly"
)

// ParseRecurrencePattern accepts the pattern names; an empty string means none.
func ParseRecurrencePattern(s string) (RecurrencePattern, error) {
	p := RecurrencePattern(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case "":
		return RecurrenceNone, nil
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceBiweekly, RecurrenceMonthly:
		return p, nil
	}
	return "", fmt.Errorf("unknown recurrence pattern %q", s)
}

// Next returns the occurrence after t. ok is false for RecurrenceNone.
func (p RecurrencePattern) Next(cal Calendar, t time.Time) (next time.Time, ok bool) {
	switch p {
	case RecurrenceDaily:
		return cal.AddDays(t, 1), true
	case RecurrenceWeekly:
		return cal.AddWeeks(t, 1), true
	case RecurrenceBiweekly:
		return cal.AddWeeks(t, 2), true
	case RecurrenceMonthly:
		return cal.AddMonths(t, 1), true
	}
	return time.Time{}, false
}

// Expand lists start followed by each next occurrence whose day is not after end's day.
// start is always included, even when end precedes it.
func Expand(cal Calendar, start, end time.Time, p RecurrencePattern) []time.Time {
	dates := []time.Time{start}
	current := start
	for {
		next, ok := p.Next(cal, current)
		if !ok || cal.DayBefore(end, next) {
			return dates
		}
		dates = append(dates, next)
		current = next
	}
}
