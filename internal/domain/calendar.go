// internal/domain/calendar.go
package domain

import (
	"fmt"
	"strings"
	"time"
)

// Calendar is the date-math collaborator every day-keyed operation goes through.
// Location decides where a "day" begins and ends; WeekStart decides week grouping
// for week statistics. Both come from configuration, never from the host locale.
type Calendar struct {
	Location  *time.Location
	WeekStart time.Weekday
}

// DateComponents mirrors the calendar fields the rest of the code reads.
type DateComponents struct {
	Year   int
	Month  time.Month
	Day    int
	Hour   int
	Minute int
}

// DefaultCalendar uses the host time zone with Sunday-start weeks.
func DefaultCalendar() Calendar {
	return Calendar{Location: time.Local, WeekStart: time.Sunday}
}

// NewCalendar builds a Calendar from configuration strings.
// timezone is an IANA name ("Europe/Oslo"), "Local" or "UTC"; weekStart is a weekday name.
func NewCalendar(timezone, weekStart string) (Calendar, error) {
	loc := time.Local
	if timezone != "" && !strings.EqualFold(timezone, "local") {
		l, err := time.LoadLocation(timezone)
		if err != nil {
			return Calendar{}, fmt.Errorf("load calendar timezone %q: %w", timezone, err)
		}
		loc = l
	}
	start := time.Sunday
	if weekStart != "" {
		wd, err := ParseWeekday(weekStart)
		if err != nil {
			return Calendar{}, err
		}
		start = wd
	}
	return Calendar{Location: loc, WeekStart: start}, nil
}

// ParseWeekday accepts full or three-letter English weekday names, case-insensitive.
func ParseWeekday(s string) (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		full := strings.ToLower(wd.String())
		if name == full || name == full[:3] {
			return wd, nil
		}
	}
	return time.Sunday, fmt.Errorf("unknown weekday %q", s)
}

func (c Calendar) loc() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}

// In converts t into the calendar's location.
func (c Calendar) In(t time.Time) time.Time {
	return t.In(c.loc())
}

// Components returns the year/month/day/hour/minute of t in the calendar's location.
func (c Calendar) Components(t time.Time) DateComponents {
	lt := c.In(t)
	return DateComponents{
		Year:   lt.Year(),
		Month:  lt.Month(),
		Day:    lt.Day(),
		Hour:   lt.Hour(),
		Minute: lt.Minute(),
	}
}

// Date builds a timestamp in the calendar's location.
func (c Calendar) Date(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, c.loc())
}

// Merge takes the calendar day from day and the hour and minute from tod.
// Seconds and below are dropped.
func (c Calendar) Merge(day, tod time.Time) time.Time {
	d := c.Components(day)
	t := c.Components(tod)
	return c.Date(d.Year, d.Month, d.Day, t.Hour, t.Minute)
}

// MergeTimeOfDay is Merge with an explicit wall-clock time.
func (c Calendar) MergeTimeOfDay(day time.Time, tod TimeOfDay) time.Time {
	d := c.Components(day)
	return c.Date(d.Year, d.Month, d.Day, tod.Hour, tod.Minute)
}

// StartOfDay returns midnight of t's day.
func (c Calendar) StartOfDay(t time.Time) time.Time {
	d := c.Components(t)
	return c.Date(d.Year, d.Month, d.Day, 0, 0)
}

// SameDay reports whether a and b fall on the same calendar day.
func (c Calendar) SameDay(a, b time.Time) bool {
	x, y := c.Components(a), c.Components(b)
	return x.Year == y.Year && x.Month == y.Month && x.Day == y.Day
}

// DayBefore reports whether a's day is strictly earlier than b's day.
func (c Calendar) DayBefore(a, b time.Time) bool {
	return c.StartOfDay(a).Before(c.StartOfDay(b))
}

// DayKey formats t's day as YYYY-MM-DD.
func (c Calendar) DayKey(t time.Time) string {
	return c.In(t).Format("2006-01-02")
}

// ParseDay parses YYYY-MM-DD as midnight in the calendar's location.
func (c Calendar) ParseDay(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, c.loc())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day %q, expected YYYY-MM-DD: %w", s, err)
	}
	return t, nil
}

// ParseMonth parses YYYY-MM as the first day of that month.
func (c Calendar) ParseMonth(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01", s, c.loc())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q, expected YYYY-MM: %w", s, err)
	}
	return t, nil
}

// AddDays keeps the wall-clock time across DST changes.
func (c Calendar) AddDays(t time.Time, n int) time.Time {
	lt := c.In(t)
	return time.Date(lt.Year(), lt.Month(), lt.Day()+n, lt.Hour(), lt.Minute(), lt.Second(), lt.Nanosecond(), c.loc())
}

func (c Calendar) AddWeeks(t time.Time, n int) time.Time {
	return c.AddDays(t, 7*n)
}

// AddMonths clamps the day to the end of the target month, so Jan 31 + 1 month is Feb 28 (or 29).
func (c Calendar) AddMonths(t time.Time, n int) time.Time {
	lt := c.In(t)
	first := time.Date(lt.Year(), lt.Month()+time.Month(n), 1, 0, 0, 0, 0, c.loc())
	day := lt.Day()
	if last := daysIn(first.Year(), first.Month()); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, lt.Hour(), lt.Minute(), lt.Second(), lt.Nanosecond(), c.loc())
}

// StartOfWeek returns midnight of the first day of t's week.
func (c Calendar) StartOfWeek(t time.Time) time.Time {
	day := c.StartOfDay(t)
	offset := (int(day.Weekday()) - int(c.WeekStart) + 7) % 7
	return c.AddDays(day, -offset)
}

// WeekOfYear numbers weeks from the one containing January 1st.
// The returned year is the year that week belongs to, which differs from the
// calendar year for the last days of December.
func (c Calendar) WeekOfYear(t time.Time) (year, week int) {
	sw := c.StartOfWeek(t)
	year = c.AddDays(sw, 6).Year()
	firstWeek := c.StartOfWeek(c.Date(year, time.January, 1, 0, 0))
	return year, civilDaysBetween(firstWeek, sw)/7 + 1
}

// SameWeek reports whether a and b fall in the same week.
func (c Calendar) SameWeek(a, b time.Time) bool {
	ya, wa := c.WeekOfYear(a)
	yb, wb := c.WeekOfYear(b)
	return ya == yb && wa == wb
}

// SameMonth reports whether a and b share calendar month and year.
func (c Calendar) SameMonth(a, b time.Time) bool {
	x, y := c.Components(a), c.Components(b)
	return x.Year == y.Year && x.Month == y.Month
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// civilDaysBetween counts calendar days from a to b, ignoring DST offsets.
func civilDaysBetween(a, b time.Time) int {
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}
