// internal/domain/focus.go
package domain

import "time"

// MonthlyFocus holds a coach's goals and focus for one calendar month.
// At most one exists per (Year, Month).
type MonthlyFocus struct {
	ID    string     `json:"id" yaml:"id"`
	Year  int        `json:"year" yaml:"year"`
	Month time.Month `json:"month" yaml:"month"`
	Goals string     `json:"goals" yaml:"goals"`
	Focus string     `json:"focus" yaml:"focus"`
}

func (f MonthlyFocus) Validate() bool {
	return f.Month >= time.January && f.Month <= time.December && f.Year > 0 && (f.Goals != "" || f.Focus != "")
}

// SameMonth reports whether the focus applies to the given year and month.
func (f MonthlyFocus) SameMonth(year int, month time.Month) bool {
	return f.Year == year && f.Month == month
}
