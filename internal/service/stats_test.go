package service

import (
	"coachplus/coachlog/internal/domain"
	"coachplus/coachlog/internal/repository/memory"
	"context"
	"math"
	"testing"
	"time"
)

func entry(d time.Time, kind domain.Kind, intensity float64, minutes int, resistance bool, sections ...string) domain.Session {
	return domain.NewSession(testCal, domain.SessionParams{
		Day:                    d,
		Time:                   d,
		Kind:                   kind,
		Sections:               sections,
		Intensity:              intensity,
		LiveMinutes:            minutes,
		IncludesResistanceWork: resistance,
	})
}

func TestStatsEmptyCollection(t *testing.T) {
	agg := NewStatsAggregator(testCal)
	anchor := day(2024, 3, 13)
	for name, got := range map[string]Stats{
		"month": agg.MonthStats(nil, anchor),
		"week":  agg.WeekStats(nil, anchor),
	} {
		if got != (Stats{}) || math.IsNaN(got.AverageIntensity) {
			t.Errorf("%s stats on empty collection = %+v", name, got)
		}
	}
}

func TestMonthStats(t *testing.T) {
	sessions := []domain.Session{
		entry(day(2024, 3, 1), domain.KindSession, 0.4, 30, true, "Drills"),
		entry(day(2024, 3, 2), domain.KindSession, 0.8, 45, false, "Scrimmage"),
		entry(day(2024, 3, 3), domain.KindRest, 0, 10, false),
		entry(day(2024, 3, 9), domain.KindCompetition, 0.9, 60, false, "Competition: City Open", "Results: 2nd"),
		entry(day(2024, 3, 16), domain.KindCompetition, 0.5, 0, true, "Competition: City Open"),
		entry(day(2024, 3, 23), domain.KindCompetition, 0.5, 0, false, "Friendly"),
		entry(day(2024, 3, 24), domain.KindCompetition, 0.5, 0, false, "Scrimmage vs B"),
		entry(day(2024, 4, 1), domain.KindSession, 1, 100, true, "Next month"),
	}

	got := NewStatsAggregator(testCal).MonthStats(sessions, day(2024, 3, 20))
	want := Stats{
		Sessions: 2,
		Rest:     1,
		// "City Open" once plus one shared entry for the unnamed competitions.
		Competitions:     2,
		ResistanceWork:   2,
		LiveMinutes:      145,
		AverageIntensity: 0.6,
	}
	if math.Abs(got.AverageIntensity-want.AverageIntensity) > 1e-9 {
		t.Errorf("average = %v, want %v", got.AverageIntensity, want.AverageIntensity)
	}
	got.AverageIntensity = want.AverageIntensity
	if got != want {
		t.Errorf("MonthStats = %+v, want %+v", got, want)
	}
}

func TestMonthStatsOnlyNonPracticeKinds(t *testing.T) {
	sessions := []domain.Session{
		entry(day(2024, 3, 3), domain.KindRest, 0, 0, false),
		entry(day(2024, 3, 9), domain.KindCompetition, 0.9, 0, false, "Competition: Open"),
	}
	got := NewStatsAggregator(testCal).MonthStats(sessions, day(2024, 3, 1))
	if got.AverageIntensity != 0 || got.Rest != 1 || got.Competitions != 1 {
		t.Fatalf("MonthStats = %+v", got)
	}
}

func TestWeekAndMonthFilterIndependently(t *testing.T) {
	// Sunday-start weeks: 2024-03-10..16 holds the anchor, 2024-03-06 is the week before.
	anchor := day(2024, 3, 13)
	sessions := []domain.Session{
		entry(day(2024, 3, 6), domain.KindSession, 0.2, 20, false, "Last week"),
		entry(day(2024, 3, 12), domain.KindSession, 0.6, 40, false, "This week"),
	}
	agg := NewStatsAggregator(testCal)

	month := agg.MonthStats(sessions, anchor)
	week := agg.WeekStats(sessions, anchor)
	if month.Sessions != 2 || month.LiveMinutes != 60 {
		t.Errorf("month = %+v", month)
	}
	if week.Sessions != 1 || week.LiveMinutes != 40 || week.AverageIntensity != 0.6 {
		t.Errorf("week = %+v", week)
	}
}

func TestWeekStatsAcrossYearBoundary(t *testing.T) {
	// Dec 31 2024 and Jan 2 2025 share the Sunday-start week beginning Dec 29.
	sessions := []domain.Session{
		entry(day(2024, 12, 31), domain.KindSession, 0.5, 0, false, "NYE"),
		entry(day(2025, 1, 2), domain.KindSession, 0.7, 0, false, "New year"),
	}
	got := NewStatsAggregator(testCal).WeekStats(sessions, day(2025, 1, 2))
	if got.Sessions != 2 {
		t.Fatalf("WeekStats = %+v", got)
	}
}

func TestWeekStatsRespectsWeekStart(t *testing.T) {
	monday := domain.Calendar{Location: time.UTC, WeekStart: time.Monday}
	// 2024-03-10 is a Sunday: same week as Monday the 4th for Monday-start calendars only.
	sessions := []domain.Session{entry(day(2024, 3, 10), domain.KindRest, 0, 0, false)}
	if got := NewStatsAggregator(monday).WeekStats(sessions, day(2024, 3, 4)); got.Rest != 1 {
		t.Errorf("monday-start week = %+v", got)
	}
	if got := NewStatsAggregator(testCal).WeekStats(sessions, day(2024, 3, 4)); got.Rest != 0 {
		t.Errorf("sunday-start week = %+v", got)
	}
}

func TestStatsServiceReadsStore(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSessionStore(testCal)
	if err := store.Save(ctx, entry(day(2024, 3, 12), domain.KindSession, 0.5, 30, true, "x")); err != nil {
		t.Fatal(err)
	}
	svc := NewStatsService(testCal, store)
	if got := svc.Week(ctx, day(2024, 3, 13)); got.Sessions != 1 || got.ResistanceWork != 1 {
		t.Errorf("Week = %+v", got)
	}
	if got := svc.Month(ctx, day(2024, 2, 13)); got != (Stats{}) {
		t.Errorf("Month for February = %+v", got)
	}
}
