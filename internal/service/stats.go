package service

import (
	"coachplus/coachlog/internal/domain"
	"coachplus/coachlog/internal/repository"
	"context"
	"time"
)

// Stats is a rollup of the sessions in one week or month.
type Stats struct {
	Sessions         int     `json:"sessions"`
	Rest             int     `json:"rest"`
	Competitions     int     `json:"competitions"`
	ResistanceWork   int     `json:"resistanceWork"`
	LiveMinutes      int     `json:"liveMinutes"`
	AverageIntensity float64 `json:"averageIntensity"`
}

// StatsAggregator computes period rollups. It holds no state beyond the
// calendar and is safe for concurrent use.
type StatsAggregator struct {
	cal domain.Calendar
}

func NewStatsAggregator(cal domain.Calendar) StatsAggregator {
	return StatsAggregator{cal: cal}
}

// MonthStats rolls up the sessions in anchor's calendar month.
func (a StatsAggregator) MonthStats(sessions []domain.Session, anchor time.Time) Stats {
	inMonth := filterSessions(sessions, func(s domain.Session) bool {
		return a.cal.SameMonth(s.Date, anchor)
	})
	stats, intensitySum, practices := tally(inMonth)
	stats.AverageIntensity = intensitySum / float64(max(practices, 1))
	return stats
}

// WeekStats rolls up the sessions in anchor's week.
func (a StatsAggregator) WeekStats(sessions []domain.Session, anchor time.Time) Stats {
	inWeek := filterSessions(sessions, func(s domain.Session) bool {
		return a.cal.SameWeek(s.Date, anchor)
	})
	stats, intensitySum, practices := tally(inWeek)
	if practices == 0 {
		stats.AverageIntensity = 0
	} else {
		stats.AverageIntensity = intensitySum / float64(practices)
	}
	return stats
}

// tally counts one period. Competitions are unique by name; entries without a
// parseable name share the empty key. Live minutes sum over every kind, while
// intensity only covers practices.
func tally(sessions []domain.Session) (stats Stats, intensitySum float64, practices int) {
	competitions := make(map[string]struct{})
	for _, s := range sessions {
		switch s.Kind {
		case domain.KindSession:
			stats.Sessions++
			intensitySum += s.Intensity
			practices++
		case domain.KindRest:
			stats.Rest++
		case domain.KindCompetition:
			name, _ := s.CompetitionName()
			competitions[name] = struct{}{}
		}
		if s.IncludesResistanceWork {
			stats.ResistanceWork++
		}
		stats.LiveMinutes += s.LiveMinutes
	}
	stats.Competitions = len(competitions)
	return stats, intensitySum, practices
}

func filterSessions(sessions []domain.Session, keep func(domain.Session) bool) []domain.Session {
	var out []domain.Session
	for _, s := range sessions {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}

// StatsService reads the stored sessions and rolls them up for a period.
type StatsService interface {
	Week(ctx context.Context, anchor time.Time) Stats
	Month(ctx context.Context, anchor time.Time) Stats
}

type statsService struct {
	store      repository.SessionStore
	aggregator StatsAggregator
}

func NewStatsService(cal domain.Calendar, store repository.SessionStore) StatsService {
	return &statsService{store: store, aggregator: NewStatsAggregator(cal)}
}

func (s *statsService) Week(ctx context.Context, anchor time.Time) Stats {
	return s.aggregator.WeekStats(s.store.Load(ctx), anchor)
}

func (s *statsService) Month(ctx context.Context, anchor time.Time) Stats {
	return s.aggregator.MonthStats(s.store.Load(ctx), anchor)
}
