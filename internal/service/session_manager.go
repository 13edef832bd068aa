package service

import (
	"coachplus/coachlog/internal/domain"
	"coachplus/coachlog/internal/repository"
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"
)

// --- Error Definitions ---
var (
	ErrInvalidSections = errors.New("sections must not be empty")
	ErrInvalidKind     = errors.New("invalid session kind")
	ErrSessionNotFound = errors.New("no session for that day")
)

// CreateSessionInput is everything a caller supplies for one day's entry.
// A zero Time means the configured default time of day.
type CreateSessionInput struct {
	Day                    time.Time
	Time                   time.Time
	Kind                   domain.Kind
	Sections               []string
	Intensity              float64
	IsFromTemplate         bool
	IncludesResistanceWork bool
	LiveMinutes            int
	Competition            *domain.CompetitionInfo
}

// RecurringInput describes a series of identical entries from Start through End.
type RecurringInput struct {
	Start                  time.Time
	End                    time.Time
	Pattern                domain.RecurrencePattern
	Time                   time.Time
	Kind                   domain.Kind
	Sections               []string
	Intensity              float64
	IncludesResistanceWork bool
	LiveMinutes            int
	Competition            *domain.CompetitionInfo
}

// RecurrenceReport says exactly how far a recurring batch got. A failure stops
// the batch; sessions created before it stay saved.
type RecurrenceReport struct {
	Created      []domain.Session `json:"created"`
	Failed       []time.Time      `json:"failed,omitempty"`
	NotAttempted []time.Time      `json:"notAttempted,omitempty"`
}

// Complete reports whether every generated date was saved.
func (r RecurrenceReport) Complete() bool {
	return len(r.Failed) == 0 && len(r.NotAttempted) == 0
}

// SessionManager is the only writer-side entry point for sessions.
type SessionManager interface {
	CreateSession(ctx context.Context, in CreateSessionInput) (domain.Session, error)
	CreateRecurringSessions(ctx context.Context, in RecurringInput) (RecurrenceReport, error)
	CreateFromTemplate(ctx context.Context, tpl domain.Template, day time.Time) (domain.Session, error)
	SessionForDay(ctx context.Context, day time.Time) (domain.Session, bool)
	DeleteSession(ctx context.Context, day time.Time) error
	ListSessions(ctx context.Context) []domain.Session
	LastError() error
}

type sessionManager struct {
	cal         domain.Calendar
	store       repository.SessionStore
	defaultTime domain.TimeOfDay
}

// NewSessionManager creates a SessionManager writing through store.
func NewSessionManager(cal domain.Calendar, store repository.SessionStore, defaultTime domain.TimeOfDay) SessionManager {
	return &sessionManager{
		cal:         cal,
		store:       store,
		defaultTime: defaultTime,
	}
}

// CreateSession validates the input, builds the Session and saves it, replacing
// whatever was stored for that day. Nothing is written when validation fails.
func (m *sessionManager) CreateSession(ctx context.Context, in CreateSessionInput) (domain.Session, error) {
	sections, err := m.resolveSections(in.Kind, in.Sections, in.Competition)
	if err != nil {
		return domain.Session{}, err
	}

	session := domain.NewSession(m.cal, domain.SessionParams{
		Day:                    in.Day,
		Time:                   m.timeFor(in.Day, in.Time),
		Kind:                   in.Kind,
		Sections:               sections,
		Intensity:              in.Intensity,
		IsFromTemplate:         in.IsFromTemplate,
		IncludesResistanceWork: in.IncludesResistanceWork,
		LiveMinutes:            in.LiveMinutes,
		Competition:            in.Competition,
	})

	if err := m.store.Save(ctx, session); err != nil {
		return domain.Session{}, err
	}
	return session, nil
}

// CreateRecurringSessions creates one session per generated date and stops at
// the first failure. The report lists what was created, the date that failed
// and the dates never attempted.
func (m *sessionManager) CreateRecurringSessions(ctx context.Context, in RecurringInput) (RecurrenceReport, error) {
	// Validate once up front so a bad request writes nothing.
	if _, err := m.resolveSections(in.Kind, in.Sections, in.Competition); err != nil {
		return RecurrenceReport{}, err
	}

	dates := domain.Expand(m.cal, in.Start, in.End, in.Pattern)
	report := RecurrenceReport{Created: make([]domain.Session, 0, len(dates))}
	for i, day := range dates {
		session, err := m.CreateSession(ctx, CreateSessionInput{
			Day:                    day,
			Time:                   in.Time,
			Kind:                   in.Kind,
			Sections:               in.Sections,
			Intensity:              in.Intensity,
			IncludesResistanceWork: in.IncludesResistanceWork,
			LiveMinutes:            in.LiveMinutes,
			Competition:            in.Competition,
		})
		if err != nil {
			report.Failed = []time.Time{day}
			report.NotAttempted = append(report.NotAttempted, dates[i+1:]...)
			log.Printf("WARN: recurring batch stopped at %s after %d of %d sessions: %v",
				m.cal.DayKey(day), len(report.Created), len(dates), err)
			return report, fmt.Errorf("create session for %s: %w", m.cal.DayKey(day), err)
		}
		report.Created = append(report.Created, session)
	}
	return report, nil
}

// CreateFromTemplate logs a practice built from tpl on day, at the template's
// default time or the configured one.
func (m *sessionManager) CreateFromTemplate(ctx context.Context, tpl domain.Template, day time.Time) (domain.Session, error) {
	if !tpl.Validate() {
		return domain.Session{}, ErrInvalidTemplate
	}
	tod := tpl.DefaultTime
	if tod.IsZero() {
		tod = m.defaultTime
	}
	return m.CreateSession(ctx, CreateSessionInput{
		Day:                    day,
		Time:                   m.cal.MergeTimeOfDay(day, tod),
		Kind:                   domain.KindSession,
		Sections:               tpl.Sections,
		Intensity:              tpl.Intensity,
		IsFromTemplate:         true,
		IncludesResistanceWork: tpl.IncludesResistanceWork,
		LiveMinutes:            tpl.LiveMinutes,
	})
}

func (m *sessionManager) SessionForDay(ctx context.Context, day time.Time) (domain.Session, bool) {
	return m.store.Get(ctx, day)
}

func (m *sessionManager) DeleteSession(ctx context.Context, day time.Time) error {
	return m.store.Delete(ctx, day)
}

// ListSessions returns every stored session, oldest first.
func (m *sessionManager) ListSessions(ctx context.Context) []domain.Session {
	sessions := m.store.Load(ctx)
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].Date.Before(sessions[j].Date)
	})
	return sessions
}

func (m *sessionManager) LastError() error {
	return m.store.LastError()
}

// resolveSections returns the sections to store. Competition metadata without
// sections is rendered into display sections; rest days fall back to their default.
func (m *sessionManager) resolveSections(kind domain.Kind, sections []string, comp *domain.CompetitionInfo) ([]string, error) {
	if !kind.Valid() {
		return nil, ErrInvalidKind
	}
	if len(sections) > 0 {
		return sections, nil
	}
	if kind == domain.KindCompetition && comp != nil && comp.Name != "" {
		return domain.CompetitionSections(*comp), nil
	}
	if kind == domain.KindRest {
		return kind.DefaultSections(), nil
	}
	return nil, ErrInvalidSections
}

func (m *sessionManager) timeFor(day, t time.Time) time.Time {
	if t.IsZero() {
		return m.cal.MergeTimeOfDay(day, m.defaultTime)
	}
	return t
}
