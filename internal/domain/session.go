// internal/domain/session.go
package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Kind distinguishes the three kinds of day a coach logs.
type Kind string

const (
	KindSession     Kind = "session"
	KindCompetition Kind = "competition"
	KindRest        Kind = "rest"
)

// Section prefixes used when competition details are flattened into display strings.
const (
	CompetitionPrefix = "Competition: "
	ResultsPrefix     = "Results: "
	restDayTitle      = "Rest Day"
)

// ParseKind maps a user-supplied kind name to a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", fmt.Errorf("unknown session kind %q", s)
	}
	return k, nil
}

func (k Kind) Valid() bool {
	switch k {
	case KindSession, KindCompetition, KindRest:
		return true
	}
	return false
}

// DefaultSections is what a Session of this kind holds when no content is given.
func (k Kind) DefaultSections() []string {
	if k == KindRest {
		return []string{restDayTitle}
	}
	return []string{""}
}

func (k Kind) DisplayName() string {
	switch k {
	case KindCompetition:
		return "Competition"
	case KindRest:
		return restDayTitle
	default:
		return "Practice"
	}
}

// CompetitionInfo carries competition metadata as fields instead of section prefixes.
type CompetitionInfo struct {
	Name    string `json:"name" yaml:"name"`
	Results string `json:"results,omitempty" yaml:"results,omitempty"`
}

// Session is one calendar day's record.
type Session struct {
	ID                     string           `json:"id" yaml:"id"`
	Date                   time.Time        `json:"date" yaml:"date"`
	Kind                   Kind             `json:"kind" yaml:"kind"`
	Sections               []string         `json:"sections" yaml:"sections"`
	Intensity              float64          `json:"intensity" yaml:"intensity"` // 0..1; for competitions a performance rating
	IsFromTemplate         bool             `json:"isFromTemplate" yaml:"isFromTemplate"`
	IncludesResistanceWork bool             `json:"includesResistanceWork" yaml:"includesResistanceWork"`
	LiveMinutes            int              `json:"liveMinutes" yaml:"liveMinutes"`
	Competition            *CompetitionInfo `json:"competition,omitempty" yaml:"competition,omitempty"`
}

// SessionParams holds everything needed to build a Session.
type SessionParams struct {
	Day                    time.Time
	Time                   time.Time
	Kind                   Kind
	Sections               []string
	Intensity              float64
	IsFromTemplate         bool
	IncludesResistanceWork bool
	LiveMinutes            int
	Competition            *CompetitionInfo
}

// NewSession builds a Session with a fresh ID. The stored date is always the
// merge of p.Day's calendar day and p.Time's hour and minute.
func NewSession(cal Calendar, p SessionParams) Session {
	sections := p.Sections
	if len(sections) == 0 {
		sections = p.Kind.DefaultSections()
	} else {
		sections = append([]string(nil), sections...)
	}
	minutes := p.LiveMinutes
	if minutes < 0 {
		minutes = 0
	}
	var comp *CompetitionInfo
	if p.Competition != nil {
		c := *p.Competition
		comp = &c
	}
	return Session{
		ID:                     uuid.New().String(),
		Date:                   cal.Merge(p.Day, p.Time),
		Kind:                   p.Kind,
		Sections:               sections,
		Intensity:              ClampIntensity(p.Intensity),
		IsFromTemplate:         p.IsFromTemplate,
		IncludesResistanceWork: p.IncludesResistanceWork,
		LiveMinutes:            minutes,
		Competition:            comp,
	}
}

// ClampIntensity keeps an intensity inside [0,1].
func ClampIntensity(v float64) float64 {
	switch {
	case v != v: // NaN
		return 0
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// IsValid: sections non-empty and the summary (first section) non-empty.
func (s Session) IsValid() bool {
	return len(s.Sections) > 0 && s.Sections[0] != ""
}

// HasContent reports whether anything beyond an empty summary was entered.
func (s Session) HasContent() bool {
	return len(s.Sections) > 1 || (len(s.Sections) == 1 && s.Sections[0] != "")
}

// CompetitionName prefers the structured name and falls back to the first
// "Competition: " section. ok is false when neither is present.
func (s Session) CompetitionName() (name string, ok bool) {
	if s.Competition != nil && s.Competition.Name != "" {
		return s.Competition.Name, true
	}
	for _, section := range s.Sections {
		if strings.HasPrefix(section, CompetitionPrefix) {
			return strings.TrimPrefix(section, CompetitionPrefix), true
		}
	}
	return "", false
}

// CompetitionSections renders competition metadata into display sections,
// followed by any extra detail lines.
func CompetitionSections(info CompetitionInfo, details ...string) []string {
	sections := []string{CompetitionPrefix + info.Name}
	if info.Results != "" {
		sections = append(sections, ResultsPrefix+info.Results)
	}
	return append(sections, details...)
}

func (s Session) DisplayTitle() string {
	switch s.Kind {
	case KindRest:
		return restDayTitle
	case KindCompetition:
		if name, ok := s.CompetitionName(); ok {
			return name
		}
		if len(s.Sections) > 0 {
			return s.Sections[0]
		}
		return "Competition"
	default:
		if len(s.Sections) > 0 {
			return s.Sections[0]
		}
		return "Practice"
	}
}

func (s Session) DisplaySummary() string {
	if s.Kind == KindRest {
		return restDayTitle
	}
	var details string
	if len(s.Sections) > 1 {
		details = strings.Join(s.Sections[1:], "\n")
	}
	if s.Kind == KindCompetition && details == "" {
		return "No details"
	}
	return details
}

// DisplayIntensity renders the intensity as a whole percentage; rest days have none.
func (s Session) DisplayIntensity() string {
	if s.Kind == KindRest {
		return ""
	}
	return fmt.Sprintf("%d%%", int(s.Intensity*100))
}

func (s Session) DisplayDetails() string {
	var details []string
	if s.LiveMinutes > 0 {
		details = append(details, fmt.Sprintf("%dmin live", s.LiveMinutes))
	}
	if s.IncludesResistanceWork {
		details = append(details, "Resistance")
	}
	return strings.Join(details, " • ")
}
