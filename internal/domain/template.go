// internal/domain/template.go
package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// TimeOfDay is a wall-clock time without a date, e.g. the default start of a practice.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay accepts "HH:MM" in 24-hour format.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q, expected HH:MM: %w", s, err)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// TimeOfDayOf extracts the hour and minute of t.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}
}

func (t TimeOfDay) IsZero() bool {
	return t.Hour == 0 && t.Minute == 0
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*t = TimeOfDay{}
		return nil
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t TimeOfDay) MarshalYAML() (interface{}, error) {
	return t.String(), nil
}

func (t *TimeOfDay) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := ParseTimeOfDay(node.Value)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Template is a named, reusable Session blueprint. Templates change only by
// replacing the whole record under the same ID.
type Template struct {
	ID                     string    `json:"id" yaml:"id"`
	Name                   string    `json:"name" yaml:"name"`
	Sections               []string  `json:"sections" yaml:"sections"`
	Intensity              float64   `json:"intensity" yaml:"intensity"`
	LiveMinutes            int       `json:"liveMinutes" yaml:"liveMinutes"`
	IncludesResistanceWork bool      `json:"includesResistanceWork" yaml:"includesResistanceWork"`
	DefaultTime            TimeOfDay `json:"defaultTime" yaml:"defaultTime"`
}

// Validate reports whether the template can be stored: it needs a name and at least one section.
func (t Template) Validate() bool {
	return t.Name != "" && len(t.Sections) > 0
}
