package domain

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"
)

func TestNewSessionSubstitutesDefaultSections(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		want []string
	}{
		{"rest", KindRest, []string{"Rest Day"}},
		{"session", KindSession, []string{""}},
		{"competition", KindCompetition, []string{""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession(utcCal, SessionParams{Day: day(2024, 3, 1), Time: day(2024, 3, 1), Kind: tt.kind})
			if !reflect.DeepEqual(s.Sections, tt.want) {
				t.Fatalf("sections = %q, want %q", s.Sections, tt.want)
			}
		})
	}
}

func TestNewSessionMergesDayAndTime(t *testing.T) {
	s := NewSession(utcCal, SessionParams{
		Day:      time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		Time:     time.Date(2000, 6, 6, 15, 30, 0, 0, time.UTC),
		Kind:     KindSession,
		Sections: []string{"Drills"},
	})
	want := time.Date(2024, 3, 1, 15, 30, 0, 0, time.UTC)
	if !s.Date.Equal(want) {
		t.Fatalf("date = %v, want %v", s.Date, want)
	}
	if s.ID == "" {
		t.Fatalf("id must be assigned")
	}
}

func TestNewSessionClampsInputs(t *testing.T) {
	s := NewSession(utcCal, SessionParams{Kind: KindSession, Sections: []string{"x"}, Intensity: 1.7, LiveMinutes: -5})
	if s.Intensity != 1 {
		t.Errorf("intensity = %v, want 1", s.Intensity)
	}
	if s.LiveMinutes != 0 {
		t.Errorf("live minutes = %d, want 0", s.LiveMinutes)
	}
}

func TestValidityAndContent(t *testing.T) {
	tests := []struct {
		name        string
		sections    []string
		wantValid   bool
		wantContent bool
	}{
		{"empty", nil, false, false},
		{"blank summary", []string{""}, false, false},
		{"blank summary with blocks", []string{"", "Warmup: jog"}, false, true},
		{"summary only", []string{"Drills"}, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Session{Sections: tt.sections}
			if s.IsValid() != tt.wantValid {
				t.Errorf("IsValid = %v, want %v", s.IsValid(), tt.wantValid)
			}
			if s.HasContent() != tt.wantContent {
				t.Errorf("HasContent = %v, want %v", s.HasContent(), tt.wantContent)
			}
		})
	}
}

func TestCompetitionName(t *testing.T) {
	structured := Session{Kind: KindCompetition, Competition: &CompetitionInfo{Name: "Regionals"}, Sections: []string{"Competition: Other"}}
	if name, ok := structured.CompetitionName(); !ok || name != "Regionals" {
		t.Fatalf("structured name = %q, %v", name, ok)
	}
	prefixed := Session{Kind: KindCompetition, Sections: []string{"Summary", "Competition: Nationals"}}
	if name, ok := prefixed.CompetitionName(); !ok || name != "Nationals" {
		t.Fatalf("prefixed name = %q, %v", name, ok)
	}
	unnamed := Session{Kind: KindCompetition, Sections: []string{"Meet"}}
	if _, ok := unnamed.CompetitionName(); ok {
		t.Fatalf("expected no competition name")
	}
}

func TestCompetitionSections(t *testing.T) {
	got := CompetitionSections(CompetitionInfo{Name: "Nationals", Results: "https://results.example"}, "Placed 3rd")
	want := []string{"Competition: Nationals", "Results: https://results.example", "Placed 3rd"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("sections = %q, want %q", got, want)
	}
}

func TestDisplayHelpers(t *testing.T) {
	rest := Session{Kind: KindRest, Intensity: 0.4}
	if rest.DisplayIntensity() != "" || rest.DisplayTitle() != "Rest Day" {
		t.Fatalf("unexpected rest display %q %q", rest.DisplayIntensity(), rest.DisplayTitle())
	}
	practice := Session{Kind: KindSession, Sections: []string{"Drills", "Warmup: jog"}, Intensity: 0.75, LiveMinutes: 45, IncludesResistanceWork: true}
	if practice.DisplayIntensity() != "75%" {
		t.Errorf("intensity = %q", practice.DisplayIntensity())
	}
	if practice.DisplaySummary() != "Warmup: jog" {
		t.Errorf("summary = %q", practice.DisplaySummary())
	}
	if practice.DisplayDetails() != "45min live • Resistance" {
		t.Errorf("details = %q", practice.DisplayDetails())
	}
	comp := Session{Kind: KindCompetition, Sections: []string{"Competition: Open"}}
	if comp.DisplayTitle() != "Open" || comp.DisplaySummary() != "No details" {
		t.Errorf("competition display = %q / %q", comp.DisplayTitle(), comp.DisplaySummary())
	}
}

func TestSessionJSONRoundTrip(t *testing.T) {
	in := NewSession(utcCal, SessionParams{
		Day:                    day(2024, 3, 1),
		Time:                   time.Date(0, 1, 1, 6, 45, 0, 0, time.UTC),
		Kind:                   KindCompetition,
		Sections:               CompetitionSections(CompetitionInfo{Name: "Open"}),
		Intensity:              0.8,
		IsFromTemplate:         true,
		IncludesResistanceWork: true,
		LiveMinutes:            30,
		Competition:            &CompetitionInfo{Name: "Open"},
	})
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out Session
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !out.Date.Equal(in.Date) {
		t.Fatalf("date = %v, want %v", out.Date, in.Date)
	}
	out.Date = in.Date
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("round trip mismatch:\n in=%+v\nout=%+v", in, out)
	}
}
