package bootstrap

import (
	"coachplus/coachlog/internal/config"
	"coachplus/coachlog/internal/domain"
	"coachplus/coachlog/internal/service"
	"context"
	"path/filepath"
	"testing"
	"time"
)

func testConfig(t *testing.T, backend string) config.Config {
	t.Helper()
	return config.Config{
		Storage: config.StorageConfig{
			Backend: backend,
			SQLite:  config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "coachlog.db")},
		},
		Calendar: config.CalendarConfig{Timezone: "UTC", WeekStart: "monday"},
		Sessions: config.SessionsConfig{DefaultTime: "15:30"},
	}
}

func TestNewWiresSQLiteBackend(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t, config.BackendSQLite)

	app, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if app.Calendar.WeekStart != time.Monday {
		t.Fatalf("week start = %v", app.Calendar.WeekStart)
	}
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	if _, err := app.Sessions.CreateSession(ctx, service.CreateSessionInput{Day: day, Kind: domain.KindRest}); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if err := app.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// A second app on the same file sees the session.
	reopened, err := New(cfg)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close(ctx)
	s, ok := reopened.Sessions.SessionForDay(ctx, day)
	if !ok || s.Date.Hour() != 15 || s.Date.Minute() != 30 {
		t.Fatalf("reopened session = %+v, %v", s, ok)
	}
}

func TestNewRejectsBadSettings(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"timezone", func(c *config.Config) { c.Calendar.Timezone = "Mars/Olympus" }},
		{"week start", func(c *config.Config) { c.Calendar.WeekStart = "someday" }},
		{"default time", func(c *config.Config) { c.Sessions.DefaultTime = "late" }},
		{"backend", func(c *config.Config) { c.Storage.Backend = "floppy" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t, config.BackendMemory)
			tt.mutate(&cfg)
			if _, err := New(cfg); err == nil {
				t.Fatalf("expected an error")
			}
		})
	}
}

func TestServicesShareOneBackend(t *testing.T) {
	ctx := context.Background()
	app, err := New(testConfig(t, config.BackendMemory))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := app.Templates.Create(ctx, domain.Template{Name: "Speed", Sections: []string{"Sprints"}}); err != nil {
		t.Fatal(err)
	}
	snap := app.Backup.Export(ctx)
	if len(snap.Templates) != 1 {
		t.Fatalf("backup does not see templates: %+v", snap)
	}
	if svc := app.Services(); svc.Templates == nil || svc.Stats == nil {
		t.Fatalf("incomplete api services")
	}
}
