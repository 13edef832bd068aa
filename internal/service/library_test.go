package service

import (
	"coachplus/coachlog/internal/domain"
	"coachplus/coachlog/internal/repository/kvstore"
	"coachplus/coachlog/internal/repository/memory"
	"context"
	"errors"
	"testing"
	"time"
)

func TestTemplateServiceLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := NewTemplateService(kvstore.NewTemplateStore(memory.NewBlobStore()))

	if _, err := svc.Create(ctx, domain.Template{Name: "No sections"}); !errors.Is(err, ErrInvalidTemplate) {
		t.Fatalf("expected ErrInvalidTemplate, got %v", err)
	}

	speed, err := svc.Create(ctx, domain.Template{Name: "Speed", Sections: []string{"Sprints"}, Intensity: 1.4})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if speed.ID == "" || speed.Intensity != 1 {
		t.Fatalf("expected id and clamped intensity, got %+v", speed)
	}
	if _, err := svc.Create(ctx, domain.Template{Name: "Agility", Sections: []string{"Ladders"}}); err != nil {
		t.Fatal(err)
	}

	replaced, err := svc.Replace(ctx, speed.ID, domain.Template{Name: "Speed II", Sections: []string{"Hills"}})
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if replaced.ID != speed.ID {
		t.Fatalf("replace changed the id")
	}
	if _, err := svc.Replace(ctx, "missing", domain.Template{Name: "x", Sections: []string{"y"}}); !errors.Is(err, ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}

	list := svc.List(ctx)
	if len(list) != 2 || list[0].Name != "Agility" || list[1].Name != "Speed II" {
		t.Fatalf("List = %+v", list)
	}

	if err := svc.Delete(ctx, speed.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, speed.ID); !errors.Is(err, ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound on second delete, got %v", err)
	}
	if err := svc.DeleteAll(ctx); err != nil || len(svc.List(ctx)) != 0 {
		t.Fatalf("DeleteAll left %d templates, err %v", len(svc.List(ctx)), err)
	}
}

func TestBlockServiceNewestFirst(t *testing.T) {
	ctx := context.Background()
	svc := &blockService{store: kvstore.NewBlockStore(memory.NewBlobStore())}
	clock := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}

	if _, err := svc.Save(ctx, "Warmup", "   "); !errors.Is(err, ErrInvalidBlock) {
		t.Fatalf("expected ErrInvalidBlock, got %v", err)
	}
	first, err := svc.Save(ctx, "Warmup", "jog 5min")
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.Save(ctx, "", "stretch")
	if err != nil {
		t.Fatal(err)
	}

	list := svc.List(ctx)
	if len(list) != 2 || list[0].ID != second.ID || list[1].ID != first.ID {
		t.Fatalf("List = %+v", list)
	}
	if err := svc.Delete(ctx, "nope"); !errors.Is(err, ErrBlockNotFound) {
		t.Fatalf("expected ErrBlockNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, first.ID); err != nil {
		t.Fatal(err)
	}
	if n := len(svc.List(ctx)); n != 1 {
		t.Fatalf("expected 1 block, got %d", n)
	}
}

func TestFocusServiceOnePerMonth(t *testing.T) {
	ctx := context.Background()
	svc := NewFocusService(testCal, kvstore.NewFocusStore(memory.NewBlobStore()))

	if _, err := svc.Save(ctx, day(2024, 3, 5), "", ""); !errors.Is(err, ErrInvalidFocus) {
		t.Fatalf("expected ErrInvalidFocus, got %v", err)
	}
	first, err := svc.Save(ctx, day(2024, 3, 5), "Build base", "")
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.Save(ctx, day(2024, 3, 28), "Build base", "Footwork")
	if err != nil {
		t.Fatal(err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected the month's entry to keep its id")
	}
	if _, err := svc.Save(ctx, day(2024, 1, 10), "Recover", ""); err != nil {
		t.Fatal(err)
	}

	got, ok := svc.ForMonth(ctx, day(2024, 3, 1))
	if !ok || got.Focus != "Footwork" {
		t.Fatalf("ForMonth = %+v, %v", got, ok)
	}
	if _, ok := svc.ForMonth(ctx, day(2024, 2, 1)); ok {
		t.Fatalf("expected no focus for February")
	}
	list := svc.List(ctx)
	if len(list) != 2 || list[0].Month != time.January || list[1].Month != time.March {
		t.Fatalf("List = %+v", list)
	}
}

func TestSearchService(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSessionStore(testCal)
	seed := []domain.Session{
		entry(day(2024, 3, 1), domain.KindSession, 0.5, 0, false, "Passing drills"),
		entry(day(2024, 3, 2), domain.KindCompetition, 0.9, 0, false, "Competition: Spring Cup", "Results: won DRILLS award"),
		entry(day(2024, 3, 3), domain.KindCompetition, 0.3, 0, false, "Competition: Friendly"),
		entry(day(2024, 3, 4), domain.KindRest, 0, 0, false),
	}
	for _, s := range seed {
		if err := store.Save(ctx, s); err != nil {
			t.Fatal(err)
		}
	}
	svc := NewSearchService(store)

	tests := []struct {
		name  string
		query SearchQuery
		want  []string
	}{
		{"everything newest first", SearchQuery{}, []string{"2024-03-04", "2024-03-03", "2024-03-02", "2024-03-01"}},
		{"case-insensitive text", SearchQuery{Text: "drills"}, []string{"2024-03-02", "2024-03-01"}},
		{"kind filter", SearchQuery{Kind: domain.KindCompetition}, []string{"2024-03-03", "2024-03-02"}},
		{"performance only filters competitions", SearchQuery{MinPerformance: 0.5}, []string{"2024-03-04", "2024-03-02", "2024-03-01"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, s := range svc.Search(ctx, tt.query) {
				got = append(got, testCal.DayKey(s.Date))
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}

	top := svc.TopCompetitions(ctx, 0.2)
	if len(top) != 2 || top[0].Intensity != 0.9 {
		t.Fatalf("TopCompetitions = %+v", top)
	}
}
