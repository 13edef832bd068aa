package kvstore

import (
	"coachplus/coachlog/internal/domain"
	"coachplus/coachlog/internal/repository/memory"
	"context"
	"testing"
	"time"
)

func TestTemplateStoreReplacesByID(t *testing.T) {
	ctx := context.Background()
	store := NewTemplateStore(memory.NewBlobStore())

	tpl := domain.Template{ID: "t1", Name: "Speed", Sections: []string{"Sprints"}, Intensity: 0.8}
	if err := store.Save(ctx, tpl); err != nil {
		t.Fatalf("save: %v", err)
	}
	tpl.Name = "Speed v2"
	if err := store.Save(ctx, tpl); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if err := store.Save(ctx, domain.Template{ID: "t2", Name: "Recovery", Sections: []string{"Stretch"}}); err != nil {
		t.Fatalf("save: %v", err)
	}

	all := store.Load(ctx)
	if len(all) != 2 {
		t.Fatalf("expected 2 templates, got %d", len(all))
	}
	for _, got := range all {
		if got.ID == "t1" && got.Name != "Speed v2" {
			t.Fatalf("expected replaced template, got %q", got.Name)
		}
	}

	if err := store.Delete(ctx, "t1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if all := store.Load(ctx); len(all) != 1 || all[0].ID != "t2" {
		t.Fatalf("unexpected templates after delete: %+v", all)
	}
}

func TestTemplateValidate(t *testing.T) {
	store := NewTemplateStore(memory.NewBlobStore())
	tests := []struct {
		name string
		tpl  domain.Template
		want bool
	}{
		{"empty name", domain.Template{Sections: []string{"x"}}, false},
		{"empty sections", domain.Template{Name: "x"}, false},
		{"complete", domain.Template{Name: "x", Sections: []string{"y"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := store.Validate(tt.tpl); got != tt.want {
				t.Fatalf("Validate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFocusStoreOnePerMonth(t *testing.T) {
	ctx := context.Background()
	store := NewFocusStore(memory.NewBlobStore())
	if err := store.Save(ctx, domain.MonthlyFocus{ID: "a", Year: 2024, Month: time.March, Goals: "first"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Save(ctx, domain.MonthlyFocus{ID: "b", Year: 2024, Month: time.March, Goals: "second"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Save(ctx, domain.MonthlyFocus{ID: "c", Year: 2025, Month: time.March, Goals: "next year"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, ok := store.Get(ctx, 2024, time.March)
	if !ok || got.Goals != "second" {
		t.Fatalf("expected replaced focus, got %+v ok=%v", got, ok)
	}
	if n := len(store.Load(ctx)); n != 2 {
		t.Fatalf("expected 2 focuses, got %d", n)
	}
}

func TestBlockStore(t *testing.T) {
	ctx := context.Background()
	store := NewBlockStore(memory.NewBlobStore())
	b := domain.NewBlock("Warmup", "jog", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	if err := store.Save(ctx, b); err != nil {
		t.Fatalf("save: %v", err)
	}
	if all := store.Load(ctx); len(all) != 1 || all[0].Format() != "Warmup: jog" {
		t.Fatalf("unexpected blocks %+v", all)
	}
	if err := store.Delete(ctx, b.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if n := len(store.Load(ctx)); n != 0 {
		t.Fatalf("expected no blocks, got %d", n)
	}
}
