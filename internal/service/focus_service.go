package service

import (
	"coachplus/coachlog/internal/domain"
	"coachplus/coachlog/internal/repository"
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidFocus = errors.New("monthly focus needs goals or a focus")

// FocusService keeps one set of goals per month.
type FocusService interface {
	Save(ctx context.Context, anchor time.Time, goals, focus string) (domain.MonthlyFocus, error)
	ForMonth(ctx context.Context, anchor time.Time) (domain.MonthlyFocus, bool)
	List(ctx context.Context) []domain.MonthlyFocus
}

type focusService struct {
	cal   domain.Calendar
	store repository.FocusStore
}

func NewFocusService(cal domain.Calendar, store repository.FocusStore) FocusService {
	return &focusService{cal: cal, store: store}
}

// Save sets the focus for anchor's month, keeping the ID of an existing entry.
func (s *focusService) Save(ctx context.Context, anchor time.Time, goals, focus string) (domain.MonthlyFocus, error) {
	c := s.cal.Components(anchor)
	mf := domain.MonthlyFocus{Year: c.Year, Month: c.Month, Goals: goals, Focus: focus}
	if !mf.Validate() {
		return domain.MonthlyFocus{}, ErrInvalidFocus
	}
	if existing, ok := s.store.Get(ctx, c.Year, c.Month); ok {
		mf.ID = existing.ID
	} else {
		mf.ID = uuid.New().String()
	}
	if err := s.store.Save(ctx, mf); err != nil {
		return domain.MonthlyFocus{}, err
	}
	return mf, nil
}

func (s *focusService) ForMonth(ctx context.Context, anchor time.Time) (domain.MonthlyFocus, bool) {
	c := s.cal.Components(anchor)
	return s.store.Get(ctx, c.Year, c.Month)
}

// List returns every month's focus in calendar order.
func (s *focusService) List(ctx context.Context) []domain.MonthlyFocus {
	focuses := s.store.Load(ctx)
	sort.Slice(focuses, func(i, j int) bool {
		if focuses[i].Year != focuses[j].Year {
			return focuses[i].Year < focuses[j].Year
		}
		return focuses[i].Month < focuses[j].Month
	})
	return focuses
}
