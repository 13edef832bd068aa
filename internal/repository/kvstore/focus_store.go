package kvstore

import (
	"coachplus/coachlog/internal/domain"
	"coachplus/coachlog/internal/repository"
	"context"
	"time"
)

// FocusStore is the persistent repository.FocusStore.
type FocusStore struct {
	guard
	focuses collection[domain.MonthlyFocus]
}

func NewFocusStore(blobs repository.BlobStore) *FocusStore {
	return &FocusStore{focuses: collection[domain.MonthlyFocus]{blobs: blobs, key: repository.FocusesKey}}
}

// Save replaces the focus already stored for the same month.
func (s *FocusStore) Save(ctx context.Context, focus domain.MonthlyFocus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	focuses, err := s.focuses.read(ctx)
	if err != nil {
		return s.fail(repository.ErrSaveFailed, repository.FocusesKey, err)
	}
	kept := make([]domain.MonthlyFocus, 0, len(focuses)+1)
	for _, f := range focuses {
		if !f.SameMonth(focus.Year, focus.Month) {
			kept = append(kept, f)
		}
	}
	kept = append(kept, focus)
	if err := s.focuses.write(ctx, kept); err != nil {
		return s.fail(repository.ErrSaveFailed, repository.FocusesKey, err)
	}
	return nil
}

func (s *FocusStore) Get(ctx context.Context, year int, month time.Month) (domain.MonthlyFocus, bool) {
	for _, f := range s.Load(ctx) {
		if f.SameMonth(year, month) {
			return f, true
		}
	}
	return domain.MonthlyFocus{}, false
}

func (s *FocusStore) Load(ctx context.Context) []domain.MonthlyFocus {
	s.mu.Lock()
	defer s.mu.Unlock()

	focuses, err := s.focuses.read(ctx)
	if err != nil {
		s.fail(repository.ErrLoadFailed, repository.FocusesKey, err)
		return []domain.MonthlyFocus{}
	}
	if focuses == nil {
		return []domain.MonthlyFocus{}
	}
	return focuses
}

func (s *FocusStore) DeleteAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.focuses.clear(ctx); err != nil {
		return s.fail(repository.ErrDeleteFailed, repository.FocusesKey, err)
	}
	return nil
}
