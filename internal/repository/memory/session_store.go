package memory

import (
	"coachplus/coachlog/internal/domain"
	"coachplus/coachlog/internal/repository"
	"context"
	"sync"
	"time"
)

// SessionStore is an in-memory repository.SessionStore that counts calls and
// can be switched into failure mode with ShouldFail.
type SessionStore struct {
	mu       sync.Mutex
	cal      domain.Calendar
	sessions []domain.Session
	lastErr  error

	SaveCalled   int
	LoadCalled   int
	DeleteCalled int
	ShouldFail   bool
}

func NewSessionStore(cal domain.Calendar) *SessionStore {
	return &SessionStore{cal: cal}
}

func (s *SessionStore) Save(_ context.Context, session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.SaveCalled++
	if s.ShouldFail {
		s.lastErr = repository.ErrSaveFailed
		return repository.ErrSaveFailed
	}
	s.sessions = s.withoutDay(session.Date)
	s.sessions = append(s.sessions, session)
	return nil
}

func (s *SessionStore) Load(context.Context) []domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.LoadCalled++
	return append([]domain.Session{}, s.sessions...)
}

func (s *SessionStore) Delete(_ context.Context, day time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.DeleteCalled++
	if s.ShouldFail {
		s.lastErr = repository.ErrDeleteFailed
		return repository.ErrDeleteFailed
	}
	s.sessions = s.withoutDay(day)
	return nil
}

func (s *SessionStore) Get(_ context.Context, day time.Time) (domain.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, session := range s.sessions {
		if s.cal.SameDay(session.Date, day) {
			return session, true
		}
	}
	return domain.Session{}, false
}

func (s *SessionStore) SaveMultiple(ctx context.Context, sessions []domain.Session) error {
	if s.failing() {
		return repository.ErrSaveFailed
	}
	for _, session := range sessions {
		if err := s.Save(ctx, session); err != nil {
			return err
		}
	}
	return nil
}

func (s *SessionStore) DeleteAll(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ShouldFail {
		s.lastErr = repository.ErrDeleteFailed
		return repository.ErrDeleteFailed
	}
	s.sessions = nil
	return nil
}

func (s *SessionStore) Validate(session domain.Session) bool {
	return session.IsValid()
}

func (s *SessionStore) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// SetShouldFail toggles failure mode while holding the store's lock.
func (s *SessionStore) SetShouldFail(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ShouldFail = fail
}

// Reset clears stored sessions, counters, the failure switch and the last error.
func (s *SessionStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = nil
	s.lastErr = nil
	s.SaveCalled = 0
	s.LoadCalled = 0
	s.DeleteCalled = 0
	s.ShouldFail = false
}

func (s *SessionStore) failing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ShouldFail
}

func (s *SessionStore) withoutDay(day time.Time) []domain.Session {
	kept := make([]domain.Session, 0, len(s.sessions))
	for _, existing := range s.sessions {
		if !s.cal.SameDay(existing.Date, day) {
			kept = append(kept, existing)
		}
	}
	return kept
}
