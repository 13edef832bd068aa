package kvstore

import (
	"coachplus/coachlog/internal/domain"
	"coachplus/coachlog/internal/repository"
	"context"
	"time"
)

// SessionStore is the persistent repository.SessionStore.
type SessionStore struct {
	guard
	cal      domain.Calendar
	sessions collection[domain.Session]
}

// NewSessionStore stores sessions under repository.SessionsKey, deduplicated by cal's days.
func NewSessionStore(blobs repository.BlobStore, cal domain.Calendar) *SessionStore {
	return &SessionStore{
		cal:      cal,
		sessions: collection[domain.Session]{blobs: blobs, key: repository.SessionsKey},
	}
}

// Save replaces whatever is stored for the session's day. An unreadable
// collection is never overwritten.
func (s *SessionStore) Save(ctx context.Context, session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.sessions.read(ctx)
	if err != nil {
		return s.fail(repository.ErrSaveFailed, repository.SessionsKey, err)
	}
	sessions = s.withoutDay(sessions, session.Date)
	sessions = append(sessions, session)
	if err := s.sessions.write(ctx, sessions); err != nil {
		return s.fail(repository.ErrSaveFailed, repository.SessionsKey, err)
	}
	return nil
}

func (s *SessionStore) Load(ctx context.Context) []domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *SessionStore) load(ctx context.Context) []domain.Session {
	sessions, err := s.sessions.read(ctx)
	if err != nil {
		s.fail(repository.ErrLoadFailed, repository.SessionsKey, err)
		return []domain.Session{}
	}
	if sessions == nil {
		return []domain.Session{}
	}
	return sessions
}

func (s *SessionStore) Delete(ctx context.Context, day time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.sessions.read(ctx)
	if err != nil {
		return s.fail(repository.ErrDeleteFailed, repository.SessionsKey, err)
	}
	kept := s.withoutDay(sessions, day)
	if len(kept) == len(sessions) {
		return nil
	}
	if err := s.sessions.write(ctx, kept); err != nil {
		return s.fail(repository.ErrDeleteFailed, repository.SessionsKey, err)
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, day time.Time) (domain.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, session := range s.load(ctx) {
		if s.cal.SameDay(session.Date, day) {
			return session, true
		}
	}
	return domain.Session{}, false
}

func (s *SessionStore) SaveMultiple(ctx context.Context, sessions []domain.Session) error {
	for _, session := range sessions {
		if err := s.Save(ctx, session); err != nil {
			return err
		}
	}
	return nil
}

func (s *SessionStore) DeleteAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.sessions.clear(ctx); err != nil {
		return s.fail(repository.ErrDeleteFailed, repository.SessionsKey, err)
	}
	return nil
}

func (s *SessionStore) Validate(session domain.Session) bool {
	return session.IsValid()
}

func (s *SessionStore) withoutDay(sessions []domain.Session, day time.Time) []domain.Session {
	kept := make([]domain.Session, 0, len(sessions))
	for _, existing := range sessions {
		if !s.cal.SameDay(existing.Date, day) {
			kept = append(kept, existing)
		}
	}
	return kept
}
