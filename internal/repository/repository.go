package repository

import (
	"coachplus/coachlog/internal/domain"
	"context"
	"time"
)

// Error constants for the repository layer. Backend causes are wrapped around
// these, so callers match with errors.Is.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrSaveFailed   = RepositoryError("save failed")
	ErrLoadFailed   = RepositoryError("load failed")
	ErrDeleteFailed = RepositoryError("delete failed")
	// Reserved for stores that reject a second entry on the same day instead of replacing it.
	ErrDateConflict = RepositoryError("date conflict")
	ErrStorageError = RepositoryError("storage error")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// Storage keys. Each key holds a whole collection as one serialized array.
const (
	SessionsKey  = "savedSessions"
	TemplatesKey = "savedTemplates"
	BlocksKey    = "savedBlocks"
	FocusesKey   = "savedMonthlyFocuses"
)

// BlobStore is the host key-value medium every collection store sits on.
type BlobStore interface {
	// Get returns ok=false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	// Remove is a no-op for an absent key.
	Remove(ctx context.Context, key string) error
}

// SessionStore keeps at most one Session per calendar day.
type SessionStore interface {
	// Save replaces any Session already stored for session.Date's day.
	Save(ctx context.Context, session domain.Session) error
	// Load never fails; on a decode or backend failure it returns nothing and records ErrLoadFailed.
	Load(ctx context.Context) []domain.Session
	Delete(ctx context.Context, day time.Time) error
	Get(ctx context.Context, day time.Time) (domain.Session, bool)
	// SaveMultiple calls Save per item and stops at the first failure; earlier items stay saved.
	SaveMultiple(ctx context.Context, sessions []domain.Session) error
	DeleteAll(ctx context.Context) error
	Validate(session domain.Session) bool
	LastError() error
}

// TemplateStore keeps templates keyed by ID.
type TemplateStore interface {
	Save(ctx context.Context, template domain.Template) error
	Load(ctx context.Context) []domain.Template
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
	Validate(template domain.Template) bool
	LastError() error
}

// BlockStore is the library of reusable authoring blocks.
type BlockStore interface {
	Save(ctx context.Context, block domain.Block) error
	Load(ctx context.Context) []domain.Block
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
	LastError() error
}

// FocusStore keeps at most one MonthlyFocus per month.
type FocusStore interface {
	Save(ctx context.Context, focus domain.MonthlyFocus) error
	Get(ctx context.Context, year int, month time.Month) (domain.MonthlyFocus, bool)
	Load(ctx context.Context) []domain.MonthlyFocus
	DeleteAll(ctx context.Context) error
	LastError() error
}
