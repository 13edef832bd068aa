// Package kvstore implements the collection stores on top of a repository.BlobStore.
// Every collection lives under one key as a JSON array, so each write
// round-trips the whole collection.
package kvstore

import (
	"coachplus/coachlog/internal/repository"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
)

type collection[T any] struct {
	blobs repository.BlobStore
	key   string
}

// read returns nil without error when the key has never been written.
func (c collection[T]) read(ctx context.Context) ([]T, error) {
	data, ok, err := c.blobs.Get(ctx, c.key)
	if err != nil {
		return nil, err
	}
	if !ok || len(data) == 0 {
		return nil, nil
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.key, err)
	}
	return items, nil
}

func (c collection[T]) write(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.key, err)
	}
	return c.blobs.Set(ctx, c.key, data)
}

func (c collection[T]) clear(ctx context.Context) error {
	return c.blobs.Remove(ctx, c.key)
}

// guard serializes the read-modify-write cycles of one store and remembers its
// most recent failure.
type guard struct {
	mu      sync.Mutex
	lastErr error
}

// fail records and returns err wrapped in the repository category. Callers hold mu.
func (g *guard) fail(category repository.RepositoryError, key string, err error) error {
	wrapped := fmt.Errorf("%w: %s: %v", category, key, err)
	log.Printf("ERROR: %v", wrapped)
	g.lastErr = wrapped
	return wrapped
}

func (g *guard) LastError() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastErr
}
