// Package memory holds process-local stores: a map-backed BlobStore for the
// "memory" backend and a SessionStore fake for tests.
package memory

import (
	"context"
	"sync"
)

// BlobStore keeps values in a map. Setting Err makes every call fail with it.
type BlobStore struct {
	mu     sync.RWMutex
	values map[string][]byte
	Err    error
}

func NewBlobStore() *BlobStore {
	return &BlobStore{values: make(map[string][]byte)}
}

func (b *BlobStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.Err != nil {
		return nil, false, b.Err
	}
	v, ok := b.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (b *BlobStore) Set(_ context.Context, key string, value []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.Err != nil {
		return b.Err
	}
	b.values[key] = append([]byte(nil), value...)
	return nil
}

func (b *BlobStore) Remove(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.Err != nil {
		return b.Err
	}
	delete(b.values, key)
	return nil
}

// Close satisfies the backend lifecycle; there is nothing to release.
func (b *BlobStore) Close(context.Context) error { return nil }
