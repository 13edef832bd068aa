// Package storage holds object-storage backends for the blob layer.
package storage

import (
	"path"
	"time"
)

// Default timeout applied to each object operation when the caller's context has none.
const DefaultObjectTimeout = 15 * time.Second

// ObjectKey places a blob key under the configured prefix, e.g. "coachlog/savedSessions.json".
func ObjectKey(prefix, key string) string {
	if prefix == "" {
		return key + ".json"
	}
	return path.Join(prefix, key+".json")
}
