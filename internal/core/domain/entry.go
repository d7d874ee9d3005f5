// Package domain contains the core domain types for briefkit.
package domain

import (
	"encoding/json"
	"time"
)

// CacheEntry is one stored result in the namespace-scoped result cache.
// An entry is live iff now - CreatedAt < ttl; stale or unreadable entries
// are treated as misses by readers.
type CacheEntry struct {
	// Key is the content hash the entry is stored under.
	Key string `json:"key"`
	// Value is the serialized payload. Callers own the concrete type and
	// its serialize/deserialize pair.
	Value json.RawMessage `json:"value"`
	// CreatedAt is the timestamp stamped by Set.
	CreatedAt time.Time `json:"created_at"`
	// Metadata is free-form diagnostic context. It is never read back for
	// correctness.
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Live reports whether the entry is still fresh at the given instant.
func (e *CacheEntry) Live(now time.Time, ttl time.Duration) bool {
	return now.Sub(e.CreatedAt) < ttl
}
