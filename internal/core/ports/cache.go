package ports

import (
	"time"

	"github.com/brieflab/briefkit/internal/core/domain"
)

// ResultCache maps content hashes of logical requests to previously
// computed results, partitioned into namespaces.
//
//go:generate go run go.uber.org/mock/mockgen -source=cache.go -destination=mocks/mock_cache.go -package=mocks
type ResultCache interface {
	// Get returns the entry for key if it is present and still fresh
	// under ttl. Absent, stale, or malformed entries are misses, never
	// errors.
	Get(namespace, key string, ttl time.Duration) (*domain.CacheEntry, bool)

	// Set persists or overwrites the entry for key, stamping CreatedAt.
	// The namespace's backing store is created on first use.
	Set(namespace, key string, value []byte, metadata map[string]string) error

	// Clear deletes all entries in the given namespace.
	Clear(namespace string) error

	// ClearAll deletes every namespace.
	ClearAll() error
}
