package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/brieflab/briefkit/internal/core/domain"
	"github.com/brieflab/briefkit/internal/core/ports"
	"go.trai.ch/zerr"
)

// Lookup reads and decodes a typed value from the cache. A value that no
// longer decodes into T degrades to a miss, like any other corruption.
func Lookup[T any](c ports.ResultCache, namespace, key string, ttl time.Duration) (T, bool) {
	var v T

	entry, ok := c.Get(namespace, key, ttl)
	if !ok {
		return v, false
	}

	if err := json.Unmarshal(entry.Value, &v); err != nil {
		var zero T
		return zero, false
	}

	return v, true
}

// Put encodes and stores a typed value.
func Put[T any](c ports.ResultCache, namespace, key string, v T, metadata map[string]string) error {
	data, err := json.Marshal(v)
	if err != nil {
		return zerr.Wrap(err, domain.ErrCacheMarshalFailed.Error())
	}
	return c.Set(namespace, key, data, metadata)
}

// Memoize consults the cache before running fn, and stores fn's result on
// success. A failed cache write does not fail the operation; the result is
// simply recomputed next time.
func Memoize[T any](
	ctx context.Context,
	c ports.ResultCache,
	namespace, key string,
	ttl time.Duration,
	fn func(ctx context.Context) (T, error),
) (T, error) {
	if v, ok := Lookup[T](c, namespace, key, ttl); ok {
		return v, nil
	}

	v, err := fn(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	if putErr := Put(c, namespace, key, v, nil); putErr != nil {
		// The cache write failure is not critical.
		_ = putErr
	}

	return v, nil
}
