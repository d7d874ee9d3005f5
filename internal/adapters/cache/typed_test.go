package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/brieflab/briefkit/internal/adapters/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestLookupPut_RoundTrip(t *testing.T) {
	s := cache.NewStore(t.TempDir())

	require.NoError(t, cache.Put(s, "ns", "k", payload{Name: "a", Count: 3}, nil))

	got, ok := cache.Lookup[payload](s, "ns", "k", time.Hour)
	require.True(t, ok)
	assert.Equal(t, payload{Name: "a", Count: 3}, got)
}

func TestLookup_TypeMismatchIsMiss(t *testing.T) {
	s := cache.NewStore(t.TempDir())

	require.NoError(t, s.Set("ns", "k", []byte(`"just a string"`), nil))

	_, ok := cache.Lookup[payload](s, "ns", "k", time.Hour)
	assert.False(t, ok)
}

func TestMemoize_CachesFirstResult(t *testing.T) {
	s := cache.NewStore(t.TempDir())
	calls := 0

	fn := func(_ context.Context) (payload, error) {
		calls++
		return payload{Name: "fresh", Count: calls}, nil
	}

	v1, err := cache.Memoize(context.Background(), s, "ns", "k", time.Hour, fn)
	require.NoError(t, err)
	v2, err := cache.Memoize(context.Background(), s, "ns", "k", time.Hour, fn)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, v1, v2)
}

func TestMemoize_ZeroTTLAlwaysRecomputes(t *testing.T) {
	s := cache.NewStore(t.TempDir())
	calls := 0

	fn := func(_ context.Context) (int, error) {
		calls++
		return calls, nil
	}

	v1, err := cache.Memoize(context.Background(), s, "ns", "k", 0, fn)
	require.NoError(t, err)
	v2, err := cache.Memoize(context.Background(), s, "ns", "k", 0, fn)
	require.NoError(t, err)

	assert.Equal(t, 1, v1)
	assert.Equal(t, 2, v2)
}

func TestMemoize_ErrorNotCached(t *testing.T) {
	s := cache.NewStore(t.TempDir())
	errBoom := errors.New("boom")
	calls := 0

	fn := func(_ context.Context) (int, error) {
		calls++
		if calls == 1 {
			return 0, errBoom
		}
		return 42, nil
	}

	_, err := cache.Memoize(context.Background(), s, "ns", "k", time.Hour, fn)
	require.ErrorIs(t, err, errBoom)

	// The failure left nothing behind, so the retry computes and caches.
	v, err := cache.Memoize(context.Background(), s, "ns", "k", time.Hour, fn)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 2, calls)

	v, err = cache.Memoize(context.Background(), s, "ns", "k", time.Hour, fn)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 2, calls)
}
