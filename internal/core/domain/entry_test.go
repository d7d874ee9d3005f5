package domain_test

import (
	"testing"
	"time"

	"github.com/brieflab/briefkit/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestCacheEntry_Live(t *testing.T) {
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	entry := domain.CacheEntry{CreatedAt: now.Add(-30 * time.Minute)}

	assert.True(t, entry.Live(now, time.Hour))
	assert.False(t, entry.Live(now, 10*time.Minute))

	// A zero TTL means nothing is ever live, which is how cache bypass
	// is implemented.
	assert.False(t, entry.Live(now, 0))
}

func TestJobWorkDir(t *testing.T) {
	assert.Equal(t, "/proj/.briefkit/jobs/standup", domain.JobWorkDir("/proj", "standup"))
}

func TestCheckpointPath(t *testing.T) {
	assert.Equal(t, "/w/checkpoint", domain.CheckpointPath("/w"))
}
