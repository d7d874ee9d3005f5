package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/brieflab/briefkit/internal/adapters/config"
	"github.com/brieflab/briefkit/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, domain.ConfigFileName), []byte(content), 0o600)
	require.NoError(t, err)
}

func TestLoad_FullConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `version: "1"
concurrency: 8
batchDelay: 500ms
repo: ./src
cache:
  dir: ./cachedir
  trackerTTL: 30m
  summaryTTL: 48h
tracker:
  baseURL: https://tracker.example.com
  project: APP
  tokenEnv: MY_TRACKER_TOKEN
completion:
  baseURL: https://ai.example.com
  model: summarizer-large
  tokenEnv: MY_AI_TOKEN
workspace:
  baseURL: https://workspace.example.com
  tokenEnv: MY_WS_TOKEN
jobs:
  standup:
    skip:
      - collect-inbox
`)

	cfg, err := config.NewLoader().Load(dir)
	require.NoError(t, err)

	absDir, err := filepath.Abs(dir)
	require.NoError(t, err)

	assert.Equal(t, absDir, cfg.Root)
	assert.Equal(t, 8, cfg.Concurrency)
	assert.Equal(t, 500*time.Millisecond, cfg.DelayBetweenBatches)
	assert.Equal(t, filepath.Join(absDir, "src"), cfg.Repo)
	assert.Equal(t, filepath.Join(absDir, "cachedir"), cfg.CacheDir)
	assert.Equal(t, 30*time.Minute, cfg.TrackerTTL)
	assert.Equal(t, 48*time.Hour, cfg.SummaryTTL)

	assert.Equal(t, "https://tracker.example.com", cfg.Tracker.BaseURL)
	assert.Equal(t, "APP", cfg.Tracker.Project)
	assert.Equal(t, "MY_TRACKER_TOKEN", cfg.Tracker.TokenEnv)
	assert.Equal(t, "summarizer-large", cfg.Completion.Model)
	assert.Equal(t, "MY_WS_TOKEN", cfg.Workspace.TokenEnv)

	assert.Equal(t, []string{"collect-inbox"}, cfg.Job("standup").Skip)
	assert.Empty(t, cfg.Job("release-notes").Skip)
}

func TestLoad_AppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `version: "1"
tracker:
  baseURL: https://tracker.example.com
  project: APP
`)

	cfg, err := config.NewLoader().Load(dir)
	require.NoError(t, err)

	absDir, err := filepath.Abs(dir)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Concurrency)
	assert.Equal(t, 200*time.Millisecond, cfg.DelayBetweenBatches)
	assert.Equal(t, time.Hour, cfg.TrackerTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.SummaryTTL)
	assert.Equal(t, absDir, cfg.Repo)
	assert.Equal(t, filepath.Join(absDir, ".briefkit", "cache"), cfg.CacheDir)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.NewLoader().Load(t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfigNotFound)
}

func TestLoad_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "version: [unclosed")

	_, err := config.NewLoader().Load(dir)
	require.Error(t, err)
	// String check for robustness, zerr wrapping does not carry the sentinel.
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoad_InvalidDuration(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `version: "1"
batchDelay: soon
`)

	_, err := config.NewLoader().Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoad_NegativeConcurrencyFallsBack(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `version: "1"
concurrency: -2
`)

	cfg, err := config.NewLoader().Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Concurrency)
}

func TestLoad_AbsolutePathsKept(t *testing.T) {
	dir := t.TempDir()
	cacheDir := filepath.Join(t.TempDir(), "shared-cache")
	writeConfig(t, dir, `version: "1"
cache:
  dir: `+cacheDir+`
`)

	cfg, err := config.NewLoader().Load(dir)
	require.NoError(t, err)
	assert.Equal(t, cacheDir, cfg.CacheDir)
}
