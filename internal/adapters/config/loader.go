// Package config provides the configuration loader for briefkit.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/brieflab/briefkit/internal/core/domain"
	"github.com/brieflab/briefkit/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const (
	defaultConcurrency = 4
	defaultBatchDelay  = 200 * time.Millisecond
	defaultTrackerTTL  = time.Hour
	defaultSummaryTTL  = 7 * 24 * time.Hour
)

var _ ports.ConfigLoader = (*FileConfigLoader)(nil)

// FileConfigLoader implements ports.ConfigLoader using a YAML file.
type FileConfigLoader struct {
	Filename string
}

// NewLoader creates a loader for the default briefkit.yaml filename.
func NewLoader() *FileConfigLoader {
	return &FileConfigLoader{Filename: domain.ConfigFileName}
}

// Load reads the configuration from the given working directory.
func (l *FileConfigLoader) Load(cwd string) (*domain.Config, error) {
	path := filepath.Join(cwd, l.Filename)

	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(errors.Join(domain.ErrConfigNotFound), "path", path)
		}
		return nil, zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}

	root, err := filepath.Abs(cwd)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	return buildConfig(root, &file)
}

func buildConfig(root string, file *File) (*domain.Config, error) {
	cfg := &domain.Config{
		Root:                root,
		Concurrency:         file.Concurrency,
		DelayBetweenBatches: defaultBatchDelay,
		CacheDir:            filepath.Join(root, domain.DefaultCachePath()),
		TrackerTTL:          defaultTrackerTTL,
		SummaryTTL:          defaultSummaryTTL,
		Repo:                root,
		Tracker: domain.TrackerConfig{
			BaseURL:  file.Tracker.BaseURL,
			Project:  file.Tracker.Project,
			TokenEnv: file.Tracker.TokenEnv,
		},
		Completion: domain.CompletionConfig{
			BaseURL:  file.Completion.BaseURL,
			Model:    file.Completion.Model,
			TokenEnv: file.Completion.TokenEnv,
		},
		Workspace: domain.WorkspaceConfig{
			BaseURL:  file.Workspace.BaseURL,
			TokenEnv: file.Workspace.TokenEnv,
		},
		Jobs: make(map[string]domain.JobConfig, len(file.Jobs)),
	}

	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultConcurrency
	}
	if file.Repo != "" {
		cfg.Repo = resolvePath(root, file.Repo)
	}
	if file.Cache.Dir != "" {
		cfg.CacheDir = resolvePath(root, file.Cache.Dir)
	}

	if err := applyDurations(cfg, file); err != nil {
		return nil, err
	}

	for name, dto := range file.Jobs {
		cfg.Jobs[name] = domain.JobConfig{Skip: dto.Skip}
	}

	return cfg, nil
}

func applyDurations(cfg *domain.Config, file *File) error {
	for _, field := range []struct {
		raw  string
		dst  *time.Duration
		name string
	}{
		{file.BatchDelay, &cfg.DelayBetweenBatches, "batchDelay"},
		{file.Cache.TrackerTTL, &cfg.TrackerTTL, "cache.trackerTTL"},
		{file.Cache.SummaryTTL, &cfg.SummaryTTL, "cache.summaryTTL"},
	} {
		if field.raw == "" {
			continue
		}
		d, err := time.ParseDuration(field.raw)
		if err != nil {
			return zerr.With(
				zerr.Wrap(err, domain.ErrConfigParseFailed.Error()),
				"field", field.name,
			)
		}
		*field.dst = d
	}
	return nil
}

func resolvePath(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
