// Package app implements the application layer for briefkit: it assembles
// jobs into pipelines and runs them.
package app

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/brieflab/briefkit/internal/adapters/cache"
	"github.com/brieflab/briefkit/internal/adapters/checkpoint"
	"github.com/brieflab/briefkit/internal/core/domain"
	"github.com/brieflab/briefkit/internal/core/ports"
	"github.com/brieflab/briefkit/internal/engine/pipeline"
	"github.com/google/uuid"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	loader ports.ConfigLoader
	logger ports.Logger
	tracer ports.Tracer
}

// Components aggregates the resolved top-level dependencies for main.
type Components struct {
	App    *App
	Logger ports.Logger
}

// New creates a new App instance.
func New(loader ports.ConfigLoader, logger ports.Logger, tracer ports.Tracer) *App {
	return &App{
		loader: loader,
		logger: logger,
		tracer: tracer,
	}
}

// RunOptions configures one job run.
type RunOptions struct {
	// Resume continues after the last checkpointed stage.
	Resume bool
	// NoCache bypasses the result cache for this run.
	NoCache bool
	// Lookback bounds how far back remote reads reach. Zero means 24h.
	Lookback time.Duration
}

// Run executes the named job.
func (a *App) Run(ctx context.Context, jobName string, opts RunOptions) error {
	if jobName == "" {
		return domain.ErrNoJobSpecified
	}

	cfg, err := a.loader.Load(".")
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	lookback := opts.Lookback
	if lookback <= 0 {
		lookback = 24 * time.Hour
	}

	workDir := domain.JobWorkDir(cfg.Root, jobName)
	if err := os.MkdirAll(workDir, domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrArtifactWriteFailed.Error())
	}

	jc := &JobContext{
		Cfg:     cfg,
		WorkDir: workDir,
		RunID:   uuid.NewString(),
		Cache:   cache.NewStore(cfg.CacheDir),
		NoCache: opts.NoCache,
		Since:   time.Now().Add(-lookback),
		Logger:  a.logger,
		Tracer:  a.tracer,
	}

	stages, err := a.buildJob(jobName, jc)
	if err != nil {
		return err
	}

	pl, err := pipeline.New(stages, checkpoint.NewStore(workDir), a.tracer, a.logger)
	if err != nil {
		return err
	}

	disabled := make(map[string]bool)
	for _, id := range cfg.Job(jobName).Skip {
		disabled[id] = true
	}

	if err := pl.Run(ctx, pipeline.RunOptions{Resume: opts.Resume, Disabled: disabled}); err != nil {
		return zerr.With(errors.Join(domain.ErrRunFailed, err), "job", jobName)
	}

	a.logger.Info("job completed: " + jobName)
	return nil
}

func (a *App) buildJob(name string, jc *JobContext) ([]pipeline.Stage, error) {
	switch name {
	case "standup":
		return standupStages(jc), nil
	case "release-notes":
		return releaseNotesStages(jc), nil
	default:
		return nil, zerr.With(errors.Join(domain.ErrUnknownJob), "job", name)
	}
}

// JobNames lists the jobs the toolbox knows how to run.
func JobNames() []string {
	return []string{"standup", "release-notes"}
}

// CleanOptions selects what Clean removes.
type CleanOptions struct {
	// Cache removes the result cache (all namespaces).
	Cache bool
	// Work removes job working directories, including checkpoints and
	// stage artifacts.
	Work bool
}

// Clean removes cached results and/or job working directories.
func (a *App) Clean(_ context.Context, opts CleanOptions) error {
	cfg, err := a.loader.Load(".")
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	if opts.Cache {
		if err := cache.NewStore(cfg.CacheDir).ClearAll(); err != nil {
			return err
		}
		a.logger.Info("cleared result cache")
	}

	if opts.Work {
		jobsDir := domain.JobWorkDir(cfg.Root, "")
		if err := os.RemoveAll(jobsDir); err != nil {
			return zerr.Wrap(err, domain.ErrCacheClearFailed.Error())
		}
		a.logger.Info("cleared job working directories")
	}

	return nil
}
