// Package pipeline runs an ordered list of named stages sequentially,
// checkpointing after each completed stage so an interrupted run can be
// resumed without redoing finished work.
package pipeline

import (
	"context"
	"errors"
	"sync"

	"github.com/brieflab/briefkit/internal/core/domain"
	"github.com/brieflab/briefkit/internal/core/ports"
	"go.trai.ch/zerr"
)

// StageStatus represents the status of a stage within one run.
type StageStatus string

const (
	// StatusPending indicates the stage has not started.
	StatusPending StageStatus = "Pending"
	// StatusRunning indicates the stage is currently executing.
	StatusRunning StageStatus = "Running"
	// StatusCompleted indicates the stage finished successfully.
	StatusCompleted StageStatus = "Completed"
	// StatusSkipped indicates the stage was disabled or already checkpointed.
	StatusSkipped StageStatus = "Skipped"
	// StatusFailed indicates the stage execution failed.
	StatusFailed StageStatus = "Failed"
)

// Stage is one named, ordered unit of work.
type Stage struct {
	// ID is the stable identifier written to the checkpoint.
	ID string
	// Name is the human-readable label used for spans and logs.
	Name string
	// Optional marks a stage that configuration may disable.
	Optional bool
	// Run performs the stage's work, committing artifacts to the job
	// working directory on success.
	Run func(ctx context.Context) error
}

// RunOptions configures one pipeline run.
type RunOptions struct {
	// Resume skips every stage up to and including the checkpointed one.
	// Without a checkpoint it behaves as a fresh run.
	Resume bool
	// Disabled lists optional stage IDs excluded from this run.
	Disabled map[string]bool
}

// Pipeline owns an ordered stage list and the job's checkpoint. Stages
// never run concurrently; parallelism exists only inside a stage.
type Pipeline struct {
	stages      []Stage
	checkpoints ports.CheckpointStore
	tracer      ports.Tracer
	logger      ports.Logger

	mu     sync.RWMutex
	status map[string]StageStatus
}

// New creates a Pipeline over the given stages. Stage IDs must be unique.
func New(stages []Stage, checkpoints ports.CheckpointStore, tracer ports.Tracer, logger ports.Logger) (*Pipeline, error) {
	seen := make(map[string]bool, len(stages))
	status := make(map[string]StageStatus, len(stages))
	for _, st := range stages {
		if seen[st.ID] {
			return nil, zerr.With(errors.Join(domain.ErrDuplicateStage), "stage", st.ID)
		}
		seen[st.ID] = true
		status[st.ID] = StatusPending
	}

	return &Pipeline{
		stages:      stages,
		checkpoints: checkpoints,
		tracer:      tracer,
		logger:      logger,
		status:      status,
	}, nil
}

// StageStatus returns the status of the given stage in the current run.
func (p *Pipeline) StageStatus(id string) StageStatus {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.status[id]
}

func (p *Pipeline) setStatus(id string, s StageStatus) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status[id] = s
}

// Run executes the stages in order. On failure no further stages execute,
// the checkpoint still names the last completed stage, and the error is
// returned tagged with the failing stage's ID.
func (p *Pipeline) Run(ctx context.Context, opts RunOptions) error {
	if err := p.validateDisabled(opts.Disabled); err != nil {
		return err
	}

	start, err := p.startIndex(opts.Resume)
	if err != nil {
		return err
	}

	for _, st := range p.stages[:start] {
		p.setStatus(st.ID, StatusSkipped)
	}

	planned := make([]string, 0, len(p.stages)-start)
	for _, st := range p.stages[start:] {
		planned = append(planned, st.Name)
	}
	p.tracer.EmitPlan(ctx, planned)

	for i := start; i < len(p.stages); i++ {
		st := p.stages[i]

		if st.Optional && opts.Disabled[st.ID] {
			p.setStatus(st.ID, StatusSkipped)
			p.logger.Info("skipping disabled stage: " + st.Name)
			continue
		}

		// An external interrupt stops issuing new stages; completed
		// checkpoints stay valid for the next resume.
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := p.runStage(ctx, st); err != nil {
			return err
		}
	}

	return nil
}

func (p *Pipeline) runStage(ctx context.Context, st Stage) error {
	p.setStatus(st.ID, StatusRunning)
	sctx, span := p.tracer.Start(ctx, st.Name)

	if err := st.Run(sctx); err != nil {
		span.RecordError(err)
		span.End()
		p.setStatus(st.ID, StatusFailed)
		return zerr.With(errors.Join(domain.ErrStageFailed, err), "stage", st.ID)
	}
	span.End()

	if err := p.checkpoints.Save(st.ID); err != nil {
		p.setStatus(st.ID, StatusFailed)
		return zerr.With(errors.Join(domain.ErrCheckpointWriteFailed, err), "stage", st.ID)
	}

	p.setStatus(st.ID, StatusCompleted)
	p.logger.Info("stage completed: " + st.Name)
	return nil
}

// validateDisabled rejects configuration that disables a required stage,
// before any stage runs.
func (p *Pipeline) validateDisabled(disabled map[string]bool) error {
	for _, st := range p.stages {
		if disabled[st.ID] && !st.Optional {
			return zerr.With(errors.Join(domain.ErrStageNotOptional), "stage", st.ID)
		}
	}
	return nil
}

// startIndex resolves where the run begins. A fresh run discards any stale
// checkpoint; a resume continues after the checkpointed stage. A checkpoint
// naming an unknown stage is ignored and the run starts from the first
// stage.
func (p *Pipeline) startIndex(resume bool) (int, error) {
	if !resume {
		if err := p.checkpoints.Clear(); err != nil {
			return 0, zerr.Wrap(err, domain.ErrCheckpointWriteFailed.Error())
		}
		return 0, nil
	}

	last, err := p.checkpoints.Load()
	if err != nil {
		return 0, zerr.Wrap(err, domain.ErrCheckpointReadFailed.Error())
	}
	if last == "" {
		return 0, nil
	}

	for i, st := range p.stages {
		if st.ID == last {
			return i + 1, nil
		}
	}
	return 0, nil
}
