// Package checkpoint implements the pipeline checkpoint store as a single
// plain-text file inside the job working directory.
package checkpoint

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/brieflab/briefkit/internal/core/domain"
	"github.com/brieflab/briefkit/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.CheckpointStore = (*Store)(nil)

// Store holds the checkpoint file path for one job.
type Store struct {
	path string
}

// NewStore creates a checkpoint store for the given job working directory.
func NewStore(workDir string) *Store {
	return &Store{path: domain.CheckpointPath(workDir)}
}

// Load returns the checkpointed stage ID, or "" when no checkpoint exists.
func (s *Store) Load() (string, error) {
	//nolint:gosec // Path is derived from the job working directory
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", zerr.Wrap(err, domain.ErrCheckpointReadFailed.Error())
	}

	return strings.TrimSpace(string(data)), nil
}

// Save overwrites the checkpoint with the given stage ID. The write is a
// single atomic record, so a reader never observes a partial checkpoint.
func (s *Store) Save(stageID string) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrCheckpointWriteFailed.Error())
	}

	tmpFile, err := os.CreateTemp(dir, "checkpoint-*")
	if err != nil {
		return zerr.Wrap(err, domain.ErrCheckpointWriteFailed.Error())
	}
	tmpName := tmpFile.Name()

	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.WriteString(stageID + "\n"); err != nil {
		_ = tmpFile.Close()
		return zerr.Wrap(err, domain.ErrCheckpointWriteFailed.Error())
	}
	if err := tmpFile.Close(); err != nil {
		return zerr.Wrap(err, domain.ErrCheckpointWriteFailed.Error())
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return zerr.Wrap(err, domain.ErrCheckpointWriteFailed.Error())
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return zerr.Wrap(err, domain.ErrCheckpointWriteFailed.Error())
	}

	return nil
}

// Clear removes the checkpoint. A missing checkpoint is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.Wrap(err, domain.ErrCheckpointWriteFailed.Error())
	}
	return nil
}
