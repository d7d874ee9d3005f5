package app

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/brieflab/briefkit/internal/core/domain"
	"github.com/brieflab/briefkit/internal/core/ports"
	"go.trai.ch/zerr"
)

// Artifact file names inside a job working directory. A present artifact
// marks its stage as done for resume purposes.
const (
	issuesArtifact    = "issues.json"
	commitsArtifact   = "commits.json"
	inboxArtifact     = "inbox.json"
	summariesArtifact = "summaries.json"
	reportArtifact    = "report.md"
	notesArtifact     = "notes.md"
)

// JobContext carries everything one run's stages share: configuration,
// the working directory, and the run-scoped collaborators.
type JobContext struct {
	Cfg     *domain.Config
	WorkDir string
	RunID   string
	Cache   ports.ResultCache
	NoCache bool
	Since   time.Time
	Logger  ports.Logger
	Tracer  ports.Tracer
}

// trackerTTL is the effective TTL for tracker reads. Bypassing the cache
// means a zero TTL, under which no entry is ever live.
func (jc *JobContext) trackerTTL() time.Duration {
	if jc.NoCache {
		return 0
	}
	return jc.Cfg.TrackerTTL
}

func (jc *JobContext) summaryTTL() time.Duration {
	if jc.NoCache {
		return 0
	}
	return jc.Cfg.SummaryTTL
}

// artifactPath returns the absolute path of an artifact in the job working
// directory.
func (jc *JobContext) artifactPath(name string) string {
	return filepath.Join(jc.WorkDir, name)
}

// artifactExists reports whether a stage has already committed its output.
func (jc *JobContext) artifactExists(name string) bool {
	info, err := os.Stat(jc.artifactPath(name))
	return err == nil && !info.IsDir()
}

// writeArtifact commits a stage's output atomically: the file appears
// complete or not at all, never half-written.
func (jc *JobContext) writeArtifact(name string, data []byte) error {
	path := jc.artifactPath(name)

	tmp, err := os.CreateTemp(jc.WorkDir, name+".*")
	if err != nil {
		return zerr.Wrap(err, domain.ErrArtifactWriteFailed.Error())
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zerr.Wrap(err, domain.ErrArtifactWriteFailed.Error())
	}
	if err := tmp.Close(); err != nil {
		return zerr.Wrap(err, domain.ErrArtifactWriteFailed.Error())
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return zerr.Wrap(err, domain.ErrArtifactWriteFailed.Error())
	}
	if err := os.Rename(tmpName, path); err != nil {
		return zerr.Wrap(err, domain.ErrArtifactWriteFailed.Error())
	}

	return nil
}

// writeJSONArtifact marshals v and commits it under name.
func (jc *JobContext) writeJSONArtifact(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrArtifactWriteFailed.Error())
	}
	return jc.writeArtifact(name, data)
}

// readJSONArtifact loads a required upstream artifact. A missing file means
// the producing stage has not run, which is a hard error for the consumer.
func (jc *JobContext) readJSONArtifact(name string, v any) error {
	data, err := os.ReadFile(jc.artifactPath(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return zerr.With(errors.Join(domain.ErrArtifactReadFailed), "artifact", name)
		}
		return zerr.With(zerr.Wrap(err, domain.ErrArtifactReadFailed.Error()), "artifact", name)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrArtifactReadFailed.Error()), "artifact", name)
	}
	return nil
}

// readOptionalJSONArtifact loads an artifact an optional stage may not have
// produced. Absence is not an error; ok reports presence.
func (jc *JobContext) readOptionalJSONArtifact(name string, v any) (bool, error) {
	data, err := os.ReadFile(jc.artifactPath(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, zerr.With(zerr.Wrap(err, domain.ErrArtifactReadFailed.Error()), "artifact", name)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrArtifactReadFailed.Error()), "artifact", name)
	}
	return true, nil
}
