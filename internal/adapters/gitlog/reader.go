// Package gitlog implements the ChangeLog port by shelling out to git.
package gitlog

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"github.com/brieflab/briefkit/internal/core/domain"
	"github.com/brieflab/briefkit/internal/core/ports"
	"go.trai.ch/zerr"
)

// fieldSep is the unit separator used in the pretty format so subjects
// containing whitespace parse unambiguously.
const fieldSep = "\x1f"

var _ ports.ChangeLog = (*Reader)(nil)

// Reader reads commit history via the git CLI.
type Reader struct{}

// NewReader creates a new git log Reader.
func NewReader() *Reader {
	return &Reader{}
}

// Commits returns the commits in repo authored since the given instant,
// newest first.
func (r *Reader) Commits(ctx context.Context, repo string, since time.Time) ([]domain.Commit, error) {
	format := strings.Join([]string{"%H", "%an", "%s", "%aI"}, fieldSep)

	//nolint:gosec // repo is a configured local path, not remote input
	cmd := exec.CommandContext(ctx, "git", "-C", repo, "log",
		"--since="+since.Format(time.RFC3339),
		"--pretty=format:"+format,
	)

	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			stderr := strings.TrimSpace(string(exitErr.Stderr))
			gitErr := zerr.Wrap(exitErr, domain.ErrGitLogFailed.Error())
			gitErr = zerr.With(gitErr, "repo", repo)
			return nil, zerr.With(gitErr, "stderr", stderr)
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrGitLogFailed.Error()), "repo", repo)
	}

	return parseLog(string(output))
}

func parseLog(out string) ([]domain.Commit, error) {
	var commits []domain.Commit

	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, fieldSep)
		if len(fields) != 4 {
			return nil, zerr.With(errors.Join(domain.ErrGitLogFailed), "line", line)
		}

		when, err := time.Parse(time.RFC3339, fields[3])
		if err != nil {
			return nil, zerr.Wrap(err, domain.ErrGitLogFailed.Error())
		}

		commits = append(commits, domain.Commit{
			Hash:    fields[0],
			Author:  fields[1],
			Subject: fields[2],
			When:    when,
		})
	}

	return commits, nil
}
