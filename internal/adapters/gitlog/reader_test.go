package gitlog

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/brieflab/briefkit/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLog(t *testing.T) {
	out := "abc123\x1fMira Chen\x1ffix: APP-12 handle empty payload\x1f2026-08-24T16:20:00+02:00\n" +
		"def456\x1fSam Ortiz\x1ffeat: add export\x1f2026-08-24T09:00:00Z\n"

	commits, err := parseLog(out)
	require.NoError(t, err)
	require.Len(t, commits, 2)

	assert.Equal(t, "abc123", commits[0].Hash)
	assert.Equal(t, "Mira Chen", commits[0].Author)
	assert.Equal(t, "fix: APP-12 handle empty payload", commits[0].Subject)
	assert.Equal(t, 16, commits[0].When.Hour())

	assert.Equal(t, "def456", commits[1].Hash)
	assert.Equal(t, time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC), commits[1].When)
}

func TestParseLog_Empty(t *testing.T) {
	commits, err := parseLog("")
	require.NoError(t, err)
	assert.Empty(t, commits)
}

func TestParseLog_SubjectWithSpaces(t *testing.T) {
	out := "a1\x1fA B C\x1fsubject: with \"quotes\" and spaces\x1f2026-08-24T09:00:00Z\n"

	commits, err := parseLog(out)
	require.NoError(t, err)
	require.Len(t, commits, 1)
	assert.Equal(t, `subject: with "quotes" and spaces`, commits[0].Subject)
}

func TestParseLog_MalformedLine(t *testing.T) {
	_, err := parseLog("only two\x1ffields\n")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrGitLogFailed)
}

func TestParseLog_BadTimestamp(t *testing.T) {
	_, err := parseLog("a1\x1fAuthor\x1fsubject\x1fnot-a-date\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read git log")
}

func TestCommits_RealRepository(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	dir := t.TempDir()
	run := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
		cmd.Env = append(cmd.Environ(),
			"GIT_AUTHOR_NAME=Test", "GIT_AUTHOR_EMAIL=test@example.com",
			"GIT_COMMITTER_NAME=Test", "GIT_COMMITTER_EMAIL=test@example.com",
		)
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, string(out))
	}

	run("init")
	run("commit", "--allow-empty", "-m", "first commit")
	run("commit", "--allow-empty", "-m", "second commit")

	commits, err := NewReader().Commits(context.Background(), dir, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	require.Len(t, commits, 2)
	assert.Equal(t, "second commit", commits[0].Subject)
	assert.Equal(t, "Test", commits[0].Author)
}

func TestCommits_MissingRepository(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	_, err := NewReader().Commits(context.Background(), t.TempDir(), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read git log")
}
