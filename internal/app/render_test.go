package app

import (
	"testing"
	"time"

	"github.com/brieflab/briefkit/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderStandup(t *testing.T) {
	now := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)

	issues := []domain.Issue{
		{Key: "APP-1", Summary: "Timeouts on save", Status: "In Progress", Assignee: "mira"},
		{Key: "APP-2", Summary: "Export to CSV", Status: "Open"},
	}
	commits := []domain.Commit{
		{Hash: "abcdef1234567890", Author: "Mira Chen", Subject: "fix: APP-1 retry on timeout"},
	}
	summaries := []domain.Summary{
		{Subject: "APP-1", Text: "Retries landed, verifying under load."},
	}
	inbox := domain.Inbox{
		Mail: []domain.Message{{From: "alex@example.com", Subject: "Review"}},
		Events: []domain.Event{{
			Title: "Planning",
			Start: time.Date(2026, 8, 25, 13, 0, 0, 0, time.UTC),
			End:   time.Date(2026, 8, 25, 14, 0, 0, 0, time.UTC),
		}},
	}

	report := renderStandup(now, issues, commits, summaries, true, inbox)

	assert.Contains(t, report, "# Standup 2026-08-25")
	assert.Contains(t, report, "### APP-1: Timeouts on save")
	assert.Contains(t, report, "Status: In Progress (mira)")
	assert.Contains(t, report, "Retries landed, verifying under load.")
	assert.Contains(t, report, "### APP-2: Export to CSV")
	assert.Contains(t, report, "- abcdef12 fix: APP-1 retry on timeout (Mira Chen)")
	assert.Contains(t, report, "Unread mail: 1, mentions: 0")
	assert.Contains(t, report, "- Planning 13:00 to 14:00")
}

func TestRenderStandup_EmptySections(t *testing.T) {
	report := renderStandup(time.Now(), nil, nil, nil, false, domain.Inbox{})

	assert.Contains(t, report, "No issue activity.")
	assert.Contains(t, report, "No commits in the window.")
	assert.NotContains(t, report, "## Inbox")
}

func TestRenderNotes_FallsBackToSubject(t *testing.T) {
	now := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)

	commits := []domain.Commit{
		{Hash: "aaaa111122223333", Subject: "feat: add export"},
		{Hash: "bbbb111122223333", Subject: "chore: bump deps"},
	}
	summaries := []domain.Summary{
		{Subject: "aaaa111122223333", Text: "You can now export reports."},
	}

	notes := renderNotes(now, commits, summaries)

	assert.Contains(t, notes, "# Release notes 2026-08-25")
	assert.Contains(t, notes, "- You can now export reports. (aaaa1111)")
	assert.Contains(t, notes, "- chore: bump deps (bbbb1111)")
}

func TestRenderNotes_NoCommits(t *testing.T) {
	notes := renderNotes(time.Now(), nil, nil)
	assert.Contains(t, notes, "No changes in the window.")
}

func TestRelatedCommits(t *testing.T) {
	commits := []domain.Commit{
		{Hash: "1", Subject: "fix: APP-1 retry"},
		{Hash: "2", Subject: "feat: APP-12 export"},
		{Hash: "3", Subject: "chore: cleanup"},
	}

	related := relatedCommits("APP-1", commits)

	// APP-12 contains APP-1 as a substring; key matching is by convention
	// and deliberately loose.
	require.Len(t, related, 2)
	assert.Equal(t, "1", related[0].Hash)
	assert.Equal(t, "2", related[1].Hash)
}

func TestShortHash(t *testing.T) {
	assert.Equal(t, "abcdef12", shortHash("abcdef1234567890"))
	assert.Equal(t, "abc", shortHash("abc"))
}

func TestStandupPrompt(t *testing.T) {
	prompt := standupPrompt(
		domain.Issue{Key: "APP-1", Summary: "Timeouts", Status: "Open"},
		[]domain.Commit{{Subject: "fix: APP-1 retry", Author: "Mira"}},
	)

	assert.Contains(t, prompt, "APP-1")
	assert.Contains(t, prompt, `"Timeouts"`)
	assert.Contains(t, prompt, "- fix: APP-1 retry (Mira)")
}

func TestArtifactHelpers(t *testing.T) {
	jc := &JobContext{WorkDir: t.TempDir()}

	assert.False(t, jc.artifactExists(issuesArtifact))

	in := []domain.Issue{{Key: "APP-1", Summary: "Timeouts"}}
	require.NoError(t, jc.writeJSONArtifact(issuesArtifact, in))
	assert.True(t, jc.artifactExists(issuesArtifact))

	var out []domain.Issue
	require.NoError(t, jc.readJSONArtifact(issuesArtifact, &out))
	assert.Equal(t, in, out)
}

func TestReadJSONArtifact_Missing(t *testing.T) {
	jc := &JobContext{WorkDir: t.TempDir()}

	var out []domain.Issue
	err := jc.readJSONArtifact(issuesArtifact, &out)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrArtifactReadFailed)
}

func TestReadOptionalJSONArtifact(t *testing.T) {
	jc := &JobContext{WorkDir: t.TempDir()}

	var inbox domain.Inbox
	ok, err := jc.readOptionalJSONArtifact(inboxArtifact, &inbox)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, jc.writeJSONArtifact(inboxArtifact, domain.Inbox{
		Mail: []domain.Message{{From: "a@example.com"}},
	}))

	ok, err = jc.readOptionalJSONArtifact(inboxArtifact, &inbox)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Len(t, inbox.Mail, 1)
}
