package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/brieflab/briefkit/internal/adapters/cache"
	"github.com/brieflab/briefkit/internal/adapters/completion"
	"github.com/brieflab/briefkit/internal/adapters/telemetry"
	"github.com/brieflab/briefkit/internal/core/domain"
	"github.com/brieflab/briefkit/internal/engine/executor"
	"github.com/brieflab/briefkit/internal/engine/pipeline"
	"go.trai.ch/zerr"
)

// releaseNotesStages assembles the release notes pipeline: the commit
// fetch is shared with the standup job, the summarize step works per
// commit instead of per issue.
func releaseNotesStages(jc *JobContext) []pipeline.Stage {
	return []pipeline.Stage{
		fetchCommitsStage(jc),
		summarizeCommitsStage(jc),
		renderNotesStage(jc),
	}
}

func summarizeCommitsStage(jc *JobContext) pipeline.Stage {
	return pipeline.Stage{
		ID:   "summarize-commits",
		Name: "Summarize commits",
		Run: func(ctx context.Context) error {
			if jc.artifactExists(summariesArtifact) {
				jc.Logger.Info("summaries artifact present, skipping")
				return nil
			}

			var commits []domain.Commit
			if err := jc.readJSONArtifact(commitsArtifact, &commits); err != nil {
				return err
			}

			client, err := completion.NewClient(jc.Cfg.Completion)
			if err != nil {
				return err
			}

			requests := make([]domain.CompletionRequest, len(commits))
			for i, c := range commits {
				requests[i] = domain.CompletionRequest{
					Model:  jc.Cfg.Completion.Model,
					Prompt: releaseNotePrompt(c),
				}
			}

			results := executor.Map(ctx, requests,
				func(ctx context.Context, req domain.CompletionRequest, i int) (domain.Summary, error) {
					key, err := cache.GenerateKey("summary", req.Model, req.Prompt)
					if err != nil {
						return domain.Summary{}, err
					}
					text, err := cache.Memoize(ctx, jc.Cache, "summaries", key, jc.summaryTTL(),
						func(ctx context.Context) (string, error) {
							return client.Complete(ctx, req)
						})
					if err != nil {
						return domain.Summary{}, err
					}
					return domain.Summary{Subject: commits[i].Hash, Text: text}, nil
				},
				executor.Options{
					MaxConcurrency:      jc.Cfg.Concurrency,
					Strategy:            executor.StrategyBatch,
					DelayBetweenBatches: jc.Cfg.DelayBetweenBatches,
					Progress:            telemetry.LogProgress(jc.Logger, "commit summaries"),
				})

			stats, errs := executor.Tally(results)
			if stats.Total > 0 && stats.Succeeded == 0 {
				return zerr.Wrap(errs, "every commit summary failed")
			}
			if errs != nil {
				jc.Logger.Warn("some commit summaries failed: " + stats.String())
			}

			return jc.writeJSONArtifact(summariesArtifact, executor.Successes(results))
		},
	}
}

func renderNotesStage(jc *JobContext) pipeline.Stage {
	return pipeline.Stage{
		ID:   "render-notes",
		Name: "Render release notes",
		Run: func(_ context.Context) error {
			var commits []domain.Commit
			if err := jc.readJSONArtifact(commitsArtifact, &commits); err != nil {
				return err
			}
			var summaries []domain.Summary
			if err := jc.readJSONArtifact(summariesArtifact, &summaries); err != nil {
				return err
			}

			notes := renderNotes(time.Now(), commits, summaries)
			return jc.writeArtifact(notesArtifact, []byte(notes))
		},
	}
}

// releaseNotePrompt asks for a single user-facing line for one commit.
func releaseNotePrompt(c domain.Commit) string {
	return fmt.Sprintf(
		"Rewrite this commit subject as one user-facing release note line, dropping internal jargon: %q\n", c.Subject)
}

func renderNotes(now time.Time, commits []domain.Commit, summaries []domain.Summary) string {
	summaryByHash := make(map[string]string, len(summaries))
	for _, s := range summaries {
		summaryByHash[s.Subject] = s.Text
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Release notes %s\n\n", now.Format("2006-01-02"))

	if len(commits) == 0 {
		b.WriteString("No changes in the window.\n")
		return b.String()
	}

	for _, c := range commits {
		line := summaryByHash[c.Hash]
		if line == "" {
			line = c.Subject
		}
		fmt.Fprintf(&b, "- %s (%s)\n", strings.TrimSpace(line), shortHash(c.Hash))
	}

	return b.String()
}
