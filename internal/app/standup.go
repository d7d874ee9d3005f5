package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/brieflab/briefkit/internal/adapters/cache"
	"github.com/brieflab/briefkit/internal/adapters/completion"
	"github.com/brieflab/briefkit/internal/adapters/gitlog"
	"github.com/brieflab/briefkit/internal/adapters/telemetry"
	"github.com/brieflab/briefkit/internal/adapters/tracker"
	"github.com/brieflab/briefkit/internal/adapters/workspace"
	"github.com/brieflab/briefkit/internal/core/domain"
	"github.com/brieflab/briefkit/internal/engine/executor"
	"github.com/brieflab/briefkit/internal/engine/pipeline"
	"go.trai.ch/zerr"
)

// searchLimit bounds one tracker search so a noisy project cannot turn a
// standup into a crawl.
const searchLimit = 50

// standupStages assembles the daily standup report pipeline.
func standupStages(jc *JobContext) []pipeline.Stage {
	return []pipeline.Stage{
		fetchIssuesStage(jc),
		fetchCommitsStage(jc),
		collectInboxStage(jc),
		summarizeIssuesStage(jc),
		renderStandupStage(jc),
	}
}

func fetchIssuesStage(jc *JobContext) pipeline.Stage {
	return pipeline.Stage{
		ID:   "fetch-issues",
		Name: "Fetch tracker issues",
		Run: func(ctx context.Context) error {
			if jc.artifactExists(issuesArtifact) {
				jc.Logger.Info("issues artifact present, skipping fetch")
				return nil
			}

			client, err := tracker.NewClient(jc.Cfg.Tracker)
			if err != nil {
				return err
			}

			query := "updated >= " + jc.Since.Format(time.RFC3339)
			found, err := client.Search(ctx, query, searchLimit)
			if err != nil {
				return err
			}

			results := executor.Map(ctx, found,
				func(ctx context.Context, is domain.Issue, _ int) (domain.Issue, error) {
					key, err := cache.GenerateKey("ticket", is.Key, map[string]string{})
					if err != nil {
						return domain.Issue{}, err
					}
					return cache.Memoize(ctx, jc.Cache, "tracker", key, jc.trackerTTL(),
						func(ctx context.Context) (domain.Issue, error) {
							full, err := client.Issue(ctx, is.Key)
							if err != nil {
								return domain.Issue{}, err
							}
							return *full, nil
						})
				},
				executor.Options{
					MaxConcurrency: jc.Cfg.Concurrency,
					Strategy:       executor.StrategyWindow,
					Progress:       telemetry.LogProgress(jc.Logger, "issues"),
				})

			stats, errs := executor.Tally(results)
			if stats.Total > 0 && stats.Succeeded == 0 {
				return zerr.Wrap(errs, "every issue fetch failed")
			}
			if errs != nil {
				jc.Logger.Warn("some issue fetches failed: " + stats.String())
			}

			return jc.writeJSONArtifact(issuesArtifact, executor.Successes(results))
		},
	}
}

func fetchCommitsStage(jc *JobContext) pipeline.Stage {
	return pipeline.Stage{
		ID:   "fetch-commits",
		Name: "Fetch repository commits",
		Run: func(ctx context.Context) error {
			if jc.artifactExists(commitsArtifact) {
				jc.Logger.Info("commits artifact present, skipping fetch")
				return nil
			}

			commits, err := gitlog.NewReader().Commits(ctx, jc.Cfg.Repo, jc.Since)
			if err != nil {
				return err
			}
			if commits == nil {
				commits = []domain.Commit{}
			}

			return jc.writeJSONArtifact(commitsArtifact, commits)
		},
	}
}

func collectInboxStage(jc *JobContext) pipeline.Stage {
	return pipeline.Stage{
		ID:       "collect-inbox",
		Name:     "Collect mail, calendar, and chat",
		Optional: true,
		Run: func(ctx context.Context) error {
			if jc.artifactExists(inboxArtifact) {
				jc.Logger.Info("inbox artifact present, skipping collection")
				return nil
			}

			client, err := workspace.NewClient(jc.Cfg.Workspace)
			if err != nil {
				return err
			}

			mail, err := client.UnreadMail(ctx, jc.Since)
			if err != nil {
				return err
			}
			events, err := client.Events(ctx, time.Now())
			if err != nil {
				return err
			}
			mentions, err := client.Mentions(ctx, jc.Since)
			if err != nil {
				return err
			}

			return jc.writeJSONArtifact(inboxArtifact, domain.Inbox{
				Mail:     mail,
				Events:   events,
				Mentions: mentions,
			})
		},
	}
}

func summarizeIssuesStage(jc *JobContext) pipeline.Stage {
	return pipeline.Stage{
		ID:   "summarize",
		Name: "Summarize activity",
		Run: func(ctx context.Context) error {
			if jc.artifactExists(summariesArtifact) {
				jc.Logger.Info("summaries artifact present, skipping")
				return nil
			}

			var issues []domain.Issue
			if err := jc.readJSONArtifact(issuesArtifact, &issues); err != nil {
				return err
			}
			var commits []domain.Commit
			if err := jc.readJSONArtifact(commitsArtifact, &commits); err != nil {
				return err
			}

			client, err := completion.NewClient(jc.Cfg.Completion)
			if err != nil {
				return err
			}

			requests := make([]domain.CompletionRequest, len(issues))
			for i, is := range issues {
				requests[i] = domain.CompletionRequest{
					Model:  jc.Cfg.Completion.Model,
					Prompt: standupPrompt(is, relatedCommits(is.Key, commits)),
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
					return domain.Summary{Subject: issues[i].Key, Text: text}, nil
				},
				executor.Options{
					MaxConcurrency:      jc.Cfg.Concurrency,
					Strategy:            executor.StrategyBatch,
					DelayBetweenBatches: jc.Cfg.DelayBetweenBatches,
					Progress:            telemetry.LogProgress(jc.Logger, "summaries"),
				})

			stats, errs := executor.Tally(results)
			if stats.Total > 0 && stats.Succeeded == 0 {
				return zerr.Wrap(errs, "every summary failed")
			}
			if errs != nil {
				jc.Logger.Warn("some summaries failed: " + stats.String())
			}

			return jc.writeJSONArtifact(summariesArtifact, executor.Successes(results))
		},
	}
}

func renderStandupStage(jc *JobContext) pipeline.Stage {
	return pipeline.Stage{
		ID:   "render",
		Name: "Render standup report",
		Run: func(_ context.Context) error {
			var issues []domain.Issue
			if err := jc.readJSONArtifact(issuesArtifact, &issues); err != nil {
				return err
			}
			var commits []domain.Commit
			if err := jc.readJSONArtifact(commitsArtifact, &commits); err != nil {
				return err
			}
			var summaries []domain.Summary
			if err := jc.readJSONArtifact(summariesArtifact, &summaries); err != nil {
				return err
			}

			var inbox domain.Inbox
			hasInbox, err := jc.readOptionalJSONArtifact(inboxArtifact, &inbox)
			if err != nil {
				return err
			}

			report := renderStandup(time.Now(), issues, commits, summaries, hasInbox, inbox)
			return jc.writeArtifact(reportArtifact, []byte(report))
		},
	}
}

// standupPrompt asks for a one-paragraph status update on an issue, with
// the related commit subjects as grounding.
func standupPrompt(is domain.Issue, commits []domain.Commit) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Summarize the current state of issue %s (%q, status %s) in one paragraph for a daily standup.\n",
		is.Key, is.Summary, is.Status)

	if len(commits) > 0 {
		b.WriteString("Related commits:\n")
		for _, c := range commits {
			fmt.Fprintf(&b, "- %s (%s)\n", c.Subject, c.Author)
		}
	}

	return b.String()
}

// relatedCommits matches commits to an issue by the issue key appearing in
// the commit subject, the convention the tracker integration relies on.
func relatedCommits(issueKey string, commits []domain.Commit) []domain.Commit {
	var out []domain.Commit
	for _, c := range commits {
		if strings.Contains(c.Subject, issueKey) {
			out = append(out, c)
		}
	}
	return out
}

func renderStandup(
	now time.Time,
	issues []domain.Issue,
	commits []domain.Commit,
	summaries []domain.Summary,
	hasInbox bool,
	inbox domain.Inbox,
) string {
	summaryBySubject := make(map[string]string, len(summaries))
	for _, s := range summaries {
		summaryBySubject[s.Subject] = s.Text
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Standup %s\n\n", now.Format("2006-01-02"))

	b.WriteString("## Issues\n\n")
	if len(issues) == 0 {
		b.WriteString("No issue activity.\n")
	}
	for _, is := range issues {
		fmt.Fprintf(&b, "### %s: %s\n\n", is.Key, is.Summary)
		fmt.Fprintf(&b, "Status: %s", is.Status)
		if is.Assignee != "" {
			fmt.Fprintf(&b, " (%s)", is.Assignee)
		}
		b.WriteString("\n\n")
		if text, ok := summaryBySubject[is.Key]; ok {
			b.WriteString(strings.TrimSpace(text))
			b.WriteString("\n\n")
		}
	}

	b.WriteString("## Commits\n\n")
	if len(commits) == 0 {
		b.WriteString("No commits in the window.\n")
	}
	for _, c := range commits {
		fmt.Fprintf(&b, "- %s %s (%s)\n", shortHash(c.Hash), c.Subject, c.Author)
	}
	b.WriteString("\n")

	if hasInbox {
		b.WriteString("## Inbox\n\n")
		fmt.Fprintf(&b, "Unread mail: %d, mentions: %d\n\n", len(inbox.Mail), len(inbox.Mentions))
		for _, e := range inbox.Events {
			fmt.Fprintf(&b, "- %s %s to %s\n", e.Title, e.Start.Format("15:04"), e.End.Format("15:04"))
		}
	}

	return b.String()
}

func shortHash(hash string) string {
	if len(hash) > 8 {
		return hash[:8]
	}
	return hash
}
