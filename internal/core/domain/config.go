package domain

import "time"

// Config holds the loaded toolbox configuration. It is constructed once by
// the config loader and passed by reference into the components that need
// it; there is no process-wide config singleton.
type Config struct {
	// Root is the directory the config was loaded from. All relative
	// paths (cache, job working dirs) resolve against it.
	Root string

	// Concurrency is the hard ceiling on simultaneously outstanding
	// remote calls within one stage.
	Concurrency int

	// DelayBetweenBatches is the pause between waves in the fixed-batch
	// executor strategy.
	DelayBetweenBatches time.Duration

	// CacheDir is the result cache root. Defaults to <Root>/.briefkit/cache.
	CacheDir string

	// TrackerTTL is how long cached tracker reads stay fresh.
	TrackerTTL time.Duration

	// SummaryTTL is how long cached AI summaries stay fresh. Generated
	// artifacts are far more expensive than tracker reads and live longer
	// in the same store.
	SummaryTTL time.Duration

	// Repo is the path of the git repository history is read from.
	Repo string

	Tracker    TrackerConfig
	Completion CompletionConfig
	Workspace  WorkspaceConfig

	// Jobs maps job name to per-job settings.
	Jobs map[string]JobConfig
}

// TrackerConfig configures the ticket tracker client.
type TrackerConfig struct {
	BaseURL  string
	Project  string
	TokenEnv string
}

// CompletionConfig configures the AI completion client.
type CompletionConfig struct {
	BaseURL  string
	Model    string
	TokenEnv string
}

// WorkspaceConfig configures the mail/calendar/chat client.
type WorkspaceConfig struct {
	BaseURL  string
	TokenEnv string
}

// JobConfig holds per-job settings.
type JobConfig struct {
	// Skip lists optional stage IDs disabled for this job.
	Skip []string
}

// Job returns the settings for the named job, falling back to zero values
// when the job has no explicit section.
func (c *Config) Job(name string) JobConfig {
	if c.Jobs == nil {
		return JobConfig{}
	}
	return c.Jobs[name]
}
