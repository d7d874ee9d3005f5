package config

// File represents the structure of the briefkit.yaml configuration file.
type File struct {
	Version     string            `yaml:"version"`
	Concurrency int               `yaml:"concurrency"`
	BatchDelay  string            `yaml:"batchDelay"`
	Repo        string            `yaml:"repo"`
	Cache       CacheDTO          `yaml:"cache"`
	Tracker     TrackerDTO        `yaml:"tracker"`
	Completion  CompletionDTO     `yaml:"completion"`
	Workspace   WorkspaceDTO      `yaml:"workspace"`
	Jobs        map[string]JobDTO `yaml:"jobs"`
}

// CacheDTO configures the result cache.
type CacheDTO struct {
	Dir        string `yaml:"dir"`
	TrackerTTL string `yaml:"trackerTTL"`
	SummaryTTL string `yaml:"summaryTTL"`
}

// TrackerDTO configures the ticket tracker client.
type TrackerDTO struct {
	BaseURL  string `yaml:"baseURL"`
	Project  string `yaml:"project"`
	TokenEnv string `yaml:"tokenEnv"`
}

// CompletionDTO configures the AI completion client.
type CompletionDTO struct {
	BaseURL  string `yaml:"baseURL"`
	Model    string `yaml:"model"`
	TokenEnv string `yaml:"tokenEnv"`
}

// WorkspaceDTO configures the mail/calendar/chat client.
type WorkspaceDTO struct {
	BaseURL  string `yaml:"baseURL"`
	TokenEnv string `yaml:"tokenEnv"`
}

// JobDTO represents per-job settings.
type JobDTO struct {
	Skip []string `yaml:"skip"`
}
