package domain

import "go.trai.ch/zerr"

var (
	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigNotFound is returned when the config file cannot be found.
	ErrConfigNotFound = zerr.New("could not find briefkit.yaml")

	// ErrUnknownJob is returned when a requested job is not defined.
	ErrUnknownJob = zerr.New("unknown job")

	// ErrNoJobSpecified is returned when no job is specified for the run command.
	ErrNoJobSpecified = zerr.New("no job specified")

	// ErrMissingCredential is returned when a required credential is not set
	// in the environment before any remote call is attempted.
	ErrMissingCredential = zerr.New("missing required credential")

	// ErrStageFailed is returned when a pipeline stage fails.
	ErrStageFailed = zerr.New("stage failed")

	// ErrStageNotOptional is returned when configuration disables a stage
	// that is not marked optional.
	ErrStageNotOptional = zerr.New("cannot disable a required stage")

	// ErrDuplicateStage is returned when a pipeline is built with two stages
	// sharing an ID.
	ErrDuplicateStage = zerr.New("duplicate stage id")

	// ErrCacheKeyFailed is returned when a cache key cannot be generated
	// from the given components.
	ErrCacheKeyFailed = zerr.New("failed to generate cache key")

	// ErrCacheMarshalFailed is returned when a cache value cannot be marshaled.
	ErrCacheMarshalFailed = zerr.New("failed to marshal cache value")

	// ErrCacheUnmarshalFailed is returned when a cache value cannot be unmarshaled.
	ErrCacheUnmarshalFailed = zerr.New("failed to unmarshal cache value")

	// ErrCacheWriteFailed is returned when a cache entry cannot be written.
	ErrCacheWriteFailed = zerr.New("failed to write cache entry")

	// ErrCacheClearFailed is returned when clearing the cache fails.
	ErrCacheClearFailed = zerr.New("failed to clear cache")

	// ErrCheckpointReadFailed is returned when the checkpoint file cannot be read.
	ErrCheckpointReadFailed = zerr.New("failed to read checkpoint")

	// ErrCheckpointWriteFailed is returned when the checkpoint file cannot be written.
	ErrCheckpointWriteFailed = zerr.New("failed to write checkpoint")

	// ErrTrackerRequestFailed is returned when a ticket tracker request fails.
	ErrTrackerRequestFailed = zerr.New("ticket tracker request failed")

	// ErrTrackerParseFailed is returned when a ticket tracker response cannot be parsed.
	ErrTrackerParseFailed = zerr.New("failed to parse ticket tracker response")

	// ErrIssueNotFound is returned when a requested issue does not exist.
	ErrIssueNotFound = zerr.New("issue not found")

	// ErrCompletionRequestFailed is returned when a completion request fails.
	ErrCompletionRequestFailed = zerr.New("completion request failed")

	// ErrCompletionParseFailed is returned when a completion response cannot be parsed.
	ErrCompletionParseFailed = zerr.New("failed to parse completion response")

	// ErrWorkspaceRequestFailed is returned when a mail/calendar/chat request fails.
	ErrWorkspaceRequestFailed = zerr.New("workspace request failed")

	// ErrWorkspaceParseFailed is returned when a workspace response cannot be parsed.
	ErrWorkspaceParseFailed = zerr.New("failed to parse workspace response")

	// ErrGitLogFailed is returned when reading git history fails.
	ErrGitLogFailed = zerr.New("failed to read git log")

	// ErrArtifactWriteFailed is returned when a stage artifact cannot be written.
	ErrArtifactWriteFailed = zerr.New("failed to write artifact")

	// ErrArtifactReadFailed is returned when a required upstream artifact is
	// missing or unreadable.
	ErrArtifactReadFailed = zerr.New("failed to read artifact")

	// ErrRunFailed is returned when a job run fails.
	ErrRunFailed = zerr.New("job run failed")
)
