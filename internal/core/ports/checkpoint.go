package ports

// CheckpointStore persists the identifier of the last successfully
// completed pipeline stage for one job.
//
//go:generate go run go.uber.org/mock/mockgen -source=checkpoint.go -destination=mocks/mock_checkpoint.go -package=mocks
type CheckpointStore interface {
	// Load returns the checkpointed stage ID, or "" when no checkpoint
	// exists.
	Load() (string, error)

	// Save overwrites the checkpoint with the given stage ID.
	Save(stageID string) error

	// Clear removes the checkpoint. Clearing an absent checkpoint is not
	// an error.
	Clear() error
}
