package domain

import "path/filepath"

const (
	// BriefkitDirName is the name of the internal workspace directory.
	BriefkitDirName = ".briefkit"

	// CacheDirName is the name of the result cache directory.
	CacheDirName = "cache"

	// JobsDirName is the name of the per-job working directory tree.
	JobsDirName = "jobs"

	// CheckpointFileName is the name of the pipeline checkpoint file.
	CheckpointFileName = "checkpoint"

	// ConfigFileName is the name of the toolbox configuration file.
	ConfigFileName = "briefkit.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// DefaultBriefkitPath returns the default root directory for briefkit metadata.
func DefaultBriefkitPath() string {
	return BriefkitDirName
}

// DefaultCachePath returns the default path for the result cache.
// It joins .briefkit and cache.
func DefaultCachePath() string {
	return filepath.Join(BriefkitDirName, CacheDirName)
}

// JobWorkDir returns the working directory for a job under the given root.
func JobWorkDir(root, job string) string {
	return filepath.Join(root, BriefkitDirName, JobsDirName, job)
}

// CheckpointPath returns the checkpoint file path inside a job working directory.
func CheckpointPath(workDir string) string {
	return filepath.Join(workDir, CheckpointFileName)
}
