// Package cache implements the namespace-partitioned result cache using a
// file-per-entry strategy.
package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/brieflab/briefkit/internal/core/domain"
	"github.com/brieflab/briefkit/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ResultCache = (*Store)(nil)

// Store persists one JSON record per (namespace, key) pair under a single
// root directory. Entries are addressed independently, so concurrent
// writers never contend on the same key in normal operation.
type Store struct {
	root string
}

// NewStore creates a Store rooted at the given directory. The directory is
// created lazily on the first Set of each namespace.
func NewStore(root string) *Store {
	return &Store{root: filepath.Clean(root)}
}

// Get returns the entry for key if present and still fresh under ttl.
// Absent, stale, or malformed entries are misses, never errors: cache
// corruption must not break callers.
func (s *Store) Get(namespace, key string, ttl time.Duration) (*domain.CacheEntry, bool) {
	//nolint:gosec // Path is constructed from the store root and a hashed key
	data, err := os.ReadFile(s.entryPath(namespace, key))
	if err != nil {
		return nil, false
	}

	var entry domain.CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}

	if !entry.Live(time.Now(), ttl) {
		return nil, false
	}

	return &entry, true
}

// Set persists or overwrites the entry for key, stamping CreatedAt with
// the current time. The write is atomic (temp file + rename) so a reader
// never observes a partial entry.
func (s *Store) Set(namespace, key string, value []byte, metadata map[string]string) error {
	entry := domain.CacheEntry{
		Key:       key,
		Value:     json.RawMessage(value),
		CreatedAt: time.Now(),
		Metadata:  metadata,
	}

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrCacheMarshalFailed.Error())
	}

	path := s.entryPath(namespace, key)
	if err := atomicWriteFile(path, data); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "namespace", namespace)
	}

	return nil
}

// Clear deletes every entry in the given namespace.
func (s *Store) Clear(namespace string) error {
	if err := os.RemoveAll(filepath.Join(s.root, namespace)); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheClearFailed.Error()), "namespace", namespace)
	}
	return nil
}

// ClearAll deletes every namespace.
func (s *Store) ClearAll() error {
	if err := os.RemoveAll(s.root); err != nil {
		return zerr.Wrap(err, domain.ErrCacheClearFailed.Error())
	}
	return nil
}

func (s *Store) entryPath(namespace, key string) string {
	return filepath.Join(s.root, namespace, key+".json")
}

// atomicWriteFile writes data to a file atomically by writing to a temp
// file in the target directory and renaming it into place.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(dir, "entry-*.json")
	if err != nil {
		return err
	}
	tmpName := tmpFile.Name()

	// Clean up the temp file on any failure before the rename.
	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}

	if err := tmpFile.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
