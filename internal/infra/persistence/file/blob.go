// Package file provides a file-backed BlobStore implementation.
// Writes go through a temp file and an atomic rename so a crash mid-write
// never corrupts the previous blob.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/codenough/news-feed-app/internal/domain/entity"
	"github.com/codenough/news-feed-app/internal/repository"
)

// BlobStore persists a single blob at a fixed path with an optional size
// quota. A zero MaxBytes disables the quota.
type BlobStore struct {
	path     string
	maxBytes int
}

// New creates a file-backed blob store at path. maxBytes caps the blob
// size; writes beyond it fail with entity.ErrQuotaExceeded.
func New(path string, maxBytes int) *BlobStore {
	return &BlobStore{path: path, maxBytes: maxBytes}
}

// Load reads the blob. Returns repository.ErrBlobNotFound if no blob has
// been saved yet.
func (s *BlobStore) Load(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, repository.ErrBlobNotFound
		}
		return nil, fmt.Errorf("read blob %s: %w", s.path, err)
	}
	return data, nil
}

// Save writes the blob atomically, enforcing the size quota first so a
// rejected write leaves the previous blob intact.
func (s *BlobStore) Save(_ context.Context, data []byte) error {
	if s.maxBytes > 0 && len(data) > s.maxBytes {
		return fmt.Errorf("%w: blob is %d bytes, limit %d", entity.ErrQuotaExceeded, len(data), s.maxBytes)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create blob dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp blob: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write temp blob: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp blob: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace blob %s: %w", s.path, err)
	}
	return nil
}

// Clear removes the blob. Clearing an absent blob is not an error.
func (s *BlobStore) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove blob %s: %w", s.path, err)
	}
	return nil
}
