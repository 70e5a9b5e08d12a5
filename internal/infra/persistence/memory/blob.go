// Package memory provides an in-memory BlobStore used in tests and in
// ephemeral (no persistence) deployments.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/codenough/news-feed-app/internal/domain/entity"
	"github.com/codenough/news-feed-app/internal/repository"
)

// BlobStore holds the blob in memory. MaxBytes and SaveErr allow tests to
// exercise quota degradation and write failures.
type BlobStore struct {
	mu       sync.Mutex
	data     []byte
	saved    bool
	MaxBytes int
	SaveErr  error
	Saves    int
}

// New creates an empty in-memory blob store with no quota.
func New() *BlobStore { return &BlobStore{} }

// Load returns a copy of the stored blob, or repository.ErrBlobNotFound if
// nothing has been saved.
func (s *BlobStore) Load(_ context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.saved {
		return nil, repository.ErrBlobNotFound
	}
	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out, nil
}

// Save stores a copy of data, honoring the configured failure injections.
func (s *BlobStore) Save(_ context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Saves++
	if s.SaveErr != nil {
		return s.SaveErr
	}
	if s.MaxBytes > 0 && len(data) > s.MaxBytes {
		return fmt.Errorf("%w: blob is %d bytes, limit %d", entity.ErrQuotaExceeded, len(data), s.MaxBytes)
	}
	s.data = make([]byte, len(data))
	copy(s.data, data)
	s.saved = true
	return nil
}

// Clear drops the stored blob.
func (s *BlobStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = nil
	s.saved = false
	return nil
}
