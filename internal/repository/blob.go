// Package repository defines the persistence ports consumed by the use
// case layer. Implementations live under internal/infra/persistence.
package repository

import (
	"context"
	"errors"
)

// ErrBlobNotFound is returned by Load when no blob has been saved yet.
// Callers treat it as an empty store, not a failure.
var ErrBlobNotFound = errors.New("blob not found")

// BlobStore is a durable home for one opaque value. The state store and the
// article snapshot each own a separate blob.
//
// Save must return entity.ErrQuotaExceeded (possibly wrapped) when the
// medium rejects the write due to size limits, so callers can degrade
// instead of failing.
type BlobStore interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	Clear(ctx context.Context) error
}
