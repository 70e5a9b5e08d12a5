package entity

import "errors"

// Sentinel errors shared across the pipeline.
var (
	// ErrInvalidFormat indicates that a feed document failed to parse at
	// the document level. It is absorbed into that source's FetchResult
	// and never propagates past the orchestrator.
	ErrInvalidFormat = errors.New("invalid feed format")

	// ErrAllSourcesFailed indicates that every enabled source returned an
	// error during a fetch pass. The canonical article set is left
	// unmodified when this is reported.
	ErrAllSourcesFailed = errors.New("all sources failed")

	// ErrQuotaExceeded is returned by a blob store when the persistence
	// medium rejects a write due to size limits.
	ErrQuotaExceeded = errors.New("storage quota exceeded")

	// ErrInvalidSource indicates a source failed validation.
	ErrInvalidSource = errors.New("invalid source")

	// ErrSourceNotFound indicates a registry lookup for an unknown source.
	ErrSourceNotFound = errors.New("source not found")

	// ErrArticleNotFound indicates a state mutation targeted an identity
	// key absent from the canonical article set.
	ErrArticleNotFound = errors.New("article not found")
)
