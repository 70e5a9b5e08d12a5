package fetch

import "errors"

// Transport-level sentinel errors shared with the infra fetchers.
var (
	// ErrInvalidURL is returned when a URL fails validation before fetch.
	ErrInvalidURL = errors.New("invalid URL")

	// ErrPrivateIP is returned when a hostname resolves to a private or
	// loopback address while private access is denied.
	ErrPrivateIP = errors.New("URL resolves to private IP")

	// ErrTimeout is returned when a request exceeds its deadline.
	ErrTimeout = errors.New("request timeout")

	// ErrTooManyRedirects is returned when the redirect limit is hit.
	ErrTooManyRedirects = errors.New("too many redirects")

	// ErrBodyTooLarge is returned when a response exceeds the size limit.
	ErrBodyTooLarge = errors.New("response body too large")

	// ErrExtractFailed is returned when readable text cannot be extracted
	// from an article page.
	ErrExtractFailed = errors.New("content extraction failed")
)
