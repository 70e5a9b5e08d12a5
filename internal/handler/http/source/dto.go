// Package source provides the HTTP handlers for managing feed sources.
package source

import (
	"time"

	"github.com/codenough/news-feed-app/internal/domain/entity"
)

// DTO is the JSON shape of a feed source.
type DTO struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	URL           string     `json:"url"`
	Enabled       bool       `json:"enabled"`
	LastFetchedAt *time.Time `json:"last_fetched_at,omitempty"`
}

// FromEntity converts a domain source to its API shape.
func FromEntity(s *entity.Source) DTO {
	return DTO{
		ID:            s.ID,
		Name:          s.Name,
		URL:           s.FeedURL,
		Enabled:       s.Enabled,
		LastFetchedAt: s.LastFetchedAt,
	}
}

// CreateRequest is the body for registering a new source.
type CreateRequest struct {
	Name    string `json:"name"`
	URL     string `json:"url"`
	Enabled *bool  `json:"enabled,omitempty"`
}

// UpdateRequest is the body for modifying a source. Empty fields keep the
// current value.
type UpdateRequest struct {
	Name    string `json:"name,omitempty"`
	URL     string `json:"url,omitempty"`
	Enabled *bool  `json:"enabled,omitempty"`
}
