// Package article provides the HTTP handlers for browsing articles and
// mutating their per-article state.
package article

import (
	"time"

	"github.com/codenough/news-feed-app/internal/domain/entity"
)

// DTO is the JSON shape of an article exposed over the API. The identity
// key is included so clients can address state mutations.
type DTO struct {
	ID            string    `json:"id"`
	Key           string    `json:"key"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	URL           string    `json:"url"`
	ImageURL      string    `json:"image_url,omitempty"`
	SourceName    string    `json:"source_name"`
	Category      string    `json:"category"`
	PublishedAt   time.Time `json:"published_at"`
	Read          bool      `json:"read"`
	Bookmarked    bool      `json:"bookmarked"`
	SavedForLater bool      `json:"saved_for_later"`
	Skipped       bool      `json:"skipped"`
}

// FromEntity converts a domain article to its API shape.
func FromEntity(a entity.Article) DTO {
	return DTO{
		ID:            a.ID,
		Key:           a.IdentityKey(),
		Title:         a.Title,
		Description:   a.Description,
		URL:           a.URL,
		ImageURL:      a.ImageURL,
		SourceName:    a.SourceName,
		Category:      a.Category,
		PublishedAt:   a.PublishedAt,
		Read:          a.Read,
		Bookmarked:    a.Bookmarked,
		SavedForLater: a.SavedForLater,
		Skipped:       a.Skipped,
	}
}

// StateRequest is the JSON body of a state mutation. Omitted fields leave
// the corresponding flag untouched.
type StateRequest struct {
	Read          *bool `json:"read,omitempty"`
	Bookmarked    *bool `json:"bookmarked,omitempty"`
	SavedForLater *bool `json:"saved_for_later,omitempty"`
	Skipped       *bool `json:"skipped,omitempty"`
}

// Patch converts the request body to a domain state patch.
func (r StateRequest) Patch() entity.StatePatch {
	return entity.StatePatch{
		Read:          r.Read,
		Bookmarked:    r.Bookmarked,
		SavedForLater: r.SavedForLater,
		Skipped:       r.Skipped,
	}
}
