// Package entity defines the core domain entities for the feed reader.
// It contains the fundamental business objects such as Article, Source and
// ArticleState, along with their validation rules and domain-specific errors.
package entity

import (
	"strings"
	"time"
)

// DefaultCategory is assigned to articles whose feed carries no category.
const DefaultCategory = "General"

// Article represents one normalized item from a syndicated feed.
//
// ID is ephemeral: it is assigned at parse time and is NOT stable across
// fetches. Identity for merge and persistence purposes is derived by
// IdentityKey. Two Article values with different IDs but the same identity
// key refer to the same logical item.
type Article struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	ImageURL    string    `json:"image_url,omitempty"`
	SourceName  string    `json:"source_name"`
	PublishedAt time.Time `json:"published_at"`
	Category    string    `json:"category"`

	// User-state flags. The authoritative copy lives in the state store;
	// these mirror it for the in-memory canonical set.
	Read          bool `json:"read"`
	Bookmarked    bool `json:"bookmarked"`
	SavedForLater bool `json:"saved_for_later"`
	Skipped       bool `json:"skipped"`
}

// IdentityKey derives the stable cross-fetch identity of the article.
//
// The normalized URL is preferred because feed-generated titles can repeat
// or be ambiguous; the URL is the most stable anchor the feed itself
// provides. When no URL is present the key falls back to
// "sourceName-title". The fallback can collide for two genuinely different
// URL-less articles that share a title; that limitation is inherited from
// the feed data and deliberately preserved.
func (a Article) IdentityKey() string {
	if u := strings.TrimSpace(a.URL); u != "" {
		return strings.ToLower(u)
	}
	return strings.ToLower(strings.TrimSpace(a.SourceName + "-" + a.Title))
}

// Flags returns the four user-state flags as an ArticleState snapshot
// without a modification timestamp.
func (a Article) Flags() ArticleState {
	return ArticleState{
		Read:          a.Read,
		Bookmarked:    a.Bookmarked,
		SavedForLater: a.SavedForLater,
		Skipped:       a.Skipped,
	}
}

// SetFlags copies the four user-state flags from the given state onto the
// article, leaving descriptive metadata untouched.
func (a *Article) SetFlags(st ArticleState) {
	a.Read = st.Read
	a.Bookmarked = st.Bookmarked
	a.SavedForLater = st.SavedForLater
	a.Skipped = st.Skipped
}

// FetchResult is the per-source outcome of one fetch pass. It is always
// produced, even on total failure, so that fan-in can distinguish partial
// from total failure.
type FetchResult struct {
	Source   *Source
	Articles []Article
	Err      error
}
