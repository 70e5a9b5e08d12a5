package entity

import "time"

// ArticleState is the persisted per-article user state, keyed by the
// article's identity key. It is created on the first user action on an
// article, updated on every subsequent action, and only ever deleted by
// capacity pruning.
//
// LastModifiedAt round-trips through JSON as an RFC 3339 string.
type ArticleState struct {
	Read           bool      `json:"read"`
	Bookmarked     bool      `json:"bookmarked"`
	SavedForLater  bool      `json:"saved_for_later"`
	Skipped        bool      `json:"skipped"`
	LastModifiedAt time.Time `json:"last_modified_at"`
}

// StatePatch is a partial update of the four user-state flags. A nil field
// leaves the corresponding flag untouched.
type StatePatch struct {
	Read          *bool `json:"read,omitempty"`
	Bookmarked    *bool `json:"bookmarked,omitempty"`
	SavedForLater *bool `json:"saved_for_later,omitempty"`
	Skipped       *bool `json:"skipped,omitempty"`
}

// IsZero reports whether the patch changes nothing.
func (p StatePatch) IsZero() bool {
	return p.Read == nil && p.Bookmarked == nil && p.SavedForLater == nil && p.Skipped == nil
}

// Apply merges the patch into the given state and returns the result.
// The LastModifiedAt timestamp is left for the caller to refresh.
func (p StatePatch) Apply(st ArticleState) ArticleState {
	if p.Read != nil {
		st.Read = *p.Read
	}
	if p.Bookmarked != nil {
		st.Bookmarked = *p.Bookmarked
	}
	if p.SavedForLater != nil {
		st.SavedForLater = *p.SavedForLater
	}
	if p.Skipped != nil {
		st.Skipped = *p.Skipped
	}
	return st
}
