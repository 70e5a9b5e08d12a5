package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestStatePatch_Apply(t *testing.T) {
	base := ArticleState{Read: true, Bookmarked: false, SavedForLater: true}

	tests := []struct {
		name  string
		patch StatePatch
		want  ArticleState
	}{
		{
			name:  "empty patch changes nothing",
			patch: StatePatch{},
			want:  base,
		},
		{
			name:  "set single flag",
			patch: StatePatch{Bookmarked: boolPtr(true)},
			want:  ArticleState{Read: true, Bookmarked: true, SavedForLater: true},
		},
		{
			name:  "clear flag",
			patch: StatePatch{Read: boolPtr(false)},
			want:  ArticleState{Read: false, SavedForLater: true},
		},
		{
			name:  "set all four",
			patch: StatePatch{Read: boolPtr(false), Bookmarked: boolPtr(true), SavedForLater: boolPtr(false), Skipped: boolPtr(true)},
			want:  ArticleState{Bookmarked: true, Skipped: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.patch.Apply(base))
		})
	}
}

func TestStatePatch_IsZero(t *testing.T) {
	assert.True(t, StatePatch{}.IsZero())
	assert.False(t, StatePatch{Skipped: boolPtr(false)}.IsZero())
}

func TestArticleState_JSONRoundTrip(t *testing.T) {
	ts := time.Date(2024, 3, 9, 12, 30, 0, 0, time.UTC)
	st := ArticleState{Read: true, SavedForLater: true, LastModifiedAt: ts}

	raw, err := json.Marshal(st)
	require.NoError(t, err)
	// RFC 3339 timestamps keep the persisted layout portable.
	assert.Contains(t, string(raw), `"last_modified_at":"2024-03-09T12:30:00Z"`)

	var back ArticleState
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, st, back)
}
