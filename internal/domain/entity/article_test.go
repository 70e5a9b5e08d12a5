package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArticle_IdentityKey(t *testing.T) {
	tests := []struct {
		name    string
		article Article
		want    string
	}{
		{
			name:    "url is normalized and preferred",
			article: Article{URL: "  HTTPS://Example.com/Post/1  ", SourceName: "Blog", Title: "Hello"},
			want:    "https://example.com/post/1",
		},
		{
			name:    "falls back to source and title without url",
			article: Article{SourceName: "Blog", Title: "Hello World"},
			want:    "blog-hello world",
		},
		{
			name:    "fallback trims surrounding whitespace",
			article: Article{SourceName: " Blog", Title: "Hello "},
			want:    "blog-hello",
		},
		{
			name:    "whitespace-only url is treated as absent",
			article: Article{URL: "   ", SourceName: "Blog", Title: "Hello"},
			want:    "blog-hello",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.article.IdentityKey())
		})
	}
}

// Two URL-less articles sharing a title collapse to one identity. This is a
// documented limitation of the fallback key, inherited from feeds that
// provide no reliable links.
func TestArticle_IdentityKey_FallbackCollision(t *testing.T) {
	a := Article{SourceName: "Blog", Title: "Weekly Update"}
	b := Article{SourceName: "Blog", Title: "Weekly Update", Description: "a different article"}

	assert.Equal(t, a.IdentityKey(), b.IdentityKey())
}

// IdentityKey and Flags are reads on a value receiver, so they are usable
// directly on unaddressed values such as function results.
func TestArticle_IdentityKey_OnUnaddressedValue(t *testing.T) {
	build := func(url string) Article {
		return Article{URL: url, SourceName: "Blog", Title: "Hello"}
	}

	assert.Equal(t, "https://example.com/p", build("https://example.com/p").IdentityKey())
	assert.False(t, build("https://example.com/p").Flags().Read)
}

func TestArticle_IdentityKey_DiffersAcrossIDs(t *testing.T) {
	a := Article{ID: "blog-100-0", URL: "https://example.com/p"}
	b := Article{ID: "blog-200-7", URL: "https://example.com/p"}

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, a.IdentityKey(), b.IdentityKey())
}

func TestArticle_FlagsRoundTrip(t *testing.T) {
	a := Article{Read: true, SavedForLater: true}

	st := a.Flags()
	assert.True(t, st.Read)
	assert.False(t, st.Bookmarked)
	assert.True(t, st.SavedForLater)
	assert.False(t, st.Skipped)

	var b Article
	b.SetFlags(st)
	assert.Equal(t, a.Flags(), b.Flags())
}
