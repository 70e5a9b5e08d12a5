package feed_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/codenough/news-feed-app/internal/usecase/feed"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "whitespace only", in: "  \n\t ", want: ""},
		{name: "plain text untouched", in: "hello world", want: "hello world"},
		{name: "tags stripped", in: "<p>hello <b>world</b></p>", want: "hello world"},
		{name: "entities decoded", in: "fish &amp; chips &mdash; tasty", want: "fish & chips — tasty"},
		{name: "nested markup", in: `<div><a href="http://x">link</a><span> text</span></div>`, want: "link text"},
		{name: "whitespace collapsed", in: "<p>a</p>\n\n<p>b</p>", want: "a b"},
		{name: "surrounding whitespace trimmed", in: "  <p> padded </p>  ", want: "padded"},
		{name: "numeric entity", in: "caf&#233;", want: "café"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, feed.Sanitize(tt.in))
		})
	}
}

func TestFirstImageSrc(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "no image", in: "<p>text only</p>", want: ""},
		{name: "plain text", in: "nothing here", want: ""},
		{
			name: "single image",
			in:   `<p><img src="http://x/a.png"/></p>`,
			want: "http://x/a.png",
		},
		{
			name: "first of several wins",
			in:   `<img src="http://x/1.png"><img src="http://x/2.png">`,
			want: "http://x/1.png",
		},
		{
			name: "skips img without src",
			in:   `<img alt="decorative"><img src="http://x/real.png">`,
			want: "http://x/real.png",
		},
		{
			name: "unquoted attribute still parses",
			in:   `<img src=http://x/u.png>`,
			want: "http://x/u.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, feed.FirstImageSrc(tt.in))
		})
	}
}
