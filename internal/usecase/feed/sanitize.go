package feed

import (
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	tagRE        = regexp.MustCompile(`<[^>]*>`)
	whitespaceRE = regexp.MustCompile(`\s+`)
)

// Sanitize strips markup from feed-provided text and decodes HTML
// entities, collapsing runs of whitespace and trimming the result.
//
// Feeds routinely ship entity-encoded fragments inside CDATA, so the text
// is round-tripped through an HTML parser rather than unescaped blindly.
// The regex path only runs when the fragment does not parse.
func Sanitize(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}

	text := ""
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err == nil {
		text = doc.Text()
	} else {
		text = html.UnescapeString(tagRE.ReplaceAllString(s, ""))
	}

	return strings.TrimSpace(whitespaceRE.ReplaceAllString(text, " "))
}

// FirstImageSrc scans an HTML fragment for the first <img> with a usable
// src attribute. Returns "" when the fragment has none.
func FirstImageSrc(fragment string) string {
	if !strings.Contains(fragment, "<img") {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return ""
	}

	src := ""
	doc.Find("img").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if v := strings.TrimSpace(sel.AttrOr("src", "")); v != "" {
			src = v
			return false
		}
		return true
	})
	return src
}
