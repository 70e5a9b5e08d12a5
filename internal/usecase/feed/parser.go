// Package feed turns raw RSS 2.0 / Atom documents into normalized Article
// values. It uses the gofeed library for dialect detection and namespace
// resolution, and layers the field fallback chains on top.
package feed

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/mmcdole/gofeed"
	gext "github.com/mmcdole/gofeed/extensions"

	"github.com/codenough/news-feed-app/internal/domain/entity"
	"github.com/codenough/news-feed-app/internal/observability/metrics"
)

// Parser parses feed documents into articles. It is stateless and safe for
// concurrent use.
type Parser struct{}

// NewParser creates a feed parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse converts one feed document into normalized articles.
//
// A well-formed document that is neither RSS nor Atom yields an empty slice
// and no error (an empty feed is valid). Document-level malformation yields
// entity.ErrInvalidFormat. A malformed individual item is logged and
// skipped; it never aborts parsing of sibling items.
func (p *Parser) Parse(xmlText, sourceName string) ([]entity.Article, error) {
	parsed, err := gofeed.NewParser().ParseString(xmlText)
	if err != nil {
		if errors.Is(err, gofeed.ErrFeedTypeNotDetected) {
			// gofeed cannot tell "not XML" apart from "XML that is not a
			// feed". Only the former counts as a parse failure; a
			// well-formed non-feed document yields an empty article set.
			if wellFormedXML(xmlText) {
				return []entity.Article{}, nil
			}
		}
		return nil, fmt.Errorf("%w: %v", entity.ErrInvalidFormat, err)
	}

	fetchEpoch := time.Now().Unix()
	articles := make([]entity.Article, 0, len(parsed.Items))

	for _, item := range parsed.Items {
		if item == nil {
			continue
		}

		title := Sanitize(item.Title)
		link := strings.TrimSpace(item.Link)
		if link == "" && len(item.Links) > 0 {
			link = strings.TrimSpace(item.Links[0])
		}

		// An item needs both a title and a resolvable link to be usable.
		if title == "" || link == "" {
			slog.Warn("skipping feed item without usable title and link",
				slog.String("source", sourceName),
				slog.String("title", item.Title),
				slog.String("link", link))
			metrics.RecordItemSkipped(sourceName)
			continue
		}

		articles = append(articles, entity.Article{
			ID:          fmt.Sprintf("%s-%d-%d", sourceName, fetchEpoch, len(articles)),
			Title:       title,
			Description: Sanitize(extractBody(item)),
			URL:         link,
			ImageURL:    extractImage(item),
			SourceName:  sourceName,
			PublishedAt: extractPublished(item),
			Category:    extractCategory(item),
		})
	}

	return articles, nil
}

// extractBody picks the item body with the fallback order
// description -> content:encoded -> summary/content, first non-empty wins.
// gofeed already maps Atom summary to Description and Atom content (and
// namespace-resolved content:encoded) to Content; the literal-prefix
// extension lookup covers documents with inconsistent namespace
// declarations.
func extractBody(item *gofeed.Item) string {
	if s := strings.TrimSpace(item.Description); s != "" {
		return item.Description
	}
	if s := strings.TrimSpace(item.Content); s != "" {
		return item.Content
	}
	if v := extensionValue(item, "content", "encoded"); v != "" {
		return v
	}
	return ""
}

// extractPublished resolves the publish timestamp with the fallback order
// pubDate/published -> updated -> dc:date, defaulting to the current
// wall-clock time. A missing or unparseable date never rejects the item.
func extractPublished(item *gofeed.Item) time.Time {
	if item.PublishedParsed != nil {
		return *item.PublishedParsed
	}
	if item.UpdatedParsed != nil {
		return *item.UpdatedParsed
	}

	raw := ""
	if item.DublinCoreExt != nil && len(item.DublinCoreExt.Date) > 0 {
		raw = item.DublinCoreExt.Date[0]
	}
	if raw == "" {
		raw = extensionValue(item, "dc", "date")
	}
	if raw != "" {
		if t, err := dateparse.ParseAny(raw); err == nil {
			return t
		}
	}

	return time.Now()
}

// extractImage tries, in order: media:content / media:thumbnail url
// attributes, the item image, an enclosure with an image type, and finally
// the first <img src> in the body HTML. Absence is not an error.
func extractImage(item *gofeed.Item) string {
	for _, name := range []string{"content", "thumbnail"} {
		for _, ext := range mediaExtensions(item, name) {
			if u := strings.TrimSpace(ext.Attrs["url"]); u != "" {
				return u
			}
		}
	}

	if item.Image != nil {
		if u := strings.TrimSpace(item.Image.URL); u != "" {
			return u
		}
	}

	for _, enc := range item.Enclosures {
		if enc == nil {
			continue
		}
		if strings.HasPrefix(enc.Type, "image") {
			if u := strings.TrimSpace(enc.URL); u != "" {
				return u
			}
		}
	}

	if u := FirstImageSrc(item.Description); u != "" {
		return u
	}
	return FirstImageSrc(item.Content)
}

func extractCategory(item *gofeed.Item) string {
	for _, c := range item.Categories {
		if s := Sanitize(c); s != "" {
			return s
		}
	}
	return entity.DefaultCategory
}

// extensionValue looks up a namespaced child element by its literal prefix,
// e.g. ("content", "encoded") for <content:encoded>. gofeed keys extensions
// by prefix, which also catches documents whose namespace declarations do
// not match the prefixes they use.
func extensionValue(item *gofeed.Item, prefix, name string) string {
	exts, ok := item.Extensions[prefix]
	if !ok {
		return ""
	}
	for _, ext := range exts[name] {
		if v := strings.TrimSpace(ext.Value); v != "" {
			return v
		}
	}
	return ""
}

func mediaExtensions(item *gofeed.Item, name string) []gext.Extension {
	exts, ok := item.Extensions["media"]
	if !ok {
		return nil
	}
	return exts[name]
}

// wellFormedXML reports whether the input tokenizes cleanly as an XML
// document with at least one element.
func wellFormedXML(s string) bool {
	dec := xml.NewDecoder(strings.NewReader(s))
	sawElement := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return sawElement
		}
		if err != nil {
			return false
		}
		if _, ok := tok.(xml.StartElement); ok {
			sawElement = true
		}
	}
}
