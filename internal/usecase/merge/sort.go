package merge

import (
	"sort"
	"strings"

	"github.com/codenough/news-feed-app/internal/domain/entity"
)

// SortByPublished orders articles newest-first. Ties break by identity key
// so the order is stable across refreshes.
func SortByPublished(articles []entity.Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		if !articles[i].PublishedAt.Equal(articles[j].PublishedAt) {
			return articles[i].PublishedAt.After(articles[j].PublishedAt)
		}
		return articles[i].IdentityKey() < articles[j].IdentityKey()
	})
}

// Filter describes a view over the canonical article set. Zero value
// selects everything.
type Filter struct {
	SourceName string
	Category   string
	Unread     bool
	Bookmarked bool
	HideSkip   bool
}

// Apply returns the articles matching the filter, preserving input order.
func (f Filter) Apply(articles []entity.Article) []entity.Article {
	out := make([]entity.Article, 0, len(articles))
	for _, a := range articles {
		if f.SourceName != "" && !strings.EqualFold(a.SourceName, f.SourceName) {
			continue
		}
		if f.Category != "" && !strings.EqualFold(a.Category, f.Category) {
			continue
		}
		if f.Unread && a.Read {
			continue
		}
		if f.Bookmarked && !a.Bookmarked {
			continue
		}
		if f.HideSkip && a.Skipped {
			continue
		}
		out = append(out, a)
	}
	return out
}
