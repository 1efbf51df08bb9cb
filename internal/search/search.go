package search

import (
	"strings"

	"github.com/nikbrunner/mystart/internal/model"
	"github.com/sahilm/fuzzy"
)

// Project returns the groups to display.
// With a query, every group holding an item whose title or url contains the
// query (case-insensitive) is returned with all of its items, regardless of
// page. Without one, the groups assigned to activePage are returned.
// Groups keep their stored order and are copies of the store's groups.
// A query of only spaces is still a query.
func Project(store *model.Store, activePage int, query string) []model.Group {
	out := []model.Group{}

	for _, g := range store.Groups {
		if query == "" {
			if g.PageIndex != activePage {
				continue
			}
		} else if !groupMatches(g, query) {
			continue
		}
		out = append(out, copyGroup(g))
	}

	return out
}

// ItemMatches reports whether the item's title or url contains query,
// ignoring case.
func ItemMatches(item model.LinkItem, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(item.Title), q) ||
		strings.Contains(strings.ToLower(item.URL), q)
}

func groupMatches(g model.Group, query string) bool {
	for _, it := range g.Items {
		if ItemMatches(it, query) {
			return true
		}
	}
	return false
}

func copyGroup(g model.Group) model.Group {
	items := make([]model.LinkItem, len(g.Items))
	copy(items, g.Items)
	g.Items = items
	return g
}

// SearchResult represents a fuzzy search match.
type SearchResult struct {
	Item           model.LinkItem
	GroupID        string
	GroupTitle     string
	MatchedIndexes []int
	Score          int
}

type indexedItem struct {
	item  model.LinkItem
	group *model.Group
}

// itemSource implements fuzzy.Source over "title url" strings.
type itemSource []indexedItem

func (s itemSource) String(i int) string {
	return s[i].item.Title + " " + s[i].item.URL
}

func (s itemSource) Len() int {
	return len(s)
}

// FuzzySearchItems searches all items by title and url using fuzzy matching.
// Returns results sorted by match score (best first).
func FuzzySearchItems(store *model.Store, query string) []SearchResult {
	if query == "" {
		return nil
	}

	var source itemSource
	for gi := range store.Groups {
		g := &store.Groups[gi]
		for _, it := range g.Items {
			source = append(source, indexedItem{item: it, group: g})
		}
	}

	matches := fuzzy.FindFrom(query, source)

	results := make([]SearchResult, len(matches))
	for i, m := range matches {
		entry := source[m.Index]
		results[i] = SearchResult{
			Item:           entry.item,
			GroupID:        entry.group.ID,
			GroupTitle:     entry.group.Title,
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}

	return results
}
