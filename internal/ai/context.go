package ai

import (
	"fmt"
	"strings"

	"github.com/nikbrunner/mystart/internal/model"
)

const maxSampleTitles = 3

// BuildContext describes the existing groups with a few sample link titles
// each, so that suggestions do not duplicate them.
func BuildContext(store *model.Store) string {
	if store == nil || len(store.Groups) == 0 {
		return "Existing groups: none"
	}

	var sb strings.Builder
	sb.WriteString("Existing groups (with sample links):\n")

	for _, g := range store.Groups {
		sb.WriteString(g.Title)
		sb.WriteString("\n")

		sampleCount := min(len(g.Items), maxSampleTitles)
		if sampleCount > 0 {
			titles := make([]string, sampleCount)
			for i := 0; i < sampleCount; i++ {
				titles[i] = fmt.Sprintf("%q", g.Items[i].Title)
			}
			sb.WriteString("  - ")
			sb.WriteString(strings.Join(titles, ", "))
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// AllItemTitles returns the titles of every link in the collection.
func AllItemTitles(store *model.Store) []string {
	var titles []string
	for _, g := range store.Groups {
		titles = append(titles, ItemTitles(g)...)
	}
	return titles
}

// ItemTitles returns the titles of a group's items.
func ItemTitles(g model.Group) []string {
	titles := make([]string, len(g.Items))
	for i, it := range g.Items {
		titles[i] = it.Title
	}
	return titles
}
