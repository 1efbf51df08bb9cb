package search

import (
	"testing"

	"github.com/nikbrunner/mystart/internal/model"
	"gotest.tools/v3/assert"
)

func testStore() *model.Store {
	return &model.Store{Groups: []model.Group{
		{ID: "g1", Title: "Dev", PageIndex: 0, Items: []model.LinkItem{
			{ID: "i1", Title: "GitHub", URL: "https://github.com"},
			{ID: "i2", Title: "Docs", URL: "https://go.dev/doc"},
		}},
		{ID: "g2", Title: "News", PageIndex: 1, Items: []model.LinkItem{
			{ID: "i3", Title: "Hacker News", URL: "https://news.ycombinator.com"},
		}},
		{ID: "g3", Title: "Empty", PageIndex: 0, Items: []model.LinkItem{}},
		{ID: "g4", Title: "Video", PageIndex: 2, Items: []model.LinkItem{
			{ID: "i4", Title: "YouTube", URL: "https://www.youtube.com"},
		}},
	}}
}

func groupIDs(groups []model.Group) []string {
	ids := []string{}
	for _, g := range groups {
		ids = append(ids, g.ID)
	}
	return ids
}

func TestProject_ByPage(t *testing.T) {
	tests := []struct {
		page int
		want []string
	}{
		{0, []string{"g1", "g3"}},
		{1, []string{"g2"}},
		{5, []string{}},
	}

	store := testStore()
	for _, tt := range tests {
		got := Project(store, tt.page, "")
		assert.DeepEqual(t, groupIDs(got), tt.want)
	}
}

func TestProject_URLMatchReturnsWholeGroup(t *testing.T) {
	got := Project(testStore(), 1, "go.dev")

	assert.Equal(t, len(got), 1)
	assert.Equal(t, got[0].ID, "g1")
	assert.Equal(t, len(got[0].Items), 2)
}

func TestProject_QueryIgnoresPage(t *testing.T) {
	got := Project(testStore(), 0, "o")

	// every group with an item matching "o", in stored order
	assert.DeepEqual(t, groupIDs(got), []string{"g1", "g2", "g4"})
}

func TestProject_CaseInsensitive(t *testing.T) {
	got := Project(testStore(), 0, "YOUTUBE")

	assert.DeepEqual(t, groupIDs(got), []string{"g4"})
}

func TestProject_NoMatch(t *testing.T) {
	got := Project(testStore(), 0, "xyz123")

	assert.Equal(t, len(got), 0)
}

func TestProject_WhitespaceQueryIsAQuery(t *testing.T) {
	got := Project(testStore(), 0, " ")

	// Only "Hacker News" contains a space.
	assert.DeepEqual(t, groupIDs(got), []string{"g2"})
}

func TestProject_DoesNotAliasStore(t *testing.T) {
	store := testStore()
	got := Project(store, 0, "")

	got[0].Items[0].Title = "changed"
	got[0].Title = "changed"

	assert.Equal(t, store.Groups[0].Items[0].Title, "GitHub")
	assert.Equal(t, store.Groups[0].Title, "Dev")
}

func TestFuzzySearchItems_EmptyQuery(t *testing.T) {
	results := FuzzySearchItems(testStore(), "")

	if len(results) != 0 {
		t.Errorf("expected 0 results for empty query, got %d", len(results))
	}
}

func TestFuzzySearchItems_ExactMatch(t *testing.T) {
	results := FuzzySearchItems(testStore(), "GitHub")

	if len(results) < 1 {
		t.Fatalf("expected at least 1 result, got %d", len(results))
	}
	if results[0].Item.Title != "GitHub" {
		t.Errorf("expected GitHub, got %s", results[0].Item.Title)
	}
	if results[0].GroupID != "g1" {
		t.Errorf("expected group g1, got %s", results[0].GroupID)
	}
}

func TestFuzzySearchItems_MatchesURL(t *testing.T) {
	results := FuzzySearchItems(testStore(), "ycombinator")

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Item.ID != "i3" {
		t.Errorf("expected i3, got %s", results[0].Item.ID)
	}
	if results[0].GroupTitle != "News" {
		t.Errorf("expected group News, got %s", results[0].GroupTitle)
	}
}

func TestFuzzySearchItems_NoMatch(t *testing.T) {
	results := FuzzySearchItems(testStore(), "xyz123")

	if len(results) != 0 {
		t.Errorf("expected 0 results for 'xyz123', got %d", len(results))
	}
}
