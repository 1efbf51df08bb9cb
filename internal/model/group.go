package model

// PageCount is the number of fixed pages (tabs) a group can be assigned to.
const PageCount = 10

// DefaultGroupTitle is the placeholder title for new groups.
const DefaultGroupTitle = "New Group"

// Group is a named, ordered list of link items assigned to one page.
type Group struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Items     []LinkItem `json:"items"`
	PageIndex int        `json:"pageIndex"` // 0-9; other values show on no tab
}

// NewGroupParams holds parameters for creating a new Group.
type NewGroupParams struct {
	Title     string
	PageIndex int
}

// NewGroup creates an empty Group with a generated UUID.
// An empty title gets DefaultGroupTitle.
func NewGroup(params NewGroupParams) Group {
	title := params.Title
	if title == "" {
		title = DefaultGroupTitle
	}
	return Group{
		ID:        GenerateUUID(),
		Title:     title,
		Items:     []LinkItem{},
		PageIndex: params.PageIndex,
	}
}

// OnTab reports whether the group's page index addresses a visible tab.
func (g Group) OnTab() bool {
	return g.PageIndex >= 0 && g.PageIndex < PageCount
}

// ItemIndex returns the position of the item with the given ID, or -1.
func (g Group) ItemIndex(id string) int {
	for i := range g.Items {
		if g.Items[i].ID == id {
			return i
		}
	}
	return -1
}
