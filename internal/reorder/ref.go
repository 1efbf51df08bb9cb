package reorder

import "fmt"

// Kind distinguishes what a drag reference points at.
type Kind int

const (
	KindGroup Kind = iota
	KindItem
	KindTab
)

func (k Kind) String() string {
	switch k {
	case KindGroup:
		return "group"
	case KindItem:
		return "item"
	case KindTab:
		return "tab"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Ref identifies a draggable entity or a drop target.
// Groups and items are addressed by ID, tabs by Page.
type Ref struct {
	Kind Kind
	ID   string
	Page int
}

// GroupRef references a group header or group body.
func GroupRef(id string) Ref { return Ref{Kind: KindGroup, ID: id} }

// ItemRef references a link item.
func ItemRef(id string) Ref { return Ref{Kind: KindItem, ID: id} }

// TabRef references the tab selector of a page.
func TabRef(page int) Ref { return Ref{Kind: KindTab, Page: page} }

// Same reports whether both refs address the same entity.
func (r Ref) Same(o Ref) bool {
	if r.Kind != o.Kind {
		return false
	}
	if r.Kind == KindTab {
		return r.Page == o.Page
	}
	return r.ID == o.ID
}

func (r Ref) String() string {
	if r.Kind == KindTab {
		return fmt.Sprintf("tab:%d", r.Page)
	}
	return r.Kind.String() + ":" + r.ID
}
