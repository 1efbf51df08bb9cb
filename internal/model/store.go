package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrDuplicateGroupID = errors.New("duplicate group id")
	ErrDuplicateItemID  = errors.New("duplicate item id")
	ErrIDCollision      = errors.New("item id equals a group id")
)

// Store holds all groups in their display order.
// It serialises as a bare JSON array of groups.
type Store struct {
	Groups []Group
}

// NewStore creates an empty Store with initialized slices.
func NewStore() *Store {
	return &Store{Groups: []Group{}}
}

// SeedStore returns the collection used on first start.
func SeedStore() *Store {
	return &Store{
		Groups: []Group{
			{
				ID:    "g1",
				Title: "Favorites",
				Items: []LinkItem{
					{ID: "l1", Title: "Google", URL: "https://www.google.com"},
					{ID: "l2", Title: "ChatGPT", URL: "https://chat.openai.com"},
					{ID: "l3", Title: "YouTube", URL: "https://www.youtube.com"},
				},
				PageIndex: 0,
			},
		},
	}
}

// MarshalJSON writes the groups as a JSON array.
func (s Store) MarshalJSON() ([]byte, error) {
	groups := s.Groups
	if groups == nil {
		groups = []Group{}
	}
	return json.Marshal(groups)
}

// UnmarshalJSON reads a JSON array of groups without validation.
// Use ParseStore for untrusted input.
func (s *Store) UnmarshalJSON(data []byte) error {
	var groups []Group
	if err := json.Unmarshal(data, &groups); err != nil {
		return err
	}
	s.Groups = normalizeGroups(groups)
	return nil
}

// Clone returns a deep copy of the store.
func (s *Store) Clone() *Store {
	out := &Store{Groups: make([]Group, len(s.Groups))}
	for i, g := range s.Groups {
		items := make([]LinkItem, len(g.Items))
		copy(items, g.Items)
		g.Items = items
		out.Groups[i] = g
	}
	return out
}

// GroupIndex returns the position of the group with the given ID, or -1.
func (s *Store) GroupIndex(id string) int {
	for i := range s.Groups {
		if s.Groups[i].ID == id {
			return i
		}
	}
	return -1
}

// GetGroupByID finds a group by ID, returns nil if not found.
func (s *Store) GetGroupByID(id string) *Group {
	if i := s.GroupIndex(id); i >= 0 {
		return &s.Groups[i]
	}
	return nil
}

// GetItemByID finds an item and its owning group, returns nils if not found.
func (s *Store) GetItemByID(id string) (*LinkItem, *Group) {
	for gi := range s.Groups {
		g := &s.Groups[gi]
		if ii := g.ItemIndex(id); ii >= 0 {
			return &g.Items[ii], g
		}
	}
	return nil, nil
}

// FindContainer resolves which group currently owns the given ID.
// A group ID resolves to itself; an item ID to the first group holding it.
// Returns false for unknown IDs.
func (s *Store) FindContainer(id string) (string, bool) {
	if id == "" {
		return "", false
	}
	if s.GroupIndex(id) >= 0 {
		return id, true
	}
	for _, g := range s.Groups {
		if g.ItemIndex(id) >= 0 {
			return g.ID, true
		}
	}
	return "", false
}

// Exists reports whether a group or item with the given ID is present.
func (s *Store) Exists(id string) bool {
	_, ok := s.FindContainer(id)
	return ok
}

// ItemCount returns the total number of items across all groups.
func (s *Store) ItemCount() int {
	n := 0
	for _, g := range s.Groups {
		n += len(g.Items)
	}
	return n
}

// HasItemURL reports whether any group holds an item with the exact URL.
func (s *Store) HasItemURL(url string) bool {
	for _, g := range s.Groups {
		for _, it := range g.Items {
			if it.URL == url {
				return true
			}
		}
	}
	return false
}

// PagesWithContent reports which tabs hold at least one group.
func (s *Store) PagesWithContent() [PageCount]bool {
	var pages [PageCount]bool
	for _, g := range s.Groups {
		if g.OnTab() {
			pages[g.PageIndex] = true
		}
	}
	return pages
}

// Validate checks that every group and item id is unique across both kinds.
func (s *Store) Validate() error {
	groupIDs := make(map[string]bool, len(s.Groups))
	for _, g := range s.Groups {
		if groupIDs[g.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateGroupID, g.ID)
		}
		groupIDs[g.ID] = true
	}

	itemIDs := make(map[string]bool)
	for _, g := range s.Groups {
		for _, it := range g.Items {
			if itemIDs[it.ID] {
				return fmt.Errorf("%w: %s", ErrDuplicateItemID, it.ID)
			}
			if groupIDs[it.ID] {
				return fmt.Errorf("%w: %s", ErrIDCollision, it.ID)
			}
			itemIDs[it.ID] = true
		}
	}
	return nil
}

// normalizeGroups makes sure no group carries a nil items slice.
func normalizeGroups(groups []Group) []Group {
	if groups == nil {
		return []Group{}
	}
	for i := range groups {
		if groups[i].Items == nil {
			groups[i].Items = []LinkItem{}
		}
	}
	return groups
}
