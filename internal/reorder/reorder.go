// Package reorder computes how the collection changes when a dragged group or
// item is hovered over, or dropped on, another entity.
//
// Preview and commit share Apply: Preview runs it on a clone, callers commit by
// running it on the authoritative store.
package reorder

import "github.com/nikbrunner/mystart/internal/model"

// Move is the kind of change a (dragged, target) pair produces.
type Move int

const (
	MoveNone         Move = iota // no change
	MoveItemAcross               // item re-parented into another group
	MoveItemWithin               // item repositioned inside its group
	MoveGroupToPage              // group reassigned to another page
	MoveGroupReorder             // group repositioned in the global order
)

func (m Move) String() string {
	switch m {
	case MoveNone:
		return "none"
	case MoveItemAcross:
		return "item-across"
	case MoveItemWithin:
		return "item-within"
	case MoveGroupToPage:
		return "group-to-page"
	case MoveGroupReorder:
		return "group-reorder"
	default:
		return "unknown"
	}
}

// plan is a classified move with the indexes needed to apply it.
type plan struct {
	move Move

	// item moves
	fromGroup, fromIndex int
	toGroup, toIndex     int

	// group moves
	groupIndex, targetIndex int
	page                    int
}

// Classify reports which move dropping active on over would perform.
func Classify(store *model.Store, active, over Ref) Move {
	return classify(store, active, over).move
}

// Apply performs the move of active onto over in place and returns it.
// Unknown or stale refs leave the store untouched and return MoveNone.
func Apply(store *model.Store, active, over Ref) Move {
	p := classify(store, active, over)

	switch p.move {
	case MoveNone:
	case MoveItemAcross:
		src := &store.Groups[p.fromGroup]
		dst := &store.Groups[p.toGroup]
		item := src.Items[p.fromIndex]
		src.Items = removeAt(src.Items, p.fromIndex)
		dst.Items = insertAt(dst.Items, p.toIndex, item)
	case MoveItemWithin:
		g := &store.Groups[p.fromGroup]
		g.Items = MoveIndex(g.Items, p.fromIndex, p.toIndex)
	case MoveGroupToPage:
		store.Groups[p.groupIndex].PageIndex = p.page
	case MoveGroupReorder:
		store.Groups = MoveIndex(store.Groups, p.groupIndex, p.targetIndex)
	}

	return p.move
}

// Preview returns the store that Apply would produce, leaving store untouched.
func Preview(store *model.Store, active, over Ref) (*model.Store, Move) {
	next := store.Clone()
	move := Apply(next, active, over)
	return next, move
}

func classify(store *model.Store, active, over Ref) plan {
	none := plan{move: MoveNone}
	if store == nil || active.Same(over) {
		return none
	}

	switch active.Kind {
	case KindItem:
		return classifyItem(store, active, over)
	case KindGroup:
		return classifyGroup(store, active, over)
	case KindTab:
		return none
	}
	return none
}

func classifyItem(store *model.Store, active, over Ref) plan {
	none := plan{move: MoveNone}

	fromContainer, ok := store.FindContainer(active.ID)
	if !ok || fromContainer == active.ID {
		return none
	}
	fromGroup := store.GroupIndex(fromContainer)
	fromIndex := store.Groups[fromGroup].ItemIndex(active.ID)

	var toContainer string
	switch over.Kind {
	case KindGroup:
		if store.GroupIndex(over.ID) < 0 {
			return none
		}
		toContainer = over.ID
	case KindItem:
		c, ok := store.FindContainer(over.ID)
		if !ok || c == over.ID {
			return none
		}
		toContainer = c
	case KindTab:
		return none
	}
	toGroup := store.GroupIndex(toContainer)
	target := store.Groups[toGroup]

	if toContainer == fromContainer {
		// Dropping on the own group body is not a position change.
		if over.Kind != KindItem {
			return none
		}
		toIndex := target.ItemIndex(over.ID)
		if toIndex == fromIndex {
			return none
		}
		return plan{
			move:      MoveItemWithin,
			fromGroup: fromGroup, fromIndex: fromIndex,
			toGroup: toGroup, toIndex: toIndex,
		}
	}

	toIndex := len(target.Items)
	if over.Kind == KindItem {
		toIndex = target.ItemIndex(over.ID)
	}
	return plan{
		move:      MoveItemAcross,
		fromGroup: fromGroup, fromIndex: fromIndex,
		toGroup: toGroup, toIndex: toIndex,
	}
}

func classifyGroup(store *model.Store, active, over Ref) plan {
	none := plan{move: MoveNone}

	groupIndex := store.GroupIndex(active.ID)
	if groupIndex < 0 {
		return none
	}

	switch over.Kind {
	case KindTab:
		if over.Page < 0 || over.Page >= model.PageCount {
			return none
		}
		if store.Groups[groupIndex].PageIndex == over.Page {
			return none
		}
		return plan{move: MoveGroupToPage, groupIndex: groupIndex, page: over.Page}
	case KindGroup, KindItem:
		// An item target stands for the group that holds it.
		container, ok := store.FindContainer(over.ID)
		if !ok {
			return none
		}
		targetIndex := store.GroupIndex(container)
		if targetIndex == groupIndex {
			return none
		}
		return plan{move: MoveGroupReorder, groupIndex: groupIndex, targetIndex: targetIndex}
	}
	return none
}

// MoveIndex relocates the element at from so that it ends up at index to.
// Elements in between shift by one; the relative order of every other element
// is kept. Out-of-range indexes return the slice unchanged.
func MoveIndex[T any](s []T, from, to int) []T {
	if from < 0 || from >= len(s) || to < 0 || to >= len(s) || from == to {
		return s
	}
	v := s[from]
	if from < to {
		copy(s[from:to], s[from+1:to+1])
	} else {
		copy(s[to+1:from+1], s[to:from])
	}
	s[to] = v
	return s
}

func removeAt[T any](s []T, i int) []T {
	out := make([]T, 0, len(s)-1)
	out = append(out, s[:i]...)
	return append(out, s[i+1:]...)
}

func insertAt[T any](s []T, i int, v T) []T {
	if i < 0 || i > len(s) {
		i = len(s)
	}
	out := make([]T, 0, len(s)+1)
	out = append(out, s[:i]...)
	out = append(out, v)
	return append(out, s[i:]...)
}
