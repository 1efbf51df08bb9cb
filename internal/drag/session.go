// Package drag tracks a pointer or keyboard driven reordering gesture from
// grab to release.
package drag

import (
	"errors"

	"github.com/nikbrunner/mystart/internal/model"
	"github.com/nikbrunner/mystart/internal/reorder"
)

var (
	ErrAlreadyActive = errors.New("a drag is already in progress")
	ErrUnknownEntity = errors.New("dragged entity not found")
	ErrNotDraggable  = errors.New("only groups and items can be dragged")
)

// State is the session state. Committing and cancelling both end in Idle.
type State int

const (
	Idle State = iota
	Active
)

func (s State) String() string {
	if s == Active {
		return "active"
	}
	return "idle"
}

// Mover applies moves to the authoritative collection.
type Mover interface {
	Snapshot() *model.Store
	Move(active, over reorder.Ref) reorder.Move
}

// Snapshot holds the display data of the dragged entity for a floating preview.
type Snapshot struct {
	Title     string
	URL       string // items only
	Icon      string // items only
	ItemCount int    // groups only
}

// Outcome describes how a session ended.
type Outcome struct {
	Active    reorder.Ref
	Target    *reorder.Ref // nil when released outside any target
	Move      reorder.Move // move applied on release
	Reflowed  bool         // provisional moves were kept from hover updates
	Cancelled bool
}

// Session is a drag state machine bound to a Mover.
type Session struct {
	mover Mover

	state    State
	active   reorder.Ref
	snapshot Snapshot
	origin   string // container of the dragged item at start

	hover      *reorder.Ref
	lastTarget *reorder.Ref
	preview    *model.Store
	reflowed   bool
	reflowedOn *reorder.Ref // last valid target, when its hover already applied a cross-group move
}

// NewSession creates an idle session.
func NewSession(mover Mover) *Session {
	return &Session{mover: mover}
}

// State returns the current state.
func (s *Session) State() State { return s.state }

// IsActive returns true while a drag is in progress.
func (s *Session) IsActive() bool { return s.state == Active }

// ActiveRef returns the dragged entity.
func (s *Session) ActiveRef() reorder.Ref { return s.active }

// Snapshot returns the display data captured at drag start.
func (s *Session) Snapshot() Snapshot { return s.snapshot }

// Origin returns the group the dragged item came from, "" for groups.
func (s *Session) Origin() string { return s.origin }

// Hovered returns the current hover target, nil if none.
func (s *Session) Hovered() *reorder.Ref { return s.hover }

// Preview returns the candidate collection for the current hover target,
// or nil when the hover target does not produce a pending change.
func (s *Session) Preview() *model.Store { return s.preview }

// Start begins a drag on the referenced group or item.
func (s *Session) Start(ref reorder.Ref) error {
	if s.state == Active {
		return ErrAlreadyActive
	}

	store := s.mover.Snapshot()
	var snap Snapshot
	origin := ""

	switch ref.Kind {
	case reorder.KindGroup:
		g := store.GetGroupByID(ref.ID)
		if g == nil {
			return ErrUnknownEntity
		}
		snap = Snapshot{Title: g.Title, ItemCount: len(g.Items)}
	case reorder.KindItem:
		it, g := store.GetItemByID(ref.ID)
		if it == nil {
			return ErrUnknownEntity
		}
		snap = Snapshot{Title: it.Title, URL: it.URL, Icon: it.Icon}
		origin = g.ID
	case reorder.KindTab:
		return ErrNotDraggable
	}

	*s = Session{
		mover:    s.mover,
		state:    Active,
		active:   ref,
		snapshot: snap,
		origin:   origin,
	}
	return nil
}

// Hover updates the target under the pointer.
//
// A cross-group item move is applied right away so the item travels with the
// pointer; any other move is only previewed until the target changes.
// Returns the move that the target classifies as.
func (s *Session) Hover(over reorder.Ref) reorder.Move {
	if s.state != Active {
		return reorder.MoveNone
	}
	if s.hover != nil && s.hover.Same(over) {
		return reorder.MoveNone
	}
	if over.Same(s.active) {
		return reorder.MoveNone
	}

	target := over
	s.hover = &target
	s.preview = nil

	move := reorder.Classify(s.mover.Snapshot(), s.active, over)
	if move == reorder.MoveNone {
		// lastTarget and reflowedOn stay paired for Cancel.
		return move
	}

	s.reflowedOn = nil
	switch move {
	case reorder.MoveItemAcross:
		s.mover.Move(s.active, over)
		s.reflowed = true
		s.reflowedOn = &target
	case reorder.MoveItemWithin, reorder.MoveGroupToPage, reorder.MoveGroupReorder:
		s.preview, _ = reorder.Preview(s.mover.Snapshot(), s.active, over)
	}
	s.lastTarget = &target
	return move
}

// Leave clears the hover target, e.g. when the pointer exits every droppable.
func (s *Session) Leave() {
	s.hover = nil
	s.preview = nil
}

// Drop releases the drag over target, or outside any target when nil.
// Moves kept from hover updates are not reverted.
func (s *Session) Drop(target *reorder.Ref) Outcome {
	if s.state != Active {
		return Outcome{}
	}

	out := Outcome{Active: s.active, Reflowed: s.reflowed}
	if target != nil {
		t := *target
		out.Target = &t
		if s.reflowedOn != nil && s.reflowedOn.Same(t) {
			// The hover over this target already placed the item.
			out.Move = reorder.MoveItemAcross
		} else {
			out.Move = s.mover.Move(s.active, t)
		}
	}

	s.reset()
	return out
}

// Cancel ends the drag as if it were dropped on the last valid target.
func (s *Session) Cancel() Outcome {
	if s.state != Active {
		return Outcome{}
	}
	out := s.Drop(s.lastTarget)
	out.Cancelled = true
	return out
}

func (s *Session) reset() {
	*s = Session{mover: s.mover}
}
