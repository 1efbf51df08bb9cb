package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/mystart/internal/drag"
	"github.com/nikbrunner/mystart/internal/reorder"
)

// startDrag grabs the group or link under the cursor.
func (a *App) startDrag() {
	if a.search.Query != "" {
		a.setMessage("Clear the search to rearrange", MessageWarning)
		return
	}
	ref, ok := a.selectedRef()
	if !ok {
		return
	}
	if err := a.session.Start(ref); err != nil {
		a.setMessage(err.Error(), MessageError)
		return
	}
	a.tabHover = -1
	a.setMessage(fmt.Sprintf("Moving %q", a.session.Snapshot().Title), MessageInfo)
}

func (a App) handleDragKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Grab), msg.Type == tea.KeyEnter:
		a.drop()

	case key.Matches(msg, a.keys.Cancel):
		a.finishDrag(a.session.Cancel())

	case key.Matches(msg, a.keys.Page):
		if page, ok := pageForKey(msg.String()); ok {
			a.hoverTab(page)
		}

	case key.Matches(msg, a.keys.Up):
		a.moveUp()
		a.hoverCursor()

	case key.Matches(msg, a.keys.Down):
		a.moveDown()
		a.hoverCursor()

	case key.Matches(msg, a.keys.Left):
		a.moveGroup(-1)
		a.hoverCursor()

	case key.Matches(msg, a.keys.Right):
		a.moveGroup(1)
		a.hoverCursor()
	}
	return a, nil
}

// dragTarget returns the drop target under the cursor. A dragged group
// always targets a whole group.
func (a App) dragTarget() (reorder.Ref, bool) {
	if a.session.ActiveRef().Kind == reorder.KindGroup {
		g := a.selectedGroup()
		if g == nil {
			return reorder.Ref{}, false
		}
		return reorder.GroupRef(g.ID), true
	}
	return a.selectedRef()
}

// hoverCursor hovers the dragged entity over the target under the cursor.
func (a *App) hoverCursor() {
	a.tabHover = -1
	target, ok := a.dragTarget()
	if !ok || target.Same(a.session.ActiveRef()) {
		a.session.Leave()
		return
	}
	if a.session.Hover(target) == reorder.MoveItemAcross {
		// The link already moved; the cursor sits on it in its new group.
		a.store = a.board.Snapshot()
		a.clampCursor()
	}
}

// hoverTab hovers the dragged entity over a page tab.
func (a *App) hoverTab(page int) {
	if a.session.ActiveRef().Kind != reorder.KindGroup {
		a.setMessage("Only groups can be moved to another page", MessageWarning)
		return
	}
	a.tabHover = page
	a.session.Hover(reorder.TabRef(page))
}

// drop releases the drag on the hovered target, or outside any target.
func (a *App) drop() {
	var target *reorder.Ref
	if h := a.session.Hovered(); h != nil {
		t := *h
		target = &t
	}
	a.finishDrag(a.session.Drop(target))
}

func (a *App) finishDrag(out drag.Outcome) {
	a.tabHover = -1
	a.store = a.board.Snapshot()
	a.follow(out.Active)

	switch {
	case out.Move == reorder.MoveGroupToPage && out.Target != nil:
		a.setMessage(fmt.Sprintf("Moved to page %d", out.Target.Page+1), MessageSuccess)
	case out.Move != reorder.MoveNone || out.Reflowed:
		a.setMessage("Moved", MessageSuccess)
	case out.Cancelled:
		a.setMessage("Move cancelled", MessageInfo)
	default:
		a.setMessage("Nothing moved", MessageInfo)
	}

	if err := a.board.SaveError(); err != nil {
		a.setMessage(fmt.Sprintf("Changes not saved: %v", err), MessageError)
	}
}
