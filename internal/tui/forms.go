package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/mystart/internal/board"
	"github.com/nikbrunner/mystart/internal/reorder"
)

func (a App) openAddLink() (tea.Model, tea.Cmd) {
	g := a.selectedGroup()
	if g == nil {
		a.setMessage("No group on this page, press A to add one", MessageWarning)
		return a, nil
	}
	a.modal.ResetInputs()
	a.modal.GroupID = g.ID
	a.mode = ModeAddLink
	a.modal.FocusFirst(a.mode)
	return a, nil
}

// addGroup creates an empty group on the active page, opens its title form
// and asks for a category name when suggestions are enabled.
func (a App) addGroup() (tea.Model, tea.Cmd) {
	if a.search.Query != "" {
		a.setMessage("Clear the search to add a group", MessageWarning)
		return a, nil
	}
	store, p := a.board.CreateGroup(a.activePage)
	a.refresh(store)
	a.follow(reorder.GroupRef(p.EntityID))

	a.modal.ResetInputs()
	a.modal.GroupID = p.EntityID
	a.modal.TitleInput.SetValue(store.GetGroupByID(p.EntityID).Title)
	a.modal.TitleInput.CursorEnd()
	a.mode = ModeRenameGroup
	a.modal.FocusFirst(a.mode)

	job, ok := a.board.PrepareGroupTitle(p.EntityID)
	if !ok {
		return a, nil
	}
	return a, a.suggestGroupCmd(job)
}

func (a App) openEdit() (tea.Model, tea.Cmd) {
	g := a.selectedGroup()
	if g == nil {
		return a, nil
	}
	a.modal.ResetInputs()

	if it := a.selectedItem(); it != nil {
		a.modal.EditItemID = it.ID
		a.modal.URLInput.SetValue(it.URL)
		a.modal.TitleInput.SetValue(it.Title)
		a.modal.IconInput.SetValue(it.Icon)
		a.modal.URLInput.CursorEnd()
		a.modal.TitleInput.CursorEnd()
		a.modal.IconInput.CursorEnd()
		a.mode = ModeEditLink
	} else {
		a.modal.GroupID = g.ID
		a.modal.TitleInput.SetValue(g.Title)
		a.modal.TitleInput.CursorEnd()
		a.mode = ModeRenameGroup
	}
	a.modal.FocusFirst(a.mode)
	return a, nil
}

func (a *App) openDelete() {
	g := a.selectedGroup()
	if g == nil {
		return
	}
	a.modal.ResetInputs()
	if it := a.selectedItem(); it != nil {
		a.modal.DeleteID = it.ID
		a.modal.DeleteTitle = it.Title
	} else {
		a.modal.DeleteID = g.ID
		a.modal.DeleteTitle = g.Title
		a.modal.DeleteGroup = true
	}
	a.mode = ModeConfirmDelete
}

func (a *App) closeModal() {
	a.modal.ResetInputs()
	a.modal.TitleInput.Blur()
	a.modal.URLInput.Blur()
	a.modal.IconInput.Blur()
	a.mode = ModeNormal
}

func (a App) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.closeModal()
		return a, nil
	case tea.KeyTab, tea.KeyShiftTab:
		a.modal.FocusNext(a.mode)
		return a, nil
	case tea.KeyEnter:
		return a.submitForm()
	}

	var cmd tea.Cmd
	if in := a.modal.Focused(a.mode); in != nil {
		*in, cmd = in.Update(msg)
	}
	return a, cmd
}

func (a App) submitForm() (tea.Model, tea.Cmd) {
	title := a.modal.TitleInput.Value()
	untitled := strings.TrimSpace(title) == ""

	switch a.mode {
	case ModeAddLink:
		store, p, err := a.board.AddItem(a.modal.GroupID, board.NewItemParams{
			URL:   a.modal.URLInput.Value(),
			Title: title,
			Icon:  a.modal.IconInput.Value(),
		})
		if err != nil {
			a.setMessage(err.Error(), MessageError)
			return a, nil
		}
		groupID := a.modal.GroupID
		a.closeModal()
		a.clearMessage()
		a.refresh(store)
		if g := store.GetGroupByID(groupID); g != nil && len(g.Items) > 0 {
			a.follow(reorder.ItemRef(g.Items[0].ID))
			url := g.Items[0].URL
			if a.messageText == "" {
				a.setMessage("Added "+g.Items[0].Title, MessageSuccess)
			}
			return a, a.suggestItemCmd(p, url)
		}
		return a, nil

	case ModeEditLink:
		id := a.modal.EditItemID
		url := a.modal.URLInput.Value()
		icon := a.modal.IconInput.Value()
		store, err := a.board.EditItem(id, board.ItemPatch{Title: &title, URL: &url, Icon: &icon})
		if err != nil {
			a.setMessage(err.Error(), MessageError)
			return a, nil
		}
		a.closeModal()
		a.clearMessage()
		a.refresh(store)
		if untitled {
			if p, u, ok := a.board.PrepareItemTitle(id); ok {
				return a, a.suggestItemCmd(p, u)
			}
		}
		return a, nil

	case ModeRenameGroup:
		id := a.modal.GroupID
		store := a.board.RenameGroup(id, title)
		a.closeModal()
		a.clearMessage()
		a.refresh(store)
		if untitled {
			if job, ok := a.board.PrepareGroupTitle(id); ok {
				return a, a.suggestGroupCmd(job)
			}
		}
		return a, nil
	}

	return a, nil
}

func (a App) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		id, isGroup, title := a.modal.DeleteID, a.modal.DeleteGroup, a.modal.DeleteTitle
		if isGroup {
			a.refresh(a.board.DeleteGroup(id))
		} else {
			a.refresh(a.board.DeleteItem(id))
		}
		a.closeModal()
		if a.messageType != MessageError {
			a.setMessage("Deleted "+title, MessageSuccess)
		}
	case "n", "N", "esc", "q":
		a.closeModal()
	}
	return a, nil
}
