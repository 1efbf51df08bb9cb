package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/nikbrunner/mystart/internal/tui/layout"
)

// Mode is the input mode of the App.
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModeAddLink
	ModeEditLink
	ModeRenameGroup
	ModeConfirmDelete
	ModeHelp
)

// MessageType controls how the status line is rendered.
type MessageType int

const (
	MessageInfo MessageType = iota
	MessageSuccess
	MessageWarning
	MessageError
)

// Cursor points at a group card and optionally one of its links.
// Item is -1 when the group header is selected.
type Cursor struct {
	Group int
	Item  int
}

// OnHeader reports whether the group header is selected.
func (c Cursor) OnHeader() bool {
	return c.Item < 0
}

// SearchState holds state for the search filter.
type SearchState struct {
	Input textinput.Model
	Query string // applied query, kept after the input closes
}

// NewSearchState creates a new SearchState with an initialized input.
func NewSearchState(cfg layout.LayoutConfig) SearchState {
	input := textinput.New()
	input.Placeholder = "Search links..."
	input.Prompt = "/ "
	input.CharLimit = cfg.Input.SearchCharLimit
	input.Width = cfg.Input.SearchWidth

	return SearchState{Input: input}
}

// Reset clears the query and the input.
func (s *SearchState) Reset() {
	s.Input.Reset()
	s.Query = ""
}

// ModalState holds state for the link and group forms.
type ModalState struct {
	TitleInput textinput.Model
	URLInput   textinput.Model
	IconInput  textinput.Model
	Focus      int    // index of the focused input
	GroupID    string // group receiving a new link, or being renamed
	EditItemID string // link being edited

	// Delete confirmation
	DeleteID    string
	DeleteTitle string
	DeleteGroup bool
}

// NewModalState creates a new ModalState with initialized inputs.
func NewModalState(cfg layout.LayoutConfig) ModalState {
	titleInput := textinput.New()
	titleInput.Placeholder = "Title (empty = suggest)"
	titleInput.CharLimit = cfg.Input.TitleCharLimit
	titleInput.Width = cfg.Input.StandardWidth

	urlInput := textinput.New()
	urlInput.Placeholder = "https://"
	urlInput.CharLimit = cfg.Input.URLCharLimit
	urlInput.Width = cfg.Input.StandardWidth

	iconInput := textinput.New()
	iconInput.Placeholder = "Icon URL (optional)"
	iconInput.CharLimit = cfg.Input.URLCharLimit
	iconInput.Width = cfg.Input.StandardWidth

	return ModalState{
		TitleInput: titleInput,
		URLInput:   urlInput,
		IconInput:  iconInput,
	}
}

// ResetInputs clears all modal inputs for a new modal session.
func (m *ModalState) ResetInputs() {
	m.TitleInput.Reset()
	m.URLInput.Reset()
	m.IconInput.Reset()
	m.Focus = 0
	m.GroupID = ""
	m.EditItemID = ""
	m.DeleteID = ""
	m.DeleteTitle = ""
	m.DeleteGroup = false
}

// inputs returns the form inputs in focus order for the current mode.
func (m *ModalState) inputs(mode Mode) []*textinput.Model {
	switch mode {
	case ModeAddLink, ModeEditLink:
		return []*textinput.Model{&m.URLInput, &m.TitleInput, &m.IconInput}
	case ModeRenameGroup:
		return []*textinput.Model{&m.TitleInput}
	default:
		return nil
	}
}

// FocusNext moves focus to the next input of the form, wrapping around.
func (m *ModalState) FocusNext(mode Mode) {
	inputs := m.inputs(mode)
	if len(inputs) == 0 {
		return
	}
	m.Focus = (m.Focus + 1) % len(inputs)
	m.applyFocus(inputs)
}

// FocusFirst focuses the first input of the form.
func (m *ModalState) FocusFirst(mode Mode) {
	m.Focus = 0
	m.applyFocus(m.inputs(mode))
}

func (m *ModalState) applyFocus(inputs []*textinput.Model) {
	for i, in := range inputs {
		if i == m.Focus {
			in.Focus()
		} else {
			in.Blur()
		}
	}
}

// Focused returns the focused input, nil outside forms.
func (m *ModalState) Focused(mode Mode) *textinput.Model {
	inputs := m.inputs(mode)
	if m.Focus < 0 || m.Focus >= len(inputs) {
		return nil
	}
	return inputs[m.Focus]
}
