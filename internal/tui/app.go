package tui

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/mystart/internal/board"
	"github.com/nikbrunner/mystart/internal/drag"
	"github.com/nikbrunner/mystart/internal/model"
	"github.com/nikbrunner/mystart/internal/reorder"
	"github.com/nikbrunner/mystart/internal/search"
	"github.com/nikbrunner/mystart/internal/tui/layout"
)

// App is the main bubbletea model for the start page.
type App struct {
	board   *board.Board
	session *drag.Session
	store   *model.Store // latest snapshot of the board

	keys         KeyMap
	styles       Styles
	layoutConfig layout.LayoutConfig

	ctx         context.Context
	suggestions bool
	openURL     func(string) error
	copyURL     func(string) error

	mode       Mode
	activePage int
	cursor     Cursor
	search     SearchState
	modal      ModalState
	tabHover   int // page under a dragged group, -1 when none

	messageText string
	messageType MessageType

	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Board        *board.Board
	Keys         *KeyMap              // optional, uses default if nil
	Styles       *Styles              // optional, uses default if nil
	LayoutConfig *layout.LayoutConfig // optional, uses default if nil
	Context      context.Context      // optional, bounds suggestion requests
	Suggestions  bool                 // request titles when a link or group is left untitled
	OpenURL      func(string) error   // optional, defaults to the system browser
	CopyURL      func(string) error   // optional, defaults to the system clipboard
}

// suggestionMsg carries a finished title suggestion back to the event loop.
type suggestionMsg struct {
	board.Suggestion
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	layoutCfg := layout.DefaultConfig()
	if params.LayoutConfig != nil {
		layoutCfg = *params.LayoutConfig
	}

	ctx := params.Context
	if ctx == nil {
		ctx = context.Background()
	}
	openURL := params.OpenURL
	if openURL == nil {
		openURL = OpenInBrowser
	}
	copyURL := params.CopyURL
	if copyURL == nil {
		copyURL = clipboard.WriteAll
	}

	app := App{
		board:        params.Board,
		session:      drag.NewSession(params.Board),
		store:        params.Board.Snapshot(),
		keys:         keys,
		styles:       styles,
		layoutConfig: layoutCfg,
		ctx:          ctx,
		suggestions:  params.Suggestions,
		openURL:      openURL,
		copyURL:      copyURL,
		search:       NewSearchState(layoutCfg),
		modal:        NewModalState(layoutCfg),
		tabHover:     -1,
		width:        80,
		height:       24,
	}
	app.clampCursor()
	return app
}

// WithDimensions returns a copy of the App sized to width x height.
func (a App) WithDimensions(width, height int) App {
	a.width = width
	a.height = height
	return a
}

// Cursor returns the current cursor position.
func (a App) Cursor() Cursor {
	return a.cursor
}

// ActivePage returns the selected page.
func (a App) ActivePage() int {
	return a.activePage
}

// Mode returns the current input mode.
func (a App) Mode() Mode {
	return a.mode
}

// Query returns the applied search query.
func (a App) Query() string {
	return a.search.Query
}

// Dragging reports whether a drag is in progress.
func (a App) Dragging() bool {
	return a.session.IsActive()
}

// Message returns the status line text.
func (a App) Message() string {
	return a.messageText
}

// Store returns the collection as currently shown.
func (a App) Store() *model.Store {
	return a.store
}

// VisibleGroups returns the groups shown for the active page and query,
// including any pending drag preview.
func (a App) VisibleGroups() []model.Group {
	return a.displayed()
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case suggestionMsg:
		return a.applySuggestion(msg), nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			if a.session.IsActive() {
				a.finishDrag(a.session.Cancel())
			}
			return a, tea.Quit
		}

		switch a.mode {
		case ModeSearch:
			return a.handleSearchKey(msg)
		case ModeAddLink, ModeEditLink, ModeRenameGroup:
			return a.handleFormKey(msg)
		case ModeConfirmDelete:
			return a.handleConfirmKey(msg)
		case ModeHelp:
			if key.Matches(msg, a.keys.Help, a.keys.Cancel, a.keys.Quit) {
				a.mode = ModeNormal
			}
			return a, nil
		}

		if a.session.IsActive() {
			return a.handleDragKey(msg)
		}
		return a.handleNormalKey(msg)
	}

	// Cursor blink and other input messages go to the focused input.
	return a.updateFocusedInput(msg)
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}

// visible returns the authoritative projection the cursor walks on.
func (a App) visible() []model.Group {
	return search.Project(a.store, a.activePage, a.search.Query)
}

// displayed returns the projection to draw, the drag preview when there is one.
func (a App) displayed() []model.Group {
	if preview := a.session.Preview(); preview != nil {
		return search.Project(preview, a.activePage, a.search.Query)
	}
	return a.visible()
}

// clampCursor keeps the cursor inside the visible projection.
func (a *App) clampCursor() {
	groups := a.visible()
	if len(groups) == 0 {
		a.cursor = Cursor{Group: 0, Item: -1}
		return
	}
	a.cursor.Group = max(0, min(a.cursor.Group, len(groups)-1))
	items := groups[a.cursor.Group].Items
	a.cursor.Item = max(-1, min(a.cursor.Item, len(items)-1))
}

func (a App) selectedGroup() *model.Group {
	groups := a.visible()
	if a.cursor.Group < 0 || a.cursor.Group >= len(groups) {
		return nil
	}
	return &groups[a.cursor.Group]
}

func (a App) selectedItem() *model.LinkItem {
	g := a.selectedGroup()
	if g == nil || a.cursor.OnHeader() || a.cursor.Item >= len(g.Items) {
		return nil
	}
	return &g.Items[a.cursor.Item]
}

// selectedRef returns the entity under the cursor.
func (a App) selectedRef() (reorder.Ref, bool) {
	g := a.selectedGroup()
	if g == nil {
		return reorder.Ref{}, false
	}
	if it := a.selectedItem(); it != nil {
		return reorder.ItemRef(it.ID), true
	}
	return reorder.GroupRef(g.ID), true
}

// follow moves the cursor onto the entity when it is visible.
func (a *App) follow(ref reorder.Ref) {
	for gi, g := range a.visible() {
		if ref.Kind == reorder.KindGroup && g.ID == ref.ID {
			a.cursor = Cursor{Group: gi, Item: -1}
			return
		}
		if ref.Kind == reorder.KindItem {
			if ii := g.ItemIndex(ref.ID); ii >= 0 {
				a.cursor = Cursor{Group: gi, Item: ii}
				return
			}
		}
	}
	a.clampCursor()
}

func (a *App) setMessage(text string, t MessageType) {
	a.messageText = text
	a.messageType = t
}

func (a *App) clearMessage() {
	a.messageText = ""
	a.messageType = MessageInfo
}

// refresh takes a new snapshot from the board and reports failed saves.
func (a *App) refresh(store *model.Store) {
	a.store = store
	if err := a.board.SaveError(); err != nil {
		a.setMessage(fmt.Sprintf("Changes not saved: %v", err), MessageError)
	}
	a.clampCursor()
}

func (a *App) setPage(page int) {
	if a.search.Query != "" {
		a.search.Reset()
	}
	a.activePage = page
	a.cursor = Cursor{Group: 0, Item: 0}
	a.clampCursor()
}

func (a *App) moveUp() {
	if a.cursor.Item > -1 {
		a.cursor.Item--
	}
}

func (a *App) moveDown() {
	g := a.selectedGroup()
	if g != nil && a.cursor.Item < len(g.Items)-1 {
		a.cursor.Item++
	}
}

func (a *App) moveGroup(delta int) {
	groups := a.visible()
	next := a.cursor.Group + delta
	if next < 0 || next >= len(groups) {
		return
	}
	a.cursor.Group = next
	a.clampCursor()
}

func (a App) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.clearMessage()

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.mode = ModeHelp

	case key.Matches(msg, a.keys.Search):
		a.mode = ModeSearch
		a.search.Input.SetValue(a.search.Query)
		a.search.Input.CursorEnd()
		return a, a.search.Input.Focus()

	case key.Matches(msg, a.keys.Cancel):
		if a.search.Query != "" {
			a.search.Reset()
			a.cursor = Cursor{Group: 0, Item: 0}
			a.clampCursor()
		}

	case key.Matches(msg, a.keys.Page):
		if page, ok := pageForKey(msg.String()); ok {
			a.setPage(page)
		}

	case key.Matches(msg, a.keys.NextPage):
		a.setPage((a.activePage + 1) % model.PageCount)

	case key.Matches(msg, a.keys.PrevPage):
		a.setPage((a.activePage + model.PageCount - 1) % model.PageCount)

	case key.Matches(msg, a.keys.Up):
		a.moveUp()

	case key.Matches(msg, a.keys.Down):
		a.moveDown()

	case key.Matches(msg, a.keys.Left):
		a.moveGroup(-1)

	case key.Matches(msg, a.keys.Right):
		a.moveGroup(1)

	case key.Matches(msg, a.keys.Grab):
		a.startDrag()

	case key.Matches(msg, a.keys.Open):
		a.openSelected()

	case key.Matches(msg, a.keys.YankURL):
		a.yankSelected()

	case key.Matches(msg, a.keys.AddLink):
		return a.openAddLink()

	case key.Matches(msg, a.keys.AddGroup):
		return a.addGroup()

	case key.Matches(msg, a.keys.Edit):
		return a.openEdit()

	case key.Matches(msg, a.keys.Delete):
		a.openDelete()

	case key.Matches(msg, a.keys.Suggest):
		return a.requestSuggestion()
	}

	return a, nil
}

func (a App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.search.Reset()
		a.search.Input.Blur()
		a.mode = ModeNormal
		a.clampCursor()
		return a, nil
	case tea.KeyEnter:
		a.search.Input.Blur()
		a.mode = ModeNormal
		return a, nil
	}

	var cmd tea.Cmd
	a.search.Input, cmd = a.search.Input.Update(msg)
	a.search.Query = a.search.Input.Value()
	a.cursor = Cursor{Group: 0, Item: 0}
	a.clampCursor()
	return a, cmd
}

func (a *App) openSelected() {
	it := a.selectedItem()
	if it == nil {
		a.setMessage("Select a link to open", MessageWarning)
		return
	}
	if err := a.openURL(it.URL); err != nil {
		a.setMessage(fmt.Sprintf("Could not open %s: %v", it.URL, err), MessageError)
		return
	}
	a.setMessage("Opened "+it.Title, MessageSuccess)
}

func (a *App) yankSelected() {
	it := a.selectedItem()
	if it == nil {
		a.setMessage("Select a link to copy", MessageWarning)
		return
	}
	if err := a.copyURL(it.URL); err != nil {
		a.setMessage(fmt.Sprintf("Could not copy url: %v", err), MessageError)
		return
	}
	a.setMessage("Copied "+it.URL, MessageSuccess)
}

func (a App) applySuggestion(msg suggestionMsg) App {
	previous := ""
	if g := a.store.GetGroupByID(msg.Pending.EntityID); g != nil {
		previous = g.Title
	}

	store, ok := a.board.ApplyTitle(msg.Pending, msg.Title)
	if !ok {
		return a
	}
	a.refresh(store)

	// An open title form that still shows the placeholder takes the suggestion.
	if a.mode == ModeRenameGroup && a.modal.GroupID == msg.Pending.EntityID &&
		a.modal.TitleInput.Value() == previous {
		a.modal.TitleInput.SetValue(msg.Title)
		a.modal.TitleInput.CursorEnd()
	}
	if a.messageType != MessageError {
		a.setMessage(fmt.Sprintf("Suggested title: %s", msg.Title), MessageSuccess)
	}
	return a
}

func (a App) suggestItemCmd(p board.Pending, url string) tea.Cmd {
	if !a.suggestions || !p.Valid() {
		return nil
	}
	b, ctx := a.board, a.ctx
	return func() tea.Msg {
		return suggestionMsg{b.SuggestTitle(ctx, p, url)}
	}
}

func (a App) suggestGroupCmd(job board.GroupJob) tea.Cmd {
	if !a.suggestions || !job.Pending.Valid() {
		return nil
	}
	b, ctx := a.board, a.ctx
	return func() tea.Msg {
		return suggestionMsg{b.SuggestGroupTitle(ctx, job)}
	}
}

// requestSuggestion asks for a title for the link or group under the cursor.
func (a App) requestSuggestion() (tea.Model, tea.Cmd) {
	if !a.suggestions {
		a.setMessage("Suggestions need ANTHROPIC_API_KEY", MessageWarning)
		return a, nil
	}

	ref, ok := a.selectedRef()
	if !ok {
		return a, nil
	}

	var cmd tea.Cmd
	switch ref.Kind {
	case reorder.KindItem:
		if p, url, ok := a.board.PrepareItemTitle(ref.ID); ok {
			cmd = a.suggestItemCmd(p, url)
		}
	case reorder.KindGroup:
		if job, ok := a.board.PrepareGroupTitle(ref.ID); ok {
			cmd = a.suggestGroupCmd(job)
		}
	}
	if cmd != nil {
		a.setMessage("Suggesting title...", MessageInfo)
	}
	return a, cmd
}

// updateFocusedInput forwards non-key messages to the active input.
func (a App) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.mode {
	case ModeSearch:
		a.search.Input, cmd = a.search.Input.Update(msg)
	case ModeAddLink, ModeEditLink, ModeRenameGroup:
		if in := a.modal.Focused(a.mode); in != nil {
			*in, cmd = in.Update(msg)
		}
	}
	return a, cmd
}
