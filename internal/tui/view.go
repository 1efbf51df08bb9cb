package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/nikbrunner/mystart/internal/model"
	"github.com/nikbrunner/mystart/internal/reorder"
	"github.com/nikbrunner/mystart/internal/tui/layout"
)

// renderView creates the page tabs, the group card grid and the help bar.
func (a App) renderView() string {
	switch a.mode {
	case ModeAddLink, ModeEditLink, ModeRenameGroup, ModeConfirmDelete:
		return a.renderModal()
	case ModeHelp:
		return a.renderHelp()
	}

	content := a.styles.App.Render(
		lipgloss.JoinVertical(lipgloss.Left, a.renderHeader(), "", a.renderGrid(), a.renderHelpBar()),
	)

	// Use Place to ensure exact terminal dimensions and prevent overflow
	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top, content)
}

// renderHeader renders the page tabs, or the search line while searching.
func (a App) renderHeader() string {
	if a.mode == ModeSearch {
		return a.search.Input.View()
	}
	if a.search.Query != "" {
		count := len(a.visible())
		return a.styles.Search.Render("/ "+a.search.Query) +
			a.styles.URL.Render(fmt.Sprintf("  %d matching groups", count))
	}
	return a.renderTabs()
}

// renderTabs renders one tab per page. Pages holding groups get a dot.
func (a App) renderTabs() string {
	store := a.store
	if preview := a.session.Preview(); preview != nil {
		store = preview
	}
	content := store.PagesWithContent()

	tabs := make([]string, model.PageCount)
	for i := range model.PageCount {
		label := strconv.Itoa((i + 1) % 10)
		if content[i] {
			label += "•"
		} else {
			label += " "
		}

		style := a.styles.Tab
		switch {
		case i == a.tabHover:
			style = a.styles.TabTarget
		case i == a.activePage:
			style = a.styles.TabActive
		case !content[i]:
			style = a.styles.TabEmpty
		}
		tabs[i] = style.Render(label)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderGrid lays the visible groups out as cards, scrolled so the card
// under the cursor stays in view.
func (a App) renderGrid() string {
	groups := a.displayed()
	if len(groups) == 0 {
		if a.search.Query != "" {
			return a.styles.Empty.Render(fmt.Sprintf("No links match %q", a.search.Query))
		}
		return a.styles.Empty.Render(fmt.Sprintf("Page %d is empty. Press A to add a group.", a.activePage+1))
	}

	cfg := a.layoutConfig
	grid := layout.CalculateGrid(a.width, len(groups), cfg.Board)
	contentWidth := layout.CalculateContentWidth(grid.CardWidth, cfg.Board)

	selectedID := ""
	if g := a.selectedGroup(); g != nil {
		selectedID = g.ID
	}

	var rows []string
	selectedRow := 0
	for start := 0; start < len(groups); start += grid.Columns {
		end := min(start+grid.Columns, len(groups))
		cards := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			if groups[i].ID == selectedID {
				selectedRow = len(rows)
			}
			cards = append(cards, a.renderCard(groups[i], grid.CardWidth, contentWidth))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	selectedLine := 0
	for _, r := range rows[:selectedRow] {
		selectedLine += lipgloss.Height(r)
	}

	lines := strings.Split(lipgloss.JoinVertical(lipgloss.Left, rows...), "\n")
	height := layout.CalculateBoardHeight(a.height, cfg.Board)
	offset := layout.CalculateViewportOffset(selectedLine, len(lines), height)
	end := min(offset+height, len(lines))
	return strings.Join(lines[offset:end], "\n")
}

// renderCard renders one group with its links.
func (a App) renderCard(g model.Group, cardWidth, contentWidth int) string {
	dragging := a.session.IsActive()
	active := a.session.ActiveRef()
	hover := a.session.Hovered()

	isCursorGroup := false
	if sel := a.selectedGroup(); sel != nil {
		isCursorGroup = sel.ID == g.ID
	}
	selectedItemID := ""
	if it := a.selectedItem(); it != nil {
		selectedItemID = it.ID
	}

	cardStyle := a.styles.Card
	switch {
	case dragging && hover != nil && hover.Kind == reorder.KindGroup && hover.ID == g.ID:
		cardStyle = a.styles.CardTarget
	case isCursorGroup:
		cardStyle = a.styles.CardActive
	}

	header := layout.TruncateWithSuffix(g.Title, fmt.Sprintf(" (%d)", len(g.Items)), contentWidth, a.layoutConfig.Text)
	headerStyle := a.styles.GroupTitle
	switch {
	case dragging && active.Kind == reorder.KindGroup && active.ID == g.ID:
		headerStyle = a.styles.ItemDragged
	case !dragging && isCursorGroup && a.cursor.OnHeader():
		headerStyle = a.styles.ItemSelected
	}

	lines := []string{headerStyle.Render(header)}
	if len(g.Items) == 0 {
		lines = append(lines, a.styles.Empty.Render("(empty)"))
	}
	for _, it := range g.Items {
		title, _ := layout.TruncateText(it.Title, contentWidth-2, a.layoutConfig.Text)
		prefix := "  "
		style := a.styles.Item
		switch {
		case dragging && active.Kind == reorder.KindItem && active.ID == it.ID:
			prefix = "⠿ "
			style = a.styles.ItemDragged
		case dragging && hover != nil && hover.Kind == reorder.KindItem && hover.ID == it.ID:
			style = a.styles.ItemTarget
		case !dragging && it.ID == selectedItemID:
			style = a.styles.ItemSelected
		}
		lines = append(lines, style.Render(prefix+title))
	}

	// Width excludes the border.
	return cardStyle.Width(cardWidth - 2).Render(strings.Join(lines, "\n"))
}

func (a App) renderHelpBar() string {
	var lines []string

	// Line 1: message, or the url of the selected link
	switch {
	case a.messageText != "":
		lines = append(lines, a.renderMessageLine())
	case !a.session.IsActive() && a.selectedItem() != nil:
		lines = append(lines, a.styles.URL.Render(a.selectedItem().URL))
	default:
		lines = append(lines, "")
	}

	if a.session.IsActive() {
		lines = append(lines, a.renderGhost())
	}

	if hints := a.renderHints(a.getContextualHints()); hints != "" {
		lines = append(lines, hints)
	}

	return strings.Join(lines, "\n")
}

// renderGhost renders the floating preview of the dragged entity and the
// current drop target.
func (a App) renderGhost() string {
	snap := a.session.Snapshot()

	var detail string
	if a.session.ActiveRef().Kind == reorder.KindGroup {
		detail = fmt.Sprintf("%d links", snap.ItemCount)
	} else {
		detail = snap.URL
	}
	ghost := a.styles.Ghost.Render("⠿ " + snap.Title + "  " + a.styles.URL.Render(detail))

	target := "no target"
	if h := a.session.Hovered(); h != nil {
		target = "over " + a.describeRef(*h)
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, ghost, "  "+a.styles.HintDesc.Render(target))
}

// describeRef names a drop target for the status line.
func (a App) describeRef(ref reorder.Ref) string {
	switch ref.Kind {
	case reorder.KindTab:
		return fmt.Sprintf("page %d", ref.Page+1)
	case reorder.KindGroup:
		if g := a.store.GetGroupByID(ref.ID); g != nil {
			return fmt.Sprintf("group %q", g.Title)
		}
	case reorder.KindItem:
		if it, _ := a.store.GetItemByID(ref.ID); it != nil {
			return fmt.Sprintf("%q", it.Title)
		}
	}
	return ref.String()
}

// renderMessageLine renders the styled message with prefix icon based on type.
func (a App) renderMessageLine() string {
	var msgStyle lipgloss.Style
	var prefix string

	switch a.messageType {
	case MessageError:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC3333", Dark: "#FF6666"}).
			Bold(true)
		prefix = "✗ "
	case MessageWarning:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC8800", Dark: "#FFAA00"}).
			Bold(true)
		prefix = "⚠ "
	case MessageSuccess:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#338833", Dark: "#66CC66"}).
			Bold(true)
		prefix = "✓ "
	default: // MessageInfo
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}).
			Bold(true)
		prefix = ""
	}

	return msgStyle.Render(prefix + a.messageText)
}

// renderModal renders the link, group and delete dialogs centered on screen.
func (a App) renderModal() string {
	var title string
	var content strings.Builder

	modalWidth := layout.CalculateModalWidth(a.width, a.layoutConfig.Modal.DefaultWidthPercent, a.layoutConfig.Modal)

	switch a.mode {
	case ModeAddLink, ModeEditLink:
		title = "Add Link"
		if a.mode == ModeEditLink {
			title = "Edit Link"
		}
		content.WriteString("URL:\n")
		content.WriteString(a.modal.URLInput.View())
		content.WriteString("\n\nTitle:\n")
		content.WriteString(a.modal.TitleInput.View())
		content.WriteString("\n\nIcon:\n")
		content.WriteString(a.modal.IconInput.View())

	case ModeRenameGroup:
		title = "Group Title"
		content.WriteString(a.modal.TitleInput.View())

	case ModeConfirmDelete:
		if a.modal.DeleteGroup {
			title = "Delete Group"
			content.WriteString(fmt.Sprintf("Delete %q", a.modal.DeleteTitle))
			if g := a.store.GetGroupByID(a.modal.DeleteID); g != nil && len(g.Items) > 0 {
				content.WriteString(fmt.Sprintf(" and its %d links", len(g.Items)))
			}
			content.WriteString("?")
		} else {
			title = "Delete Link"
			content.WriteString(fmt.Sprintf("Delete %q?", a.modal.DeleteTitle))
		}
	}

	content.WriteString("\n\n")
	content.WriteString(a.renderHintsInline(a.getFormHints()))

	modalContent := a.styles.Title.Render(title) + "\n\n" + content.String()

	// Place modal in center, then add help bar at bottom
	modal := lipgloss.Place(
		a.width,
		a.height-3, // Leave room for help bar
		lipgloss.Center,
		lipgloss.Center,
		a.styles.Modal.Width(modalWidth).Render(modalContent),
	)

	return lipgloss.JoinVertical(lipgloss.Left, modal, a.renderHelpBar())
}

// renderHelp renders the key binding overlay.
func (a App) renderHelp() string {
	bindings := []key.Binding{
		a.keys.Up, a.keys.Down, a.keys.Left, a.keys.Right,
		a.keys.Page, a.keys.PrevPage, a.keys.NextPage,
		a.keys.Grab, a.keys.Open, a.keys.YankURL,
		a.keys.AddLink, a.keys.AddGroup, a.keys.Edit, a.keys.Delete, a.keys.Suggest,
		a.keys.Search, a.keys.Cancel, a.keys.Help, a.keys.Quit,
	}

	keyColumn := lipgloss.NewStyle().Width(a.layoutConfig.Modal.HelpLeftColumnWidth)
	var lines []string
	for _, b := range bindings {
		h := b.Help()
		lines = append(lines, keyColumn.Render(a.styles.HintKey.Render(h.Key))+h.Desc)
	}

	body := a.styles.Title.Render("Keys") + "\n\n" + strings.Join(lines, "\n")
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, a.styles.Modal.Render(body))
}
