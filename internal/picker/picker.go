package picker

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/nikbrunner/mystart/internal/search"
)

// Action is what the user asked to do with the chosen link.
type Action int

const (
	ActionNone Action = iota
	ActionOpen
	ActionYank
)

var (
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	urlStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Italic(true)

	groupStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99"))

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99")).
			Bold(true).
			MarginBottom(1)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))
)

// Picker lets the user choose one link from fuzzy search results.
type Picker struct {
	results []search.SearchResult
	query   string
	cursor  int
	action  Action
	width   int
	height  int
}

// New creates a new Picker with the given search results.
func New(results []search.SearchResult, query string) Picker {
	return Picker{
		results: results,
		query:   query,
		width:   80,
		height:  24,
	}
}

// Init implements tea.Model.
func (p Picker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		return p, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c", "q":
			p.action = ActionNone
			return p, tea.Quit
		case "enter", "o":
			return p.choose(ActionOpen)
		case "y":
			return p.choose(ActionYank)
		case "down", "j", "ctrl+n":
			if p.cursor < len(p.results)-1 {
				p.cursor++
			}
		case "up", "k", "ctrl+p":
			if p.cursor > 0 {
				p.cursor--
			}
		}
	}

	return p, nil
}

func (p Picker) choose(a Action) (tea.Model, tea.Cmd) {
	if len(p.results) > 0 {
		p.action = a
	}
	return p, tea.Quit
}

// visibleRange returns the window of results that fits the terminal.
func (p Picker) visibleRange() (int, int) {
	rows := max((p.height-5)/2, 1)
	start := 0
	if p.cursor >= rows {
		start = p.cursor - rows + 1
	}
	end := min(start+rows, len(p.results))
	return start, end
}

// View implements tea.Model.
func (p Picker) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("Search: %s (%d results)", p.query, len(p.results))))
	b.WriteString("\n\n")

	start, end := p.visibleRange()
	for i := start; i < end; i++ {
		result := p.results[i]
		cursor := "  "
		style := normalStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedStyle
		}

		title := style.Render(result.Item.Title)
		group := groupStyle.Render(result.GroupTitle)
		url := urlStyle.Render(result.Item.URL)

		b.WriteString(fmt.Sprintf("%s%s  %s\n", cursor, title, group))
		b.WriteString(fmt.Sprintf("   %s\n", url))
	}

	b.WriteString("\n")
	b.WriteString(footerStyle.Render("j/k: move  Enter: open  y: yank url  q/Esc: cancel"))

	return b.String()
}

// Selected returns the chosen result and action, or nil and ActionNone if
// the user cancelled.
func (p Picker) Selected() (*search.SearchResult, Action) {
	if p.action == ActionNone || p.cursor >= len(p.results) {
		return nil, ActionNone
	}
	return &p.results[p.cursor], p.action
}

// Cancelled returns true if the user left without choosing.
func (p Picker) Cancelled() bool {
	return p.action == ActionNone
}
