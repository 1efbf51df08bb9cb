package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds all lipgloss styles for the TUI.
type Styles struct {
	App          lipgloss.Style
	Card         lipgloss.Style
	CardActive   lipgloss.Style
	CardTarget   lipgloss.Style // group under a dragged entity
	GroupTitle   lipgloss.Style
	Item         lipgloss.Style
	ItemSelected lipgloss.Style
	ItemDragged  lipgloss.Style
	ItemTarget   lipgloss.Style
	URL          lipgloss.Style
	Tab          lipgloss.Style
	TabActive    lipgloss.Style
	TabEmpty     lipgloss.Style
	TabTarget    lipgloss.Style
	Ghost        lipgloss.Style // floating preview of the dragged entity
	Search       lipgloss.Style
	Help         lipgloss.Style
	Empty        lipgloss.Style
	HintKey      lipgloss.Style // Key portion of hints (e.g., "space", "j/k")
	HintDesc     lipgloss.Style // Description portion of hints (e.g., "grab", "move")
	Modal        lipgloss.Style
	Title        lipgloss.Style
}

// DefaultStyles returns the default style configuration.
// Industrial design: grayscale with single desaturated teal accent.
func DefaultStyles() Styles {
	primary := lipgloss.AdaptiveColor{Light: "#505050", Dark: "#A0A0A0"} // main text
	subtle := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#606060"}  // secondary text
	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}  // desaturated teal
	border := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#505050"}  // inactive borders
	warm := lipgloss.AdaptiveColor{Light: "#8A6A30", Dark: "#B8964F"}    // drop targets

	dark := lipgloss.Color("#1A1A1A")

	return Styles{
		App: lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(2).
			PaddingRight(2),

		Card: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(border).
			Padding(0, 1),

		CardActive: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(accent).
			Padding(0, 1),

		CardTarget: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(warm).
			Padding(0, 1),

		GroupTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		Item: lipgloss.NewStyle().
			Foreground(primary),

		ItemSelected: lipgloss.NewStyle().
			Background(accent).
			Foreground(dark),

		ItemDragged: lipgloss.NewStyle().
			Foreground(subtle).
			Italic(true),

		ItemTarget: lipgloss.NewStyle().
			Background(warm).
			Foreground(dark),

		URL: lipgloss.NewStyle().
			Foreground(subtle),

		Tab: lipgloss.NewStyle().
			Foreground(primary).
			Padding(0, 1),

		TabActive: lipgloss.NewStyle().
			Background(accent).
			Foreground(dark).
			Bold(true).
			Padding(0, 1),

		TabEmpty: lipgloss.NewStyle().
			Foreground(subtle).
			Padding(0, 1),

		TabTarget: lipgloss.NewStyle().
			Background(warm).
			Foreground(dark).
			Padding(0, 1),

		Ghost: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(warm).
			Foreground(primary).
			Padding(0, 1),

		Search: lipgloss.NewStyle().
			Foreground(accent),

		Help: lipgloss.NewStyle().
			Foreground(subtle).
			Padding(1, 0),

		Empty: lipgloss.NewStyle().
			Foreground(subtle),

		HintKey: lipgloss.NewStyle().
			Foreground(subtle),

		HintDesc: lipgloss.NewStyle().
			Foreground(subtle),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(accent).
			Padding(1, 2),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),
	}
}
