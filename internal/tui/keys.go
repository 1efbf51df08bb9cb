package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Page     key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	Grab     key.Binding
	Open     key.Binding
	YankURL  key.Binding
	AddLink  key.Binding
	AddGroup key.Binding
	Edit     key.Binding
	Delete   key.Binding
	Suggest  key.Binding
	Search   key.Binding
	Help     key.Binding
	Cancel   key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the default vim-style key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "move down"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/left", "previous group"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/right", "next group"),
		),
		Page: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9", "0"),
			key.WithHelp("1-0", "go to page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("H", "shift+tab"),
			key.WithHelp("H", "previous page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("L", "tab"),
			key.WithHelp("L", "next page"),
		),
		Grab: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("space", "grab / drop"),
		),
		Open: key.NewBinding(
			key.WithKeys("o", "enter"),
			key.WithHelp("o/enter", "open link"),
		),
		YankURL: key.NewBinding(
			key.WithKeys("Y"),
			key.WithHelp("Y", "copy url"),
		),
		AddLink: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add link"),
		),
		AddGroup: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "add group"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Suggest: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "suggest title"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// pageForKey maps a digit key to its page: "1" is page 0, "0" is page 9.
func pageForKey(k string) (int, bool) {
	if len(k) != 1 || k[0] < '0' || k[0] > '9' {
		return 0, false
	}
	if k[0] == '0' {
		return 9, true
	}
	return int(k[0] - '1'), true
}
