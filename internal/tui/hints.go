package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/nikbrunner/mystart/internal/reorder"
)

// Hint represents a single keybind hint for display.
type Hint struct {
	Key  string // Display key (e.g., "j/k", "space")
	Desc string // Short description (e.g., "move", "grab")
}

// hintFor builds a hint from a key binding's help text.
func hintFor(b key.Binding, desc string) Hint {
	return Hint{Key: b.Help().Key, Desc: desc}
}

// renderHint renders a single hint as "key:desc" with styling.
func (a App) renderHint(h Hint) string {
	return a.styles.HintKey.Render(h.Key) + ":" + a.styles.HintDesc.Render(h.Desc)
}

// renderHints renders hints in horizontal format for bottom bar: "j/k:move space:grab"
func (a App) renderHints(hints HintSet) string {
	allHints := hints.All()
	if len(allHints) == 0 {
		return ""
	}

	parts := make([]string, len(allHints))
	for i, h := range allHints {
		parts[i] = a.renderHint(h)
	}
	return strings.Join(parts, " ")
}

// renderHintsInline renders hints in inline format for modals: "enter save  esc cancel"
func (a App) renderHintsInline(hints []Hint) string {
	if len(hints) == 0 {
		return ""
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = a.styles.HintKey.Render(h.Key) + " " + a.styles.HintDesc.Render(h.Desc)
	}
	return strings.Join(parts, "  ")
}

// HintSet is an ordered collection of hints by group.
type HintSet struct {
	Nav    []Hint // Navigation hints (j/k, h/l, pages)
	Edit   []Hint // Edit hints (a, e, d, etc.)
	Action []Hint // Action hints (space, o, Y)
	System []Hint // System hints (?, q, esc)
}

// All returns all hints flattened in display order: Nav + Action + Edit + System.
func (h HintSet) All() []Hint {
	result := make([]Hint, 0, len(h.Nav)+len(h.Action)+len(h.Edit)+len(h.System))
	result = append(result, h.Nav...)
	result = append(result, h.Action...)
	result = append(result, h.Edit...)
	result = append(result, h.System...)
	return result
}

// getContextualHints returns the appropriate hints for the current mode.
func (a App) getContextualHints() HintSet {
	switch a.mode {
	case ModeNormal:
		if a.session.IsActive() {
			return a.getDragHints()
		}
		return a.getNormalModeHints()
	case ModeSearch:
		return HintSet{
			Action: []Hint{{Key: "enter", Desc: "apply"}},
			System: []Hint{{Key: "esc", Desc: "clear"}},
		}
	case ModeHelp:
		return HintSet{
			System: []Hint{{Key: "?/q/esc", Desc: "close"}},
		}
	default:
		return HintSet{}
	}
}

// getNormalModeHints returns hints for ModeNormal.
func (a App) getNormalModeHints() HintSet {
	hints := HintSet{
		Nav: []Hint{
			{Key: "h/j/k/l", Desc: "move"},
			hintFor(a.keys.Page, "page"),
		},
		Action: []Hint{
			hintFor(a.keys.Grab, "grab"),
			{Key: "o", Desc: "open"},
			hintFor(a.keys.Search, "search"),
		},
		Edit: []Hint{
			{Key: "a/A", Desc: "add"},
			hintFor(a.keys.Edit, "edit"),
			hintFor(a.keys.Delete, "del"),
		},
		System: []Hint{
			hintFor(a.keys.Help, "help"),
			hintFor(a.keys.Quit, "quit"),
		},
	}
	if a.search.Query != "" {
		hints.System = append([]Hint{{Key: "esc", Desc: "clear search"}}, hints.System...)
	}
	return hints
}

// getDragHints returns hints while a group or link is being moved.
func (a App) getDragHints() HintSet {
	hints := HintSet{
		Nav: []Hint{{Key: "h/j/k/l", Desc: "target"}},
		Action: []Hint{
			hintFor(a.keys.Grab, "drop"),
		},
		System: []Hint{
			hintFor(a.keys.Cancel, "cancel"),
		},
	}
	if a.session.ActiveRef().Kind == reorder.KindGroup {
		hints.Nav = append(hints.Nav, hintFor(a.keys.Page, "to page"))
	}
	return hints
}

// getFormHints returns the inline hints shown inside a modal.
func (a App) getFormHints() []Hint {
	switch a.mode {
	case ModeConfirmDelete:
		return []Hint{{Key: "y", Desc: "delete"}, {Key: "n/esc", Desc: "keep"}}
	case ModeAddLink, ModeEditLink:
		return []Hint{{Key: "tab", Desc: "next field"}, {Key: "enter", Desc: "save"}, {Key: "esc", Desc: "cancel"}}
	default:
		return []Hint{{Key: "enter", Desc: "save"}, {Key: "esc", Desc: "cancel"}}
	}
}
