package picker

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/mystart/internal/model"
	"github.com/nikbrunner/mystart/internal/search"
)

func testResults() []search.SearchResult {
	return []search.SearchResult{
		{Item: model.LinkItem{ID: "i1", Title: "GitHub", URL: "https://github.com"}, GroupID: "g1", GroupTitle: "Dev"},
		{Item: model.LinkItem{ID: "i2", Title: "GitLab", URL: "https://gitlab.com"}, GroupID: "g1", GroupTitle: "Dev"},
	}
}

func press(p Picker, key string) (Picker, tea.Cmd) {
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	m, cmd := p.Update(msg)
	return m.(Picker), cmd
}

func TestPicker_InitialState(t *testing.T) {
	p := New(testResults(), "git")

	if p.cursor != 0 {
		t.Errorf("expected cursor at 0, got %d", p.cursor)
	}
	if len(p.results) != 2 {
		t.Errorf("expected 2 results, got %d", len(p.results))
	}
	if !p.Cancelled() {
		t.Error("expected no choice yet")
	}
}

func TestPicker_Navigate(t *testing.T) {
	p := New(testResults(), "git")

	p, _ = press(p, "j")
	if p.cursor != 1 {
		t.Errorf("expected cursor at 1, got %d", p.cursor)
	}

	// Bounded at the last result
	p, _ = press(p, "down")
	if p.cursor != 1 {
		t.Errorf("expected cursor to stay at 1, got %d", p.cursor)
	}

	p, _ = press(p, "k")
	p, _ = press(p, "up")
	if p.cursor != 0 {
		t.Errorf("expected cursor at 0, got %d", p.cursor)
	}
}

func TestPicker_Open(t *testing.T) {
	p := New(testResults(), "git")
	p.cursor = 1

	p, cmd := press(p, "enter")

	if cmd == nil {
		t.Error("expected quit command after selection")
	}
	got, action := p.Selected()
	if got == nil || got.Item.ID != "i2" {
		t.Fatalf("expected GitLab to be selected, got %v", got)
	}
	if action != ActionOpen {
		t.Errorf("expected ActionOpen, got %v", action)
	}
}

func TestPicker_Yank(t *testing.T) {
	p := New(testResults(), "git")

	p, _ = press(p, "y")

	got, action := p.Selected()
	if got == nil || got.Item.URL != "https://github.com" {
		t.Fatalf("expected GitHub to be selected, got %v", got)
	}
	if action != ActionYank {
		t.Errorf("expected ActionYank, got %v", action)
	}
}

func TestPicker_Cancel(t *testing.T) {
	for _, key := range []string{"esc", "q"} {
		p := New(testResults(), "git")

		p, cmd := press(p, key)

		if !p.Cancelled() {
			t.Errorf("%s: expected cancelled", key)
		}
		if cmd == nil {
			t.Errorf("%s: expected quit command after cancel", key)
		}
		if got, _ := p.Selected(); got != nil {
			t.Errorf("%s: expected nil selection", key)
		}
	}
}

func TestPicker_EmptyResults(t *testing.T) {
	p := New(nil, "nothing")

	p, _ = press(p, "enter")

	if got, _ := p.Selected(); got != nil {
		t.Error("expected nil selection for empty results")
	}
}

func TestPicker_View(t *testing.T) {
	p := New(testResults(), "git")

	view := p.View()

	for _, want := range []string{"2 results", "GitHub", "GitLab", "Dev", "https://gitlab.com"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}
