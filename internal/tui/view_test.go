package tui_test

import (
	"strings"
	"testing"

	"github.com/nikbrunner/mystart/internal/tui"
	"github.com/nikbrunner/mystart/internal/tui/layout"
	"gotest.tools/v3/assert"
)

func render(app tui.App) string {
	return layout.StripANSI(app.WithDimensions(100, 30).View())
}

func assertContains(t *testing.T, view string, want ...string) {
	t.Helper()
	for _, w := range want {
		assert.Assert(t, strings.Contains(view, w), "expected view to contain %q\n%s", w, view)
	}
}

func TestView_Board(t *testing.T) {
	app, _ := newTestApp(t)

	view := render(app)

	assertContains(t, view, "One (2)", "Two (1)", "Alpha", "Beta", "Gamma")
	// Pages with groups are marked
	assertContains(t, view, "1•", "2•", "3 ")
	// The selected link's url is shown under the grid
	assertContains(t, view, "https://a.example.com")
	assert.Assert(t, !strings.Contains(view, "Delta"))
}

func TestView_EmptyPage(t *testing.T) {
	app, _ := newTestApp(t)
	app, _ = press(app, "0")

	assertContains(t, render(app), "Page 10 is empty. Press A to add a group.")
}

func TestView_SearchWithoutMatches(t *testing.T) {
	app, _ := newTestApp(t)
	app, _ = press(app, "/")
	app = typeText(app, "zzz")
	app, _ = press(app, "enter")

	assertContains(t, render(app), `No links match "zzz"`)
}

func TestView_DragGhost(t *testing.T) {
	app, _ := newTestApp(t)

	app, _ = press(app, "space")
	view := render(app)
	assertContains(t, view, "⠿ Alpha", "https://a.example.com", "no target", "space:drop")

	app, _ = press(app, "j")
	assertContains(t, render(app), `over "Beta"`)
}

func TestView_GroupGhost(t *testing.T) {
	app, _ := newTestApp(t)

	app, _ = press(app, "k", "space", "3")

	assertContains(t, render(app), "⠿ One", "2 links", "over page 3")
}

func TestView_Modals(t *testing.T) {
	app, _ := newTestApp(t)

	add, _ := press(app, "a")
	assertContains(t, render(add), "Add Link", "URL:", "Title:", "Icon:", "tab next field")

	del, _ := press(app, "k", "d")
	assertContains(t, render(del), "Delete Group", `Delete "One" and its 2 links?`)

	help, _ := press(app, "?")
	assertContains(t, render(help), "Keys", "grab / drop", "suggest title")
}
