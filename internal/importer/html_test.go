package importer_test

import (
	"strings"
	"testing"

	"github.com/nikbrunner/mystart/internal/exporter"
	"github.com/nikbrunner/mystart/internal/importer"
	"github.com/nikbrunner/mystart/internal/model"
	"gotest.tools/v3/assert"
)

func TestParseHTML_RootLinks(t *testing.T) {
	html := `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks</H1>
<DL><p>
    <DT><A HREF="https://example.com" ADD_DATE="1234567890">Example Site</A>
</DL><p>`

	groups, err := importer.ParseHTMLGroups(strings.NewReader(html), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}

	g := groups[0]
	if g.Title != importer.RootGroupTitle {
		t.Errorf("expected root group title, got %q", g.Title)
	}
	if g.PageIndex != 2 {
		t.Errorf("expected page 2, got %d", g.PageIndex)
	}
	if len(g.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(g.Items))
	}

	it := g.Items[0]
	if it.Title != "Example Site" {
		t.Errorf("expected title 'Example Site', got %q", it.Title)
	}
	if it.URL != "https://example.com" {
		t.Errorf("expected URL 'https://example.com', got %q", it.URL)
	}
	if it.ID == "" {
		t.Error("expected non-empty ID")
	}
}

func TestParseHTML_NestedFolders(t *testing.T) {
	html := `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<DL><p>
    <DT><H3 ADD_DATE="1234567890">Development</H3>
    <DL><p>
        <DT><H3 ADD_DATE="1234567890">React</H3>
        <DL><p>
            <DT><A HREF="https://react.dev" ADD_DATE="1234567890">React Docs</A>
        </DL><p>
        <DT><A HREF="https://github.com" ADD_DATE="1234567890">GitHub</A>
    </DL><p>
    <DT><H3>Empty</H3>
    <DL><p>
    </DL><p>
    <DT><A HREF="https://google.com" ADD_DATE="1234567890">Google</A>
</DL><p>`

	groups, err := importer.ParseHTMLGroups(strings.NewReader(html), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	titles := []string{}
	for _, g := range groups {
		titles = append(titles, g.Title)
	}
	assert.DeepEqual(t, titles, []string{"Development / React", "Development", importer.RootGroupTitle})

	assert.Equal(t, groups[0].Items[0].Title, "React Docs")
	assert.Equal(t, groups[1].Items[0].Title, "GitHub")
	assert.Equal(t, groups[2].Items[0].Title, "Google")

	store := &model.Store{Groups: groups}
	assert.NilError(t, store.Validate())
}

func TestParseHTML_EmptyFile(t *testing.T) {
	html := `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks</H1>
<DL><p>
</DL><p>`

	groups, err := importer.ParseHTMLGroups(strings.NewReader(html), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(groups) != 0 {
		t.Errorf("expected 0 groups, got %d", len(groups))
	}
}

func TestParseHTML_MissingHrefAndTitle(t *testing.T) {
	html := `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<DL><p>
    <DT><A ADD_DATE="1234567890">No URL</A>
    <DT><A HREF="https://www.valid.com/page" ADD_DATE="1234567890"></A>
</DL><p>`

	groups, err := importer.ParseHTMLGroups(strings.NewReader(html), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(groups) != 1 || len(groups[0].Items) != 1 {
		t.Fatalf("expected 1 item (skip missing href), got %v", groups)
	}
	if groups[0].Items[0].Title != "valid.com" {
		t.Errorf("expected host fallback title, got %q", groups[0].Items[0].Title)
	}
}

func TestParseHTML_IconURI(t *testing.T) {
	html := `<DL><p>
    <DT><A HREF="https://a.com" ICON_URI="https://a.com/favicon.ico">A</A>
    <DT><A HREF="https://b.com" ICON="data:image/png;base64,AAAA">B</A>
</DL><p>`

	groups, err := importer.ParseHTMLGroups(strings.NewReader(html), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assert.Equal(t, groups[0].Items[0].Icon, "https://a.com/favicon.ico")
	assert.Equal(t, groups[0].Items[1].Icon, "")
}

func TestParseHTML_ExportRoundTrip(t *testing.T) {
	store := &model.Store{Groups: []model.Group{
		{ID: "g1", Title: "Dev & Tools", PageIndex: 0, Items: []model.LinkItem{
			{ID: "i1", Title: "GitHub", URL: "https://github.com", Icon: "https://github.com/favicon.ico"},
			{ID: "i2", Title: "Go <Docs>", URL: "https://go.dev/doc?a=1&b=2"},
		}},
		{ID: "g2", Title: "News", PageIndex: 4, Items: []model.LinkItem{
			{ID: "i3", Title: "HN", URL: "https://news.ycombinator.com"},
		}},
	}}

	groups, err := importer.ParseHTMLGroups(strings.NewReader(exporter.ExportHTML(store)), 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(groups) != len(store.Groups) {
		t.Fatalf("expected %d groups, got %d", len(store.Groups), len(groups))
	}
	for i, g := range groups {
		want := store.Groups[i]
		assert.Equal(t, g.Title, want.Title)
		assert.Equal(t, g.PageIndex, want.PageIndex)
		assert.Equal(t, len(g.Items), len(want.Items))
		for j, it := range g.Items {
			assert.Equal(t, it.Title, want.Items[j].Title)
			assert.Equal(t, it.URL, want.Items[j].URL)
			assert.Equal(t, it.Icon, want.Items[j].Icon)
		}
	}
}
