package exporter

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nikbrunner/mystart/internal/model"
)

// DefaultExportPath returns the default export file path.
// Format: ~/Downloads/mystart-export-YYYY-MM-DD.<ext>
func DefaultExportPath(ext string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("mystart-export-%s.%s", time.Now().Format("2006-01-02"), ext)
	return filepath.Join(home, "Downloads", filename), nil
}

// ExportHTML exports the collection to Netscape bookmark HTML format.
// Each group becomes a folder; its page is kept in a PAGE_INDEX attribute.
func ExportHTML(store *model.Store) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	b.WriteString("<TITLE>Bookmarks</TITLE>\n")
	b.WriteString("<H1>Bookmarks</H1>\n")
	b.WriteString("<DL><p>\n")

	for _, g := range store.Groups {
		writeGroup(&b, g)
	}

	b.WriteString("</DL><p>\n")

	return b.String()
}

func writeGroup(b *strings.Builder, g model.Group) {
	const prefix = "    "

	fmt.Fprintf(b, "%s<DT><H3 PAGE_INDEX=\"%d\">%s</H3>\n", prefix, g.PageIndex, html.EscapeString(g.Title))
	fmt.Fprintf(b, "%s<DL><p>\n", prefix)

	for _, it := range g.Items {
		icon := ""
		if it.Icon != "" {
			icon = fmt.Sprintf(" ICON_URI=\"%s\"", html.EscapeString(it.Icon))
		}
		fmt.Fprintf(b,
			"%s%s<DT><A HREF=\"%s\"%s>%s</A>\n",
			prefix, prefix,
			html.EscapeString(it.URL),
			icon,
			html.EscapeString(it.Title),
		)
	}

	fmt.Fprintf(b, "%s</DL><p>\n", prefix)
}
