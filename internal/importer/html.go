package importer

import (
	"io"
	"strconv"
	"strings"

	"github.com/nikbrunner/mystart/internal/model"
	"golang.org/x/net/html"
)

// RootGroupTitle names the group collecting links that sit outside any folder.
const RootGroupTitle = "Imported"

// PageAttr is the non-standard H3 attribute carrying a group's page.
const PageAttr = "page_index"

type folder struct {
	path  string
	group int // index into groups, -1 until the folder holds a link
	page  int
}

// ParseHTMLGroups parses Netscape bookmark HTML into groups.
// Every folder that directly holds links becomes a group titled with its
// folder path ("Parent / Child"). Links outside any folder are collected in
// a trailing RootGroupTitle group. Groups land on page unless their H3
// carries PageAttr.
func ParseHTMLGroups(r io.Reader, page int) ([]model.Group, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var groups []model.Group
	var root []model.LinkItem

	var folderStack []*folder
	var pendingFolder *folder // folder waiting to be pushed on next DL

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "h3":
				name := getTextContent(n)
				if name != "" {
					path := name
					if len(folderStack) > 0 {
						path = folderStack[len(folderStack)-1].path + " / " + name
					}
					folderPage := page
					if v := getAttr(n, PageAttr); v != "" {
						if p, err := strconv.Atoi(v); err == nil {
							folderPage = p
						}
					}
					pendingFolder = &folder{path: path, group: -1, page: folderPage}
				}
				return // Don't recurse into H3

			case "a":
				href := strings.TrimSpace(getAttr(n, "href"))
				if href == "" {
					return
				}

				title := getTextContent(n)
				if title == "" {
					title = model.HostTitle(href)
				}

				item := model.NewLinkItem(model.NewLinkItemParams{
					Title: title,
					URL:   href,
					Icon:  iconURI(n),
				})

				if len(folderStack) == 0 {
					root = append(root, item)
					return
				}
				f := folderStack[len(folderStack)-1]
				if f.group < 0 {
					groups = append(groups, model.NewGroup(model.NewGroupParams{
						Title:     f.path,
						PageIndex: f.page,
					}))
					f.group = len(groups) - 1
				}
				groups[f.group].Items = append(groups[f.group].Items, item)
				return // Don't recurse into A

			case "dl":
				// Definition list - marks folder contents
				pushedFolder := false
				if pendingFolder != nil {
					folderStack = append(folderStack, pendingFolder)
					pendingFolder = nil
					pushedFolder = true
				}

				for c := n.FirstChild; c != nil; c = c.NextSibling {
					parse(c)
				}

				if pushedFolder && len(folderStack) > 0 {
					folderStack = folderStack[:len(folderStack)-1]
				}
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)

	if len(root) > 0 {
		g := model.NewGroup(model.NewGroupParams{Title: RootGroupTitle, PageIndex: page})
		g.Items = root
		groups = append(groups, g)
	}
	return groups, nil
}

// iconURI returns the ICON_URI attribute when it is a web url.
// Inline ICON data is ignored.
func iconURI(n *html.Node) string {
	v := strings.TrimSpace(getAttr(n, "icon_uri"))
	if strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") {
		return v
	}
	return ""
}

// getTextContent returns the text content of a node.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	key = strings.ToLower(key)
	for _, attr := range n.Attr {
		if strings.ToLower(attr.Key) == key {
			return attr.Val
		}
	}
	return ""
}
