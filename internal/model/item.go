package model

import (
	"net/url"
	"regexp"
	"strings"
)

// LinkItem is a single link shown inside a group.
type LinkItem struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
	Icon  string `json:"icon,omitempty"` // custom icon URL, empty = favicon
}

// NewLinkItemParams holds parameters for creating a new LinkItem.
type NewLinkItemParams struct {
	Title string
	URL   string
	Icon  string
}

// NewLinkItem creates a LinkItem with a generated UUID.
func NewLinkItem(params NewLinkItemParams) LinkItem {
	return LinkItem{
		ID:    GenerateUUID(),
		Title: params.Title,
		URL:   params.URL,
		Icon:  params.Icon,
	}
}

var schemeRegex = regexp.MustCompile(`(?i)^[a-z][a-z0-9+.-]*://`)

// NormalizeURL trims the input and prefixes https:// when no scheme is given.
// Returns "" for blank input.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !schemeRegex.MatchString(raw) {
		raw = "https://" + raw
	}
	return raw
}

// HostTitle derives a display title from a URL: its host without "www.".
// Falls back to the raw input when no host can be parsed.
func HostTitle(rawURL string) string {
	normalized := NormalizeURL(rawURL)
	parsed, err := url.Parse(normalized)
	if err != nil || parsed.Host == "" {
		return strings.TrimSpace(rawURL)
	}
	host := parsed.Hostname()
	return strings.TrimPrefix(host, "www.")
}
