package search

import (
	"html"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Highlighter turns backend highlight markup into trusted HTML. The markup is
// interpreted, not escaped, but only inline emphasis survives.
type Highlighter struct {
	markup *bluemonday.Policy
	strict *bluemonday.Policy
}

// NewHighlighter returns the highlighter used for search snippets.
func NewHighlighter() *Highlighter {
	p := bluemonday.NewPolicy()
	p.AllowElements("em", "strong", "b", "i", "mark", "u", "br")
	p.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("em", "mark")
	return &Highlighter{
		markup: p,
		strict: bluemonday.StrictPolicy(),
	}
}

// HTML prefers highlight over raw. The raw value is escaped.
func (h *Highlighter) HTML(highlight *string, raw string) template.HTML {
	if highlight != nil && strings.TrimSpace(*highlight) != "" {
		return template.HTML(h.markup.Sanitize(*highlight))
	}
	return template.HTML(template.HTMLEscapeString(raw))
}

// Text is the plain-text rendering of HTML's choice, for terminals.
func (h *Highlighter) Text(highlight *string, raw string) string {
	if highlight != nil && strings.TrimSpace(*highlight) != "" {
		return html.UnescapeString(h.strict.Sanitize(*highlight))
	}
	return raw
}
