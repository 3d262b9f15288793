package formatter

import (
	"io"

	"github.com/npillmayer/textbase"
	"github.com/npillmayer/textbase/markup"
	"github.com/npillmayer/uax/uax11"
	"golang.org/x/net/html"
)

var htmlElements = map[*textbase.Markup]string{
	markup.Bold:        "b",
	markup.Italics:     "i",
	markup.Code:        "code",
	markup.Filename:    "code",
	markup.Type:        "code",
	markup.Function:    "code",
	markup.Command:     "code",
	markup.Application: "em",
	markup.Highlight:   "mark",
	markup.Keyboard:    "kbd",
	markup.Acronym:     "abbr",
	markup.Publication: "cite",
}

// HTML is a format for simple HTML output.
type HTML struct {
	elements map[*textbase.Markup]string
}

// NewHTML creates an HTML formatter. elements maps markups to HTML element
// names; if it is nil, a default mapping for the standard markups is used.
func NewHTML(elements map[*textbase.Markup]string) *HTML {
	if elements == nil {
		elements = htmlElements
	}
	return &HTML{elements: elements}
}

// Print outputs a paragraph as HTML.
//
// If parameter config is nil, a default configuration will be used.
func (h *HTML) Print(para textbase.Extract, w io.Writer, config *Config) error {
	if config == nil {
		config = &Config{
			LineWidth: 40,
			Context:   uax11.ContextFromEnvironment(),
		}
	}
	return Output(para, w, config, h)
}

// StyledText is called by the formatting driver to output a sequence of
// uniformly formatted text. Text is escaped.
// (Part of interface Format)
func (h *HTML) StyledText(s string, m *textbase.Markup, w io.Writer) {
	s = html.EscapeString(s)
	el, ok := h.elements[m]
	if m == nil || !ok {
		io.WriteString(w, s)
		return
	}
	io.WriteString(w, "<"+el+">")
	io.WriteString(w, s)
	io.WriteString(w, "</"+el+">")
}

// Preamble outputs a `pre` tag.
// (Part of interface Format)
func (h *HTML) Preamble(w io.Writer) {
	io.WriteString(w, "<pre>\n")
}

// Postamble outputs a closing `pre` tag.
// (Part of interface Format)
func (h *HTML) Postamble(w io.Writer) {
	io.WriteString(w, "</pre>\n")
}

// Newline outputs a `<br>` tag.
// (Part of interface Format)
func (h *HTML) Newline(w io.Writer) {
	io.WriteString(w, "<br>\n")
}
