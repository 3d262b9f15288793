package formatter

import (
	"io"

	"github.com/fatih/color"
	"github.com/npillmayer/textbase"
	"github.com/npillmayer/textbase/markup"
	"golang.org/x/term"
)

// ControlCodes holds escape sequences a console needs before and after a
// paragraph, and at the end of a line.
type ControlCodes struct {
	Preamble, Postamble []byte
	Newline             []byte
}

// DefaultCodes is the default set of control codes.
var DefaultCodes = ControlCodes{
	Preamble:  []byte{},
	Postamble: []byte{},
	Newline:   []byte{'\n'},
}

// Console is a type for outputting formatted text to a console with a fixed
// width font. Markup is displayed by colors.
type Console struct {
	Codes  *ControlCodes
	colors map[*textbase.Markup]*color.Color
}

// NewConsole creates a new formatter for consoles with a fixed width font.
//
// codes is a table of escape sequences; if nil, DefaultCodes is used.
// colors is a map from markups to colors, used for display. It may contain
// just a subset of the markups used in the texts which will be handled by
// this formatter. If it is nil, a default palette for the standard markups is
// used.
func NewConsole(codes *ControlCodes, colors map[*textbase.Markup]*color.Color) *Console {
	c := &Console{
		Codes: &DefaultCodes,
	}
	if codes != nil {
		c.Codes = codes
	}
	if colors == nil {
		c.colors = makeDefaultPalette()
	} else {
		c.colors = colors
	}
	return c
}

func makeDefaultPalette() map[*textbase.Markup]*color.Color {
	return map[*textbase.Markup]*color.Color{
		markup.Bold:      color.New(color.FgRed, color.Bold),
		markup.Italics:   color.New(color.FgGreen, color.Italic),
		markup.Code:      color.New(color.FgCyan),
		markup.Filename:  color.New(color.FgYellow),
		markup.Command:   color.New(color.FgMagenta),
		markup.Highlight: color.New(color.BgYellow),
		markup.Keyboard:  color.New(color.FgBlue),
	}
}

// StyledText is called by the formatting driver to output a sequence of
// uniformly formatted text. It uses colors to visualize markup.
// (Part of interface Format)
func (c *Console) StyledText(s string, m *textbase.Markup, w io.Writer) {
	if m != nil {
		if col, ok := c.colors[m]; ok {
			col.Fprint(w, s)
			return
		}
	}
	w.Write([]byte(s))
}

// Preamble is called by the output driver before a paragraph of text will be
// formatted. (Part of interface Format)
func (c *Console) Preamble(w io.Writer) {
	w.Write(c.Codes.Preamble)
}

// Postamble will be called after a paragraph of text has been formatted.
// (Part of interface Format)
func (c *Console) Postamble(w io.Writer) {
	w.Write(c.Codes.Postamble)
}

// Newline will be called at the end of every formatted line of text.
// (Part of interface Format)
func (c *Console) Newline(w io.Writer) {
	w.Write(c.Codes.Newline)
}

// --- Config for terminals --------------------------------------------------

// ConfigFromTerminal is a simple helper for creating a formatting Config.
// It checks wether stdout is a terminal, and if so it reads the terminal's width
// and sets the Config.LineWidth parameter accordingly.
func ConfigFromTerminal() *Config {
	config := &Config{}
	if term.IsTerminal(0) {
		w, _, err := term.GetSize(0)
		if err != nil {
			config.LineWidth = 65
		} else if w > 65 {
			config.LineWidth = w - 10
		} else if w > 30 {
			config.LineWidth = w - 5
		} else if w > 10 {
			config.LineWidth = w
		} else {
			config.LineWidth = 10
		}
	} else {
		config.LineWidth = 65
	}
	tracer().P("format", "console").Infof("setting line length to %d en", config.LineWidth)
	return config
}
