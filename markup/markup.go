package markup

import (
	"strings"

	"github.com/npillmayer/textbase"
)

// Some standard inline formats
var (
	Bold        = textbase.NewMarkup("bold")
	Italics     = textbase.NewMarkup("italics")
	Code        = textbase.NewMarkup("code")
	Filename    = textbase.NewMarkup("filename")
	Type        = textbase.NewMarkup("type")
	Function    = textbase.NewMarkup("function")
	Application = textbase.NewMarkup("application")
	Command     = textbase.NewMarkup("command")
	Highlight   = textbase.NewMarkup("highlight")
	Keyboard    = textbase.NewMarkup("keyboard")
	Acronym     = textbase.NewMarkup("acronym")
	Publication = textbase.NewMarkup("publication")
)

var catalogue = []*textbase.Markup{
	Bold, Italics, Code, Filename, Type, Function,
	Application, Command, Highlight, Keyboard, Acronym, Publication,
}

// All returns the standard markups.
func All() []*textbase.Markup {
	all := make([]*textbase.Markup, len(catalogue))
	copy(all, catalogue)
	return all
}

// Lookup finds a standard markup by name.
func Lookup(name string) (*textbase.Markup, bool) {
	name = strings.ToLower(name)
	for _, m := range catalogue {
		if m.Name() == name {
			return m, true
		}
	}
	return nil, false
}

// FromHTMLName maps an HTML element name to a markup. For elements which do
// not denote inline formatting, nil is returned.
func FromHTMLName(element string) *textbase.Markup {
	switch strings.ToLower(element) {
	case "b", "strong":
		return Bold
	case "i", "em", "cite":
		return Italics
	case "code", "tt", "samp", "var":
		return Code
	case "kbd":
		return Keyboard
	case "mark":
		return Highlight
	case "abbr", "acronym":
		return Acronym
	}
	return nil
}
