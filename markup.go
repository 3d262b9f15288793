package textbase

// Markup is a formatting tag, applicable to spans of text.
//
// Markups are compared by identity: two markups are the same only if they are
// the same pointer. Clients create the markups they need once, usually at
// package initialization time, and share them (see package markup for a
// catalogue of standard markups). A nil *Markup denotes plain text.
type Markup struct {
	name string
}

// NewMarkup creates a new formatting tag. The name is informational only and
// does not take part in comparisons.
func NewMarkup(name string) *Markup {
	return &Markup{name: name}
}

// Name returns the informational name of a markup.
func (m *Markup) Name() string {
	if m == nil {
		return ""
	}
	return m.name
}

func (m *Markup) String() string {
	if m == nil {
		return "[plain]"
	}
	return "[" + m.name + "]"
}
