package textbase

import (
	"strings"
)

// Builder incrementally stages spans and finalizes them into a tree or an
// extract.
//
// Builder collects spans in a front and a back list and materializes the tree
// only when Node() or Extract() is called. Text added with AppendString is cut
// at newlines, each newline becoming a span of its own, without markup.
//
// The empty instance is a valid builder, but clients may use NewBuilder.
type Builder struct {
	// front keeps prepended spans in reverse logical order.
	front []Span
	// back keeps appended spans in logical order.
	back []Span

	interner *Interner
	width    int
	done     bool
	dirty    bool
	node     *Node
}

// NewBuilder creates a new and empty builder. If in is non-nil, text added by
// AppendString will be interned.
func NewBuilder(in *Interner) *Builder {
	return &Builder{interner: in}
}

// Node returns a tree built from all staged spans.
//
// It is illegal to continue adding spans after Node has been called, but Node
// may be called multiple times.
func (b *Builder) Node() *Node {
	if b == nil {
		return emptyNode
	}
	if b.dirty || b.node == nil {
		b.node = b.build()
		b.dirty = false
	}
	b.done = true
	if b.node.IsEmpty() {
		tracer().Debugf("builder: tree is empty")
	}
	return b.node
}

// Extract returns an extract of all staged spans. The same restrictions as for
// Node apply.
func (b *Builder) Extract() Extract {
	if b == nil {
		return Extract{}
	}
	b.done = true
	return NewExtract(b.orderedSpans()...)
}

// Width returns the number of code points staged so far.
func (b *Builder) Width() int {
	if b == nil {
		return 0
	}
	return b.width
}

// Reset drops the staged build and prepares the builder for a fresh build.
func (b *Builder) Reset() {
	b.front = nil
	b.back = nil
	b.width = 0
	b.done = false
	b.dirty = false
	b.node = nil
}

// Append appends a span to the staged build.
func (b *Builder) Append(s Span) error {
	if b == nil || s == nil {
		return ErrInvalidArgument
	}
	if b.done {
		return ErrBuilderDone
	}
	b.back = append(b.back, s)
	b.width += s.Width()
	b.dirty = true
	return nil
}

// Prepend prepends a span to the staged build.
func (b *Builder) Prepend(s Span) error {
	if b == nil || s == nil {
		return ErrInvalidArgument
	}
	if b.done {
		return ErrBuilderDone
	}
	b.front = append(b.front, s)
	b.width += s.Width()
	b.dirty = true
	return nil
}

// AppendString appends text with markup m. Newlines in text are split off into
// spans of their own and never carry markup. Appending an empty string is a
// no-op.
func (b *Builder) AppendString(text string, m *Markup) error {
	if b == nil {
		return ErrInvalidArgument
	}
	if b.done {
		return ErrBuilderDone
	}
	for len(text) > 0 {
		i := strings.IndexByte(text, '\n')
		var part string
		markup := m
		switch {
		case i < 0:
			part, text = text, ""
		case i == 0:
			part, text, markup = "\n", text[1:], nil
		default:
			part, text = text[:i], text[i:]
		}
		s, err := b.span(part, markup)
		if err != nil {
			return err
		}
		if err = b.Append(s); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) span(text string, m *Markup) (Span, error) {
	if b.interner != nil {
		return b.interner.Span(text, m)
	}
	return NewSpan(text, m)
}

func (b *Builder) build() *Node {
	n := Empty()
	for _, s := range b.orderedSpans() {
		n = n.Append(s)
	}
	return n
}

func (b *Builder) orderedSpans() []Span {
	total := len(b.front) + len(b.back)
	if total == 0 {
		return nil
	}
	out := make([]Span, 0, total)
	for i := len(b.front) - 1; i >= 0; i-- {
		out = append(out, b.front[i])
	}
	out = append(out, b.back...)
	return out
}
