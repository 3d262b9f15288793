package textbase

import (
	"fmt"
	"iter"
	"strings"
)

// Extract is an immutable, flattened snapshot of a sequence of spans.
//
// Extracts are plain values. They are handed out by TextChains and trees, and
// consumed by changes (undo records), the clipboard and renderers. As spans
// are immutable and an extract never exposes its span slice, an extract may
// be shared freely.
//
// The zero value is the empty extract.
type Extract struct {
	spans []Span
	width int
}

// NewExtract creates an extract from a sequence of spans. Nil spans are
// skipped.
func NewExtract(spans ...Span) Extract {
	e := Extract{spans: make([]Span, 0, len(spans))}
	for _, s := range spans {
		if s == nil {
			continue
		}
		e.spans = append(e.spans, s)
		e.width += s.Width()
	}
	return e
}

// ExtractFromNode flattens a tree into an extract.
func ExtractFromNode(n *Node) Extract {
	e := Extract{}
	for s := range n.Spans() {
		e.spans = append(e.spans, s)
		e.width += s.Width()
	}
	return e
}

// Size returns the number of spans.
func (e Extract) Size() int {
	return len(e.spans)
}

// Width returns the number of code points.
func (e Extract) Width() int {
	return e.width
}

// IsEmpty is true for an extract of width 0.
func (e Extract) IsEmpty() bool {
	return e.width == 0
}

// Get returns the span at index i.
func (e Extract) Get(i int) (Span, error) {
	if i < 0 || i >= len(e.spans) {
		return nil, fmt.Errorf("%w: span index %d in extract of size %d",
			ErrIndexOutOfBounds, i, len(e.spans))
	}
	return e.spans[i], nil
}

// Spans iterates over the spans of e.
func (e Extract) Spans() iter.Seq[Span] {
	return func(yield func(Span) bool) {
		for _, s := range e.spans {
			if !yield(s) {
				return
			}
		}
	}
}

// Text returns the text of e without markup.
func (e Extract) Text() string {
	var sb strings.Builder
	for _, s := range e.spans {
		sb.WriteString(s.Text())
	}
	return sb.String()
}

// Node returns a balanced tree over the spans of e.
func (e Extract) Node() *Node {
	return buildBalanced(e.spans)
}

// MarkupAt returns the markup of the code point at offset.
func (e Extract) MarkupAt(offset int) (*Markup, error) {
	if offset < 0 || offset >= e.width {
		return nil, fmt.Errorf("%w: position %d in extract of width %d",
			ErrIndexOutOfBounds, offset, e.width)
	}
	for _, s := range e.spans {
		if offset < s.Width() {
			return s.Markup(), nil
		}
		offset -= s.Width()
	}
	panic(ErrUnreachable)
}

// Slice returns an extract for the code points in [offset, offset+width).
// Spans at the borders are cut to fit.
func (e Extract) Slice(offset, width int) (Extract, error) {
	if offset < 0 || width < 0 || offset+width > e.width {
		return Extract{}, fmt.Errorf("%w: slice [%d,%d) of extract of width %d",
			ErrIndexOutOfBounds, offset, offset+width, e.width)
	}
	return Extract{spans: sliceSpans(e.spans, offset, offset+width), width: width}, nil
}

// sliceSpans copies the spans covering [from,to), cutting the border spans.
func sliceSpans(spans []Span, from, to int) []Span {
	var out []Span
	pos := 0
	for _, s := range spans {
		w := s.Width()
		if pos >= to {
			break
		}
		if pos+w > from {
			b, e := max(from-pos, 0), min(to-pos, w)
			cut, err := s.Split(b, e)
			assert(err == nil, "extract: cannot cut span")
			out = append(out, cut)
		}
		pos += w
	}
	return out
}

// Equal compares two extracts by content: they are equal if they have the
// same text and every code point carries the same markup. The partitioning
// into spans does not matter.
func (e Extract) Equal(other Extract) bool {
	if e.width != other.width || e.Text() != other.Text() {
		return false
	}
	i, j := 0, 0   // span indices
	ri, rj := 0, 0 // remaining width in current spans
	for i < len(e.spans) && j < len(other.spans) {
		if ri == 0 {
			ri = e.spans[i].Width()
		}
		if rj == 0 {
			rj = other.spans[j].Width()
		}
		if e.spans[i].Markup() != other.spans[j].Markup() {
			return false
		}
		step := min(ri, rj)
		ri, rj = ri-step, rj-step
		if ri == 0 {
			i++
		}
		if rj == 0 {
			j++
		}
	}
	return true
}

func (e Extract) String() string {
	var sb strings.Builder
	sb.WriteString("Extract{")
	for i, s := range e.spans {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(s.String())
	}
	sb.WriteString("}")
	return sb.String()
}
