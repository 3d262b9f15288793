package textbase

import (
	"fmt"
	"iter"
	"sort"
	"strings"
)

// TextChain is the live, mutable buffer holding the text of one block of a
// document, e.g. a paragraph or a heading.
//
// A chain keeps a flat slice of spans together with an index of span offsets,
// where offsets[i] is the sum of the widths of spans[0…i). The index is
// computed lazily, i.e. after every mutation it is invalidated and rebuilt on
// first use.
//
// Every mutation assembles a replacement span slice first and then swaps it
// in. Readers holding a span slice obtained earlier (e.g., a CharCursor) will
// never observe a half-done edit, and an operation failing on a bounds check
// leaves the chain untouched.
//
// Newlines are kept in spans of their own and never carry markup. Spans added
// to a chain are cut at newlines if necessary.
//
// A chain has exactly one mutator; it is not safe for concurrent use.
type TextChain struct {
	spans   []Span
	offsets []int
	length  int      // cached width of the chain, -1 if invalid
	owner   *Segment // segment holding this chain, may be nil
}

// NewTextChain creates an empty chain.
func NewTextChain() *TextChain {
	return &TextChain{}
}

// TextChainFromString creates a chain holding text with markup m.
func TextChainFromString(text string, m *Markup) (*TextChain, error) {
	tc := NewTextChain()
	if text == "" {
		return tc, nil
	}
	s, err := NewSpan(text, m)
	if err != nil {
		return nil, err
	}
	tc.spans = normalize([]Span{s})
	tc.invalidate()
	return tc, nil
}

// TextChainFromExtract creates a chain holding the spans of e.
func TextChainFromExtract(e Extract) *TextChain {
	tc := NewTextChain()
	tc.spans = normalize(e.spans)
	tc.invalidate()
	return tc
}

// Owner returns the segment holding this chain, if any.
func (tc *TextChain) Owner() *Segment {
	return tc.owner
}

// SetOwner sets the back-reference to the segment holding this chain.
func (tc *TextChain) SetOwner(seg *Segment) {
	tc.owner = seg
}

func (tc *TextChain) invalidate() {
	tc.length = -1
	tc.offsets = nil
}

// index builds the offset index if it has been invalidated.
func (tc *TextChain) index() {
	if tc.length >= 0 && len(tc.offsets) == len(tc.spans) {
		return
	}
	offsets := make([]int, len(tc.spans))
	w := 0
	for i, s := range tc.spans {
		offsets[i] = w
		w += s.Width()
	}
	tc.offsets = offsets
	tc.length = w
}

// Length returns the number of code points in the chain.
func (tc *TextChain) Length() int {
	tc.index()
	return tc.length
}

// SpanCount returns the number of spans in the chain.
func (tc *TextChain) SpanCount() int {
	return len(tc.spans)
}

// Spans iterates over the spans of the chain. The iteration works on the
// spans present at the time of the call.
func (tc *TextChain) Spans() iter.Seq[Span] {
	spans := tc.spans
	return func(yield func(Span) bool) {
		for _, s := range spans {
			if !yield(s) {
				return
			}
		}
	}
}

// Text returns the text of the chain without markup.
func (tc *TextChain) Text() string {
	var sb strings.Builder
	for _, s := range tc.spans {
		sb.WriteString(s.Text())
	}
	return sb.String()
}

func (tc *TextChain) String() string {
	return fmt.Sprintf("TextChain(%d spans, width %d)", len(tc.spans), tc.Length())
}

// locate finds the span containing position offset, with 0 ≤ offset < length,
// returning the span's index and offset.
func (tc *TextChain) locate(offset int) (int, int) {
	tc.index()
	i := sort.Search(len(tc.spans), func(i int) bool {
		return tc.offsets[i]+tc.spans[i].Width() > offset
	})
	assert(i < len(tc.spans), "text chain: offset beyond end of chain")
	return i, tc.offsets[i]
}

// cut returns a fresh slice of the spans covering [from,to). Spans crossing
// the borders are split, all others are shared. The live slice is not touched.
func (tc *TextChain) cut(from, to int) []Span {
	if from >= to {
		return nil
	}
	i, start := tc.locate(from)
	return sliceSpans(tc.spans[i:], from-start, to-start)
}

func (tc *TextChain) checkRange(op string, offset, width int) error {
	if offset < 0 || width < 0 || offset+width > tc.Length() {
		err := fmt.Errorf("%w: %s [%d,%d) in chain of length %d",
			ErrIndexOutOfBounds, op, offset, offset+width, tc.Length())
		tracer().Errorf("%v", err)
		return err
	}
	return nil
}

// swap replaces the live span slice.
func (tc *TextChain) swap(spans []Span) {
	tc.spans = spans
	tc.invalidate()
}

// --- Mutation --------------------------------------------------------------

// Insert splices spans into the chain at offset. If offset lies within a span,
// that span is split into the parts before and after offset.
func (tc *TextChain) Insert(offset int, spans ...Span) error {
	if err := tc.checkRange("insert at", offset, 0); err != nil {
		return err
	}
	for _, s := range spans {
		if s == nil {
			return fmt.Errorf("%w: cannot insert nil span", ErrInvalidArgument)
		}
	}
	ins := normalize(spans)
	if len(ins) == 0 {
		return nil
	}
	length := tc.Length()
	head := tc.cut(0, offset)
	tail := tc.cut(offset, length)
	chain := make([]Span, 0, len(head)+len(ins)+len(tail))
	chain = append(chain, head...)
	chain = append(chain, ins...)
	chain = append(chain, tail...)
	tracer().Debugf("text chain: insert %d span(s) at %d", len(ins), offset)
	tc.swap(chain)
	return nil
}

// InsertExtract splices the spans of e into the chain at offset.
func (tc *TextChain) InsertExtract(offset int, e Extract) error {
	return tc.Insert(offset, e.spans...)
}

// Append adds a span at the end of the chain. This is what document loaders
// use to populate a chain.
func (tc *TextChain) Append(s Span) error {
	if s == nil {
		return fmt.Errorf("%w: cannot append nil span", ErrInvalidArgument)
	}
	ins := normalize([]Span{s})
	chain := make([]Span, 0, len(tc.spans)+len(ins))
	chain = append(chain, tc.spans...)
	chain = append(chain, ins...)
	tc.swap(chain)
	return nil
}

// Delete removes the text in [offset, offset+width).
func (tc *TextChain) Delete(offset, width int) error {
	if err := tc.checkRange("delete", offset, width); err != nil {
		return err
	}
	if width == 0 {
		return nil
	}
	length := tc.Length()
	head := tc.cut(0, offset)
	tail := tc.cut(offset+width, length)
	chain := make([]Span, 0, len(head)+len(tail))
	chain = append(chain, head...)
	chain = append(chain, tail...)
	tracer().Debugf("text chain: delete [%d,%d)", offset, offset+width)
	tc.swap(chain)
	return nil
}

// Format adds markup m to the text in [offset, offset+width). Newlines are
// left plain.
func (tc *TextChain) Format(offset, width int, m *Markup) error {
	return tc.restyle("format", offset, width, func(s Span) Span {
		return s.ApplyMarkup(m)
	})
}

// Clear removes markup m from the text in [offset, offset+width).
func (tc *TextChain) Clear(offset, width int, m *Markup) error {
	return tc.restyle("clear", offset, width, func(s Span) Span {
		return s.RemoveMarkup(m)
	})
}

// ClearAll removes any markup from the text in [offset, offset+width).
func (tc *TextChain) ClearAll(offset, width int) error {
	return tc.restyle("clear", offset, width, func(s Span) Span {
		return s.Copy(nil)
	})
}

// restyle substitutes the spans within a range. Only spans crossing the
// borders of the range are split; the structure of the chain is otherwise
// left alone.
func (tc *TextChain) restyle(op string, offset, width int, f func(Span) Span) error {
	if err := tc.checkRange(op, offset, width); err != nil {
		return err
	}
	if width == 0 {
		return nil
	}
	length := tc.Length()
	head := tc.cut(0, offset)
	mid := tc.cut(offset, offset+width)
	tail := tc.cut(offset+width, length)
	chain := make([]Span, 0, len(head)+len(mid)+len(tail))
	chain = append(chain, head...)
	for _, s := range mid {
		if !isNewline(s) {
			s = f(s)
		}
		chain = append(chain, s)
	}
	chain = append(chain, tail...)
	tc.swap(chain)
	return nil
}

// --- Queries ---------------------------------------------------------------

// ExtractRange returns a snapshot of the text in [offset, offset+width).
// The chain is not modified.
func (tc *TextChain) ExtractRange(offset, width int) (Extract, error) {
	if err := tc.checkRange("extract", offset, width); err != nil {
		return Extract{}, err
	}
	return Extract{spans: tc.cut(offset, offset+width), width: width}, nil
}

// ExtractAll returns a snapshot of the whole chain.
func (tc *TextChain) ExtractAll() Extract {
	spans := make([]Span, len(tc.spans))
	copy(spans, tc.spans)
	return Extract{spans: spans, width: tc.Length()}
}

// ExtractParagraphs cuts the chain at newlines and returns one extract per
// paragraph. A chain with n newlines yields n+1 extracts; paragraphs without
// content yield empty extracts.
func (tc *TextChain) ExtractParagraphs() []Extract {
	paras := make([]Extract, 0, 1)
	var cur []Span
	w := 0
	for _, s := range tc.spans {
		if isNewline(s) {
			paras = append(paras, Extract{spans: cur, width: w})
			cur, w = nil, 0
			continue
		}
		cur = append(cur, s)
		w += s.Width()
	}
	return append(paras, Extract{spans: cur, width: w})
}

// MarkupAt returns the markup of the code point at offset.
func (tc *TextChain) MarkupAt(offset int) (*Markup, error) {
	if err := tc.checkRange("markup at", offset, 1); err != nil {
		return nil, err
	}
	i, _ := tc.locate(offset)
	return tc.spans[i].Markup(), nil
}

// CharAt returns the code point at offset.
func (tc *TextChain) CharAt(offset int) (rune, error) {
	if err := tc.checkRange("char at", offset, 1); err != nil {
		return 0, err
	}
	i, start := tc.locate(offset)
	return tc.spans[i].Char(offset - start)
}

// SpanAt returns the span containing offset, together with the offset of the
// span's first code point.
func (tc *TextChain) SpanAt(offset int) (Span, int, error) {
	if err := tc.checkRange("span at", offset, 1); err != nil {
		return nil, 0, err
	}
	i, start := tc.locate(offset)
	return tc.spans[i], start, nil
}

// --- Helpers ---------------------------------------------------------------

func isNewline(s Span) bool {
	return s.Width() == 1 && s.Text() == "\n"
}

// normalize cuts spans at newlines and strips markup from newline spans.
// The input slice is not modified.
func normalize(spans []Span) []Span {
	out := make([]Span, 0, len(spans))
	for _, s := range spans {
		if s == nil {
			continue
		}
		if s.Width() == 1 {
			if isNewline(s) {
				s = s.Copy(nil)
			}
			out = append(out, s)
			continue
		}
		if _, ok := Reference(s); ok || !strings.ContainsRune(s.Text(), '\n') {
			out = append(out, s)
			continue
		}
		start := 0
		for i, r := range s.Runes() {
			if r != '\n' {
				continue
			}
			if i > start {
				part, err := s.Split(start, i)
				assert(err == nil, "normalize: cannot split span")
				out = append(out, part)
			}
			nl, err := s.Split(i, i+1)
			assert(err == nil, "normalize: cannot split span")
			out = append(out, nl.Copy(nil))
			start = i + 1
		}
		if start < s.Width() {
			part, err := s.SplitFrom(start)
			assert(err == nil, "normalize: cannot split span")
			out = append(out, part)
		}
	}
	return out
}
