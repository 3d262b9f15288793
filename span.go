package textbase

import (
	"fmt"
	"unicode/utf8"
)

// Span is an immutable, formatted run of one or more Unicode code points.
// Spans are the atomic unit of text in this package.
//
// The width of a span is its number of code points. Every span carries at
// most one markup; a nil markup denotes plain text.
//
// Spans are never modified. Operations which would change a span return a new
// one, sharing the character storage of the original wherever possible. If an
// operation would not change anything, the receiver itself is returned, thus
// clients may compare spans by identity to detect no-ops.
type Span interface {
	Width() int                         // number of code points
	Char(pos int) (rune, error)         // code point at position pos
	Text() string                       // text as a Go string
	Runes() []rune                      // copy of the code points
	Markup() *Markup                    // formatting tag or nil
	Split(begin, end int) (Span, error) // sub-span [begin,end)
	SplitFrom(begin int) (Span, error)  // sub-span [begin,width)
	Copy(m *Markup) Span                // same text, markup m
	ApplyMarkup(m *Markup) Span         // same text, markup m added
	RemoveMarkup(m *Markup) Span        // same text, markup m removed
	String() string                     // debugging representation
}

// ObjectReplacementChar is the code point a marker span reports for its single
// position.
const ObjectReplacementChar = '￼'

// NewSpan creates a span for a non-empty text.
//
// text must be valid UTF-8; as Go does not allow surrogate code points in
// valid UTF-8, lone surrogates will be rejected as well.
// Depending on its content, the concrete representation of the span will
// differ, but this is transparent to clients.
func NewSpan(text string, m *Markup) (Span, error) {
	if len(text) == 0 {
		return nil, fmt.Errorf("%w: span text must not be empty", ErrInvalidArgument)
	}
	if !utf8.ValidString(text) {
		return nil, fmt.Errorf("%w: span text is not valid UTF-8", ErrInvalidArgument)
	}
	return makeSpan(text, m), nil
}

// NewRuneSpan creates a span for a single code point.
func NewRuneSpan(r rune, m *Markup) (Span, error) {
	if !utf8.ValidRune(r) {
		return nil, fmt.Errorf("%w: %#U is not a valid code point", ErrInvalidArgument, r)
	}
	return &charSpan{ch: r, text: string(r), markup: m}, nil
}

// NewSpanFromRunes creates a span from a sequence of code points. The rune
// slice is copied.
func NewSpanFromRunes(rs []rune, m *Markup) (Span, error) {
	if len(rs) == 0 {
		return nil, fmt.Errorf("%w: span text must not be empty", ErrInvalidArgument)
	}
	for _, r := range rs {
		if !utf8.ValidRune(r) {
			return nil, fmt.Errorf("%w: %#U is not a valid code point", ErrInvalidArgument, r)
		}
	}
	if len(rs) == 1 {
		return &charSpan{ch: rs[0], text: string(rs[0]), markup: m}, nil
	}
	runes := make([]rune, len(rs))
	copy(runes, rs)
	text := string(runes)
	if isASCII(text) {
		return &stringSpan{text: text, markup: m}, nil
	}
	return &unicodeSpan{text: text, runes: runes, markup: m}, nil
}

// NewMarkerSpan creates a placeholder span, e.g. for a footnote reference or
// an inline image. A marker occupies exactly one position and reports
// ObjectReplacementChar as its character. ref is an opaque reference for
// clients to resolve the placeholder.
func NewMarkerSpan(ref string, m *Markup) Span {
	return &markerSpan{ref: ref, markup: m}
}

// MustSpan is like NewSpan, but panics on invalid input. It is intended for
// tests and for initialization of constant text.
func MustSpan(text string, m *Markup) Span {
	s, err := NewSpan(text, m)
	if err != nil {
		panic(err)
	}
	return s
}

// makeSpan selects a representation for valid, non-empty text.
func makeSpan(text string, m *Markup) Span {
	if isASCII(text) {
		if len(text) == 1 {
			return &charSpan{ch: rune(text[0]), text: text, markup: m}
		}
		return &stringSpan{text: text, markup: m}
	}
	runes := []rune(text)
	if len(runes) == 1 {
		return &charSpan{ch: runes[0], text: text, markup: m}
	}
	return &unicodeSpan{text: text, runes: runes, markup: m}
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

func checkSplit(s Span, begin, end int) error {
	if begin < 0 || end > s.Width() || begin >= end {
		return fmt.Errorf("%w: cannot split [%d,%d) from span of width %d",
			ErrIndexOutOfBounds, begin, end, s.Width())
	}
	return nil
}

func checkChar(s Span, pos int) error {
	if pos < 0 || pos >= s.Width() {
		return fmt.Errorf("%w: position %d in span of width %d",
			ErrIndexOutOfBounds, pos, s.Width())
	}
	return nil
}

func spanString(s Span) string {
	text := s.Text()
	if len(text) > 16 {
		text = string([]rune(text)[:min(8, s.Width())]) + "…"
	}
	return fmt.Sprintf("“%s”%s", text, s.Markup())
}

// --- Single character ------------------------------------------------------

type charSpan struct {
	ch     rune
	text   string
	markup *Markup
}

func (s *charSpan) Width() int      { return 1 }
func (s *charSpan) Text() string    { return s.text }
func (s *charSpan) Runes() []rune   { return []rune{s.ch} }
func (s *charSpan) Markup() *Markup { return s.markup }
func (s *charSpan) String() string  { return spanString(s) }

func (s *charSpan) Char(pos int) (rune, error) {
	if err := checkChar(s, pos); err != nil {
		return 0, err
	}
	return s.ch, nil
}

func (s *charSpan) Split(begin, end int) (Span, error) {
	if err := checkSplit(s, begin, end); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *charSpan) SplitFrom(begin int) (Span, error) {
	return s.Split(begin, 1)
}

func (s *charSpan) Copy(m *Markup) Span {
	if m == s.markup {
		return s
	}
	return &charSpan{ch: s.ch, text: s.text, markup: m}
}

func (s *charSpan) ApplyMarkup(m *Markup) Span {
	if m == nil {
		return s
	}
	return s.Copy(m)
}

func (s *charSpan) RemoveMarkup(m *Markup) Span {
	if m == nil || s.markup != m {
		return s
	}
	return s.Copy(nil)
}

// --- ASCII string ----------------------------------------------------------

// stringSpan holds text where every code point takes exactly one byte,
// therefore byte offsets and code point offsets coincide.
type stringSpan struct {
	text   string
	markup *Markup
}

func (s *stringSpan) Width() int      { return len(s.text) }
func (s *stringSpan) Text() string    { return s.text }
func (s *stringSpan) Runes() []rune   { return []rune(s.text) }
func (s *stringSpan) Markup() *Markup { return s.markup }
func (s *stringSpan) String() string  { return spanString(s) }

func (s *stringSpan) Char(pos int) (rune, error) {
	if err := checkChar(s, pos); err != nil {
		return 0, err
	}
	return rune(s.text[pos]), nil
}

func (s *stringSpan) Split(begin, end int) (Span, error) {
	if err := checkSplit(s, begin, end); err != nil {
		return nil, err
	}
	if begin == 0 && end == len(s.text) {
		return s, nil
	}
	if end-begin == 1 {
		return &charSpan{ch: rune(s.text[begin]), text: s.text[begin:end], markup: s.markup}, nil
	}
	return &stringSpan{text: s.text[begin:end], markup: s.markup}, nil
}

func (s *stringSpan) SplitFrom(begin int) (Span, error) {
	return s.Split(begin, len(s.text))
}

func (s *stringSpan) Copy(m *Markup) Span {
	if m == s.markup {
		return s
	}
	return &stringSpan{text: s.text, markup: m}
}

func (s *stringSpan) ApplyMarkup(m *Markup) Span {
	if m == nil {
		return s
	}
	return s.Copy(m)
}

func (s *stringSpan) RemoveMarkup(m *Markup) Span {
	if m == nil || s.markup != m {
		return s
	}
	return s.Copy(nil)
}

// --- Full Unicode ----------------------------------------------------------

// unicodeSpan keeps both the UTF-8 text and the code points. Sub-spans share
// both storages.
type unicodeSpan struct {
	text   string
	runes  []rune
	markup *Markup
}

func (s *unicodeSpan) Width() int      { return len(s.runes) }
func (s *unicodeSpan) Text() string    { return s.text }
func (s *unicodeSpan) Markup() *Markup { return s.markup }
func (s *unicodeSpan) String() string  { return spanString(s) }

func (s *unicodeSpan) Runes() []rune {
	rs := make([]rune, len(s.runes))
	copy(rs, s.runes)
	return rs
}

func (s *unicodeSpan) Char(pos int) (rune, error) {
	if err := checkChar(s, pos); err != nil {
		return 0, err
	}
	return s.runes[pos], nil
}

func (s *unicodeSpan) Split(begin, end int) (Span, error) {
	if err := checkSplit(s, begin, end); err != nil {
		return nil, err
	}
	if begin == 0 && end == len(s.runes) {
		return s, nil
	}
	b := s.byteOffset(0, 0, begin)
	e := s.byteOffset(begin, b, end)
	if end-begin == 1 {
		return &charSpan{ch: s.runes[begin], text: s.text[b:e], markup: s.markup}, nil
	}
	return &unicodeSpan{
		text:   s.text[b:e],
		runes:  s.runes[begin:end:end],
		markup: s.markup,
	}, nil
}

// byteOffset finds the byte offset of code point `to`, starting at code point
// `from` located at byte offset `at`.
func (s *unicodeSpan) byteOffset(from, at, to int) int {
	for i := from; i < to; i++ {
		at += utf8.RuneLen(s.runes[i])
	}
	return at
}

func (s *unicodeSpan) SplitFrom(begin int) (Span, error) {
	return s.Split(begin, len(s.runes))
}

func (s *unicodeSpan) Copy(m *Markup) Span {
	if m == s.markup {
		return s
	}
	return &unicodeSpan{text: s.text, runes: s.runes, markup: m}
}

func (s *unicodeSpan) ApplyMarkup(m *Markup) Span {
	if m == nil {
		return s
	}
	return s.Copy(m)
}

func (s *unicodeSpan) RemoveMarkup(m *Markup) Span {
	if m == nil || s.markup != m {
		return s
	}
	return s.Copy(nil)
}

// --- Marker ----------------------------------------------------------------

type markerSpan struct {
	ref    string
	markup *Markup
}

// Reference returns the opaque reference of a marker span. For spans other than
// markers, ok is false.
func Reference(s Span) (ref string, ok bool) {
	if m, isMarker := s.(*markerSpan); isMarker {
		return m.ref, true
	}
	return "", false
}

func (s *markerSpan) Width() int      { return 1 }
func (s *markerSpan) Text() string    { return string(ObjectReplacementChar) }
func (s *markerSpan) Runes() []rune   { return []rune{ObjectReplacementChar} }
func (s *markerSpan) Markup() *Markup { return s.markup }

func (s *markerSpan) String() string {
	return fmt.Sprintf("<marker %q>%s", s.ref, s.markup)
}

func (s *markerSpan) Char(pos int) (rune, error) {
	if err := checkChar(s, pos); err != nil {
		return 0, err
	}
	return ObjectReplacementChar, nil
}

func (s *markerSpan) Split(begin, end int) (Span, error) {
	if err := checkSplit(s, begin, end); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *markerSpan) SplitFrom(begin int) (Span, error) {
	return s.Split(begin, 1)
}

func (s *markerSpan) Copy(m *Markup) Span {
	if m == s.markup {
		return s
	}
	return &markerSpan{ref: s.ref, markup: m}
}

func (s *markerSpan) ApplyMarkup(m *Markup) Span {
	if m == nil {
		return s
	}
	return s.Copy(m)
}

func (s *markerSpan) RemoveMarkup(m *Markup) Span {
	if m == nil || s.markup != m {
		return s
	}
	return s.Copy(nil)
}

var _ Span = &charSpan{}
var _ Span = &stringSpan{}
var _ Span = &unicodeSpan{}
var _ Span = &markerSpan{}
