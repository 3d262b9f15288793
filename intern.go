package textbase

import (
	"fmt"
	"unicode/utf8"
)

// Interner de-duplicates short spans of a document. Text in a typical document
// is highly repetitive (spaces, punctuation, short words), and sharing span
// instances for it keeps a chain's memory footprint low.
//
// An Interner belongs to one document and must not be shared between
// goroutines. The zero value is not usable; create one with NewInterner.
type Interner struct {
	maxLen int
	texts  map[textKey]Span
	chars  map[charKey]Span
}

type textKey struct {
	text   string
	markup *Markup
}

type charKey struct {
	ch     rune
	markup *Markup
}

// NewInterner creates an interner for texts of width up to conf.InternMaxLen.
func NewInterner(conf Config) *Interner {
	return &Interner{
		maxLen: conf.InternMaxLen,
		texts:  make(map[textKey]Span),
		chars:  make(map[charKey]Span),
	}
}

// Span returns a span for text and markup m, re-using an earlier instance if
// there is one. Texts longer than the configured maximum are not cached.
func (in *Interner) Span(text string, m *Markup) (Span, error) {
	if len(text) == 0 {
		return nil, fmt.Errorf("%w: span text must not be empty", ErrInvalidArgument)
	}
	if !utf8.ValidString(text) {
		return nil, fmt.Errorf("%w: span text is not valid UTF-8", ErrInvalidArgument)
	}
	n := utf8.RuneCountInString(text)
	if n == 1 {
		r, _ := utf8.DecodeRuneInString(text)
		return in.Rune(r, m)
	}
	if n > in.maxLen {
		return makeSpan(text, m), nil
	}
	key := textKey{text: text, markup: m}
	if s, ok := in.texts[key]; ok {
		return s, nil
	}
	s := makeSpan(text, m)
	in.texts[key] = s
	return s, nil
}

// Rune returns the single-character span for r and m.
func (in *Interner) Rune(r rune, m *Markup) (Span, error) {
	key := charKey{ch: r, markup: m}
	if s, ok := in.chars[key]; ok {
		return s, nil
	}
	s, err := NewRuneSpan(r, m)
	if err != nil {
		return nil, err
	}
	in.chars[key] = s
	return s, nil
}

// Len returns the number of cached spans.
func (in *Interner) Len() int {
	return len(in.texts) + len(in.chars)
}
