package textbase

import (
	"fmt"
	"unicode"
)

// CharCursor navigates a text chain code point by code point.
//
// The cursor is bound to the spans of the chain at the time of its creation.
// Later edits of the chain swap in a new span slice and are not visible to
// the cursor.
type CharCursor struct {
	spans   []Span
	offsets []int
	length  int
	pos     int // position of the code point returned by the next call to Next
	span    int // index of the span containing pos
}

// NewCharCursor creates a cursor at the start of the chain.
func (tc *TextChain) NewCharCursor() *CharCursor {
	tc.index()
	return &CharCursor{
		spans:   tc.spans,
		offsets: tc.offsets,
		length:  tc.length,
	}
}

// Pos returns the current cursor position.
func (cc *CharCursor) Pos() int {
	if cc == nil {
		return 0
	}
	return cc.pos
}

// Seek moves the cursor to position pos, with 0 ≤ pos ≤ length of the chain.
func (cc *CharCursor) Seek(pos int) error {
	if cc == nil {
		return ErrInvalidArgument
	}
	if pos < 0 || pos > cc.length {
		return fmt.Errorf("%w: seek to %d in chain of length %d",
			ErrIndexOutOfBounds, pos, cc.length)
	}
	cc.pos = pos
	cc.span = cc.spanFor(pos)
	return nil
}

// spanFor finds the span containing pos, or len(spans) for the end position.
func (cc *CharCursor) spanFor(pos int) int {
	lo, hi := 0, len(cc.spans)
	for lo < hi {
		m := int(uint(lo+hi) >> 1)
		if cc.offsets[m]+cc.spans[m].Width() <= pos {
			lo = m + 1
		} else {
			hi = m
		}
	}
	return lo
}

// Next returns the code point at the current cursor position and advances by
// one position.
//
// If the cursor is at the end of the chain, ok is false.
func (cc *CharCursor) Next() (r rune, ok bool) {
	if cc == nil || cc.pos >= cc.length {
		return 0, false
	}
	for cc.pos >= cc.offsets[cc.span]+cc.spans[cc.span].Width() {
		cc.span++
	}
	r, err := cc.spans[cc.span].Char(cc.pos - cc.offsets[cc.span])
	if err != nil {
		return 0, false
	}
	cc.pos++
	return r, true
}

// Prev returns the code point before the current cursor position and moves
// back by one position.
//
// If the cursor is at the start of the chain, ok is false.
func (cc *CharCursor) Prev() (r rune, ok bool) {
	if cc == nil || cc.pos == 0 {
		return 0, false
	}
	cc.pos--
	if cc.span >= len(cc.spans) {
		cc.span = len(cc.spans) - 1
	}
	for cc.pos < cc.offsets[cc.span] {
		cc.span--
	}
	r, err := cc.spans[cc.span].Char(cc.pos - cc.offsets[cc.span])
	if err != nil {
		cc.pos++
		return 0, false
	}
	return r, true
}

// --- Words -----------------------------------------------------------------

// IsWordChar is the predicate deciding whether a code point is part of a
// word: letters and apostrophes (both ' and ’) are, everything else is not.
func IsWordChar(r rune) bool {
	return unicode.IsLetter(r) || r == '\'' || r == '’'
}

// WordBoundaryBefore returns the start of the word containing or ending at
// offset, i.e. the smallest position p ≤ offset such that all code points in
// [p, offset) are word characters. Word characters are recognized by
// IsWordChar.
func (tc *TextChain) WordBoundaryBefore(offset int) (int, error) {
	if err := tc.checkRange("word boundary at", offset, 0); err != nil {
		return 0, err
	}
	cc := tc.NewCharCursor()
	_ = cc.Seek(offset)
	for {
		r, ok := cc.Prev()
		if !ok {
			return 0, nil
		}
		if !IsWordChar(r) {
			return cc.Pos() + 1, nil
		}
	}
}

// WordBoundaryAfter returns the end of the word containing or starting at
// offset, i.e. the largest position p ≥ offset such that all code points in
// [offset, p) are word characters.
func (tc *TextChain) WordBoundaryAfter(offset int) (int, error) {
	if err := tc.checkRange("word boundary at", offset, 0); err != nil {
		return 0, err
	}
	cc := tc.NewCharCursor()
	_ = cc.Seek(offset)
	for {
		r, ok := cc.Next()
		if !ok {
			return cc.Pos(), nil
		}
		if !IsWordChar(r) {
			return cc.Pos() - 1, nil
		}
	}
}

// WordAt returns the word around offset, together with the word's start
// position. If offset is not adjacent to a word character, the extract is
// empty.
func (tc *TextChain) WordAt(offset int) (int, Extract, error) {
	start, err := tc.WordBoundaryBefore(offset)
	if err != nil {
		return 0, Extract{}, err
	}
	end, _ := tc.WordBoundaryAfter(offset)
	word, err := tc.ExtractRange(start, end-start)
	return start, word, err
}
