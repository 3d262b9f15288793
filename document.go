package textbase

import (
	"fmt"
	"iter"
	"strings"
)

// Segment is a block of a document, e.g. a paragraph or a heading. It owns
// exactly one TextChain.
type Segment struct {
	kind  string
	chain *TextChain
}

// NewSegment creates a segment of a given kind (e.g., "para"), owning chain.
// If chain is nil, an empty chain is created.
func NewSegment(kind string, chain *TextChain) *Segment {
	if chain == nil {
		chain = NewTextChain()
	}
	seg := &Segment{kind: kind, chain: chain}
	chain.SetOwner(seg)
	return seg
}

// Kind returns the block kind of a segment.
func (seg *Segment) Kind() string {
	return seg.kind
}

// Chain returns the text chain of a segment.
func (seg *Segment) Chain() *TextChain {
	return seg.chain
}

func (seg *Segment) String() string {
	return fmt.Sprintf("Segment(%s, %q)", seg.kind, seg.chain.Text())
}

// Series is an ordered sequence of segments, e.g. the paragraphs of a
// section.
type Series struct {
	segments []*Segment
}

// NewSeries creates a series from a list of segments.
func NewSeries(segs ...*Segment) *Series {
	s := &Series{}
	s.segments = append(s.segments, segs...)
	return s
}

// Len returns the number of segments.
func (s *Series) Len() int {
	return len(s.segments)
}

// Get returns the segment at index i.
func (s *Series) Get(i int) (*Segment, error) {
	if i < 0 || i >= len(s.segments) {
		return nil, fmt.Errorf("%w: segment %d in series of length %d",
			ErrIndexOutOfBounds, i, len(s.segments))
	}
	return s.segments[i], nil
}

// Index returns the position of seg in the series, or -1.
func (s *Series) Index(seg *Segment) int {
	for i, x := range s.segments {
		if x == seg {
			return i
		}
	}
	return -1
}

// Insert puts segments at index i, moving the segments from i onwards to the
// back. i may be equal to Len.
func (s *Series) Insert(i int, segs ...*Segment) error {
	if i < 0 || i > len(s.segments) {
		return fmt.Errorf("%w: insert at %d in series of length %d",
			ErrIndexOutOfBounds, i, len(s.segments))
	}
	for _, seg := range segs {
		if seg == nil {
			return fmt.Errorf("%w: cannot insert nil segment", ErrInvalidArgument)
		}
	}
	segments := make([]*Segment, 0, len(s.segments)+len(segs))
	segments = append(segments, s.segments[:i]...)
	segments = append(segments, segs...)
	segments = append(segments, s.segments[i:]...)
	s.segments = segments
	return nil
}

// Delete removes count segments starting at index i and returns them.
func (s *Series) Delete(i, count int) ([]*Segment, error) {
	if i < 0 || count < 0 || i+count > len(s.segments) {
		return nil, fmt.Errorf("%w: delete [%d,%d) from series of length %d",
			ErrIndexOutOfBounds, i, i+count, len(s.segments))
	}
	removed := make([]*Segment, count)
	copy(removed, s.segments[i:i+count])
	segments := make([]*Segment, 0, len(s.segments)-count)
	segments = append(segments, s.segments[:i]...)
	segments = append(segments, s.segments[i+count:]...)
	s.segments = segments
	return removed, nil
}

// Segments iterates over the segments together with their indices.
func (s *Series) Segments() iter.Seq2[int, *Segment] {
	segments := s.segments
	return func(yield func(int, *Segment) bool) {
		for i, seg := range segments {
			if !yield(i, seg) {
				return
			}
		}
	}
}

// Text returns the texts of all segments, separated by newlines.
func (s *Series) Text() string {
	texts := make([]string, len(s.segments))
	for i, seg := range s.segments {
		texts[i] = seg.chain.Text()
	}
	return strings.Join(texts, "\n")
}
