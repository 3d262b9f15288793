package change

import (
	"fmt"

	"github.com/npillmayer/textbase"
)

// Kind discriminates the variants of changes.
type Kind int8

// Kinds of changes
const (
	Insert Kind = iota // text added at an offset
	Delete             // text removed at an offset
	Full               // text replaced by other text
	Format             // text replaced by the same text with different markup
	Split              // block split in two (or more) blocks
)

func (k Kind) String() string {
	switch k {
	case Insert:
		return "Insert"
	case Delete:
		return "Delete"
	case Full:
		return "Full"
	case Format:
		return "Format"
	case Split:
		return "Split"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Change is a reversible edit of a text chain, or of a series of blocks.
//
// Changes carry the text they remove and the text they add as extracts, which
// are immutable, therefore a change may be applied and undone any number of
// times, as long as it is applied to the state it was created for.
type Change struct {
	kind    Kind
	chain   *textbase.TextChain
	offset  int
	removed textbase.Extract
	added   textbase.Extract
	// structural changes
	series *textbase.Series
	block  int                 // index of the block to split
	blocks []*textbase.Segment // new blocks inserted after block
	tail   textbase.Extract    // text moved to the last new block, captured at construction
	tailAt int                 // offset of tail in the last new block, captured at construction
}

// Kind returns the kind of a change.
func (c *Change) Kind() Kind { return c.kind }

// Chain returns the text chain a change operates on. For structural changes,
// this is nil.
func (c *Change) Chain() *textbase.TextChain { return c.chain }

// Offset returns the position of a change. For structural changes this is the
// split position within the block.
func (c *Change) Offset() int { return c.offset }

// Removed returns the text removed by a change. It is empty for insertions.
func (c *Change) Removed() textbase.Extract { return c.removed }

// Added returns the text added by a change. It is empty for deletions.
func (c *Change) Added() textbase.Extract { return c.added }

// Series returns the series of blocks a structural change operates on.
func (c *Change) Series() *textbase.Series { return c.series }

// Blocks returns the blocks inserted by a structural change.
func (c *Change) Blocks() []*textbase.Segment { return c.blocks }

func (c *Change) String() string {
	if c.kind == Split {
		return fmt.Sprintf("%s(block %d @%d, +%d)", c.kind, c.block, c.offset, len(c.blocks))
	}
	return fmt.Sprintf("%s(@%d, -%d, +%d)", c.kind, c.offset, c.removed.Width(), c.added.Width())
}

// --- Constructors ----------------------------------------------------------

// NewInsertChange creates a change inserting added into chain at offset.
func NewInsertChange(chain *textbase.TextChain, offset int, added textbase.Extract) *Change {
	return &Change{kind: Insert, chain: chain, offset: offset, added: added}
}

// NewDeleteChange creates a change deleting text from chain at offset.
// removed must be the text currently present at offset; it is what Undo will
// restore. Clients usually use DeleteRange instead.
func NewDeleteChange(chain *textbase.TextChain, offset int, removed textbase.Extract) *Change {
	return &Change{kind: Delete, chain: chain, offset: offset, removed: removed}
}

// NewFullChange creates a change replacing removed with added at offset.
func NewFullChange(chain *textbase.TextChain, offset int, removed, added textbase.Extract) *Change {
	return &Change{kind: Full, chain: chain, offset: offset, removed: removed, added: added}
}

// NewFormatChange creates a change replacing removed with added at offset,
// where added has the same text as removed but different markup.
func NewFormatChange(chain *textbase.TextChain, offset int, removed, added textbase.Extract) *Change {
	return &Change{kind: Format, chain: chain, offset: offset, removed: removed, added: added}
}

// NewSplitChange creates a change splitting block number index of series at
// offset. The text behind offset will be moved to the end of the last of
// blocks, and blocks will be inserted into the series right after the split
// block.
//
// The text to move is captured when the change is created. If index or offset
// do not denote a position in series, applying the change will fail.
func NewSplitChange(series *textbase.Series, index, offset int, blocks ...*textbase.Segment) *Change {
	c := &Change{kind: Split, series: series, block: index, offset: offset, blocks: blocks}
	chain, last, err := c.splitTargets()
	if err != nil {
		return c
	}
	if tail, err := chain.ExtractRange(offset, chain.Length()-offset); err == nil {
		c.tail, c.tailAt = tail, last.Length()
	}
	return c
}

// --- Helpers ---------------------------------------------------------------

// InsertText creates a change inserting text with markup m at offset.
func InsertText(chain *textbase.TextChain, offset int, text string, m *textbase.Markup) (*Change, error) {
	s, err := textbase.NewSpan(text, m)
	if err != nil {
		return nil, err
	}
	return NewInsertChange(chain, offset, textbase.NewExtract(s)), nil
}

// DeleteRange creates a change deleting [offset, offset+width) from chain,
// capturing the text to delete.
func DeleteRange(chain *textbase.TextChain, offset, width int) (*Change, error) {
	removed, err := chain.ExtractRange(offset, width)
	if err != nil {
		return nil, err
	}
	return NewDeleteChange(chain, offset, removed), nil
}

// ReplaceRange creates a change replacing [offset, offset+width) of chain
// with added, e.g. for pasting over a selection.
func ReplaceRange(chain *textbase.TextChain, offset, width int, added textbase.Extract) (*Change, error) {
	removed, err := chain.ExtractRange(offset, width)
	if err != nil {
		return nil, err
	}
	return NewFullChange(chain, offset, removed, added), nil
}

// ToggleMarkup creates a change toggling markup m for [offset, offset+width).
//
// If the first span of the range which is not a newline does not carry m, m
// is applied to the whole range, otherwise it is removed from the whole range.
// Newlines never receive markup; a range of newlines only gets m applied, which
// leaves it unchanged.
//
// A span carries at most one markup, thus applying m replaces other markup in
// the range, and toggling m off again leaves the range plain.
func ToggleMarkup(chain *textbase.TextChain, offset, width int, m *textbase.Markup) (*Change, error) {
	removed, err := chain.ExtractRange(offset, width)
	if err != nil {
		return nil, err
	}
	scratch := textbase.TextChainFromExtract(removed)
	if firstMarkup(removed) != m {
		err = scratch.Format(0, width, m)
	} else {
		err = scratch.Clear(0, width, m)
	}
	if err != nil {
		return nil, err
	}
	return NewFormatChange(chain, offset, removed, scratch.ExtractAll()), nil
}

// firstMarkup returns the markup of the first span of e which is not a
// newline, or nil.
func firstMarkup(e textbase.Extract) *textbase.Markup {
	for s := range e.Spans() {
		if s.Text() != "\n" {
			return s.Markup()
		}
	}
	return nil
}

// ClearMarkup creates a change removing all markup from [offset, offset+width).
func ClearMarkup(chain *textbase.TextChain, offset, width int) (*Change, error) {
	removed, err := chain.ExtractRange(offset, width)
	if err != nil {
		return nil, err
	}
	scratch := textbase.TextChainFromExtract(removed)
	if err = scratch.ClearAll(0, width); err != nil {
		return nil, err
	}
	return NewFormatChange(chain, offset, removed, scratch.ExtractAll()), nil
}

// --- Apply and Undo --------------------------------------------------------

// Apply performs a change. If it fails, the text is left unmodified.
//
// Apply panics with textbase.ErrUnreachable for changes of unknown kind.
func Apply(c *Change) error {
	if c == nil {
		return fmt.Errorf("%w: change is nil", textbase.ErrInvalidArgument)
	}
	tracer().Debugf("apply %s", c)
	switch c.kind {
	case Insert:
		return c.chain.InsertExtract(c.offset, c.added)
	case Delete:
		return c.chain.Delete(c.offset, c.removed.Width())
	case Full, Format:
		return replace(c.chain, c.offset, c.removed, c.added)
	case Split:
		return applySplit(c)
	}
	panic(textbase.ErrUnreachable)
}

// Undo reverts a change previously applied. If it fails, the text is left
// unmodified.
//
// Undo panics with textbase.ErrUnreachable for changes of unknown kind.
func Undo(c *Change) error {
	if c == nil {
		return fmt.Errorf("%w: change is nil", textbase.ErrInvalidArgument)
	}
	tracer().Debugf("undo %s", c)
	switch c.kind {
	case Insert:
		return c.chain.Delete(c.offset, c.added.Width())
	case Delete:
		return c.chain.InsertExtract(c.offset, c.removed)
	case Full, Format:
		return replace(c.chain, c.offset, c.added, c.removed)
	case Split:
		return undoSplit(c)
	}
	panic(textbase.ErrUnreachable)
}

// replace deletes text `from` at offset and inserts text `to`. Once the
// deletion has passed the bounds check, the insertion cannot fail.
func replace(chain *textbase.TextChain, offset int, from, to textbase.Extract) error {
	if err := chain.Delete(offset, from.Width()); err != nil {
		return err
	}
	err := chain.InsertExtract(offset, to)
	if err != nil {
		tracer().Errorf("replace: insertion failed after deletion: %v", err)
	}
	return err
}

func (c *Change) splitTargets() (*textbase.TextChain, *textbase.TextChain, error) {
	if c.series == nil || len(c.blocks) == 0 {
		return nil, nil, fmt.Errorf("%w: split needs a series and at least one new block",
			textbase.ErrInvalidArgument)
	}
	seg, err := c.series.Get(c.block)
	if err != nil {
		return nil, nil, err
	}
	last := c.blocks[len(c.blocks)-1]
	if last == nil {
		return nil, nil, fmt.Errorf("%w: new block is nil", textbase.ErrInvalidArgument)
	}
	return seg.Chain(), last.Chain(), nil
}

func applySplit(c *Change) error {
	chain, last, err := c.splitTargets()
	if err != nil {
		return err
	}
	if c.offset < 0 || c.offset+c.tail.Width() != chain.Length() || c.tailAt > last.Length() {
		return fmt.Errorf("%w: split at %d does not match block of length %d",
			textbase.ErrIndexOutOfBounds, c.offset, chain.Length())
	}
	if err = c.series.Insert(c.block+1, c.blocks...); err != nil {
		return err
	}
	err = chain.Delete(c.offset, c.tail.Width())
	assert(err == nil, "split: cannot delete tail of block")
	err = last.InsertExtract(c.tailAt, c.tail)
	assert(err == nil, "split: cannot move tail to new block")
	return nil
}

func undoSplit(c *Change) error {
	chain, last, err := c.splitTargets()
	if err != nil {
		return err
	}
	for i, b := range c.blocks {
		if c.series.Index(b) != c.block+1+i {
			return fmt.Errorf("%w: new blocks are not in place after block %d",
				textbase.ErrInvalidArgument, c.block)
		}
	}
	if c.tailAt+c.tail.Width() > last.Length() || c.offset > chain.Length() {
		return fmt.Errorf("%w: block texts do not match split", textbase.ErrIndexOutOfBounds)
	}
	_, err = c.series.Delete(c.block+1, len(c.blocks))
	assert(err == nil, "split: cannot remove new blocks")
	err = last.Delete(c.tailAt, c.tail.Width())
	assert(err == nil, "split: cannot remove tail from new block")
	err = chain.InsertExtract(c.offset, c.tail)
	assert(err == nil, "split: cannot restore tail of block")
	return nil
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
