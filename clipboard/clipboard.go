package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"
	"github.com/npillmayer/textbase"
	"github.com/npillmayer/textbase/change"
)

// Board is a plain-text clipboard.
type Board interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// System is the clipboard of the operating system.
type System struct{}

// ReadAll reads the text content of the system clipboard.
func (System) ReadAll() (string, error) {
	return clipboard.ReadAll()
}

// WriteAll replaces the content of the system clipboard by text.
func (System) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// Available reports whether the system clipboard can be used on this platform.
func Available() bool {
	return !clipboard.Unsupported
}

// ErrEmpty is returned by Paste if there is nothing to paste.
var ErrEmpty = errors.New("clipboard is empty")

// Clipboard is a clipboard for formatted text.
//
// Clipboard is not safe for concurrent use.
type Clipboard struct {
	board    Board
	interner *textbase.Interner
	payload  textbase.Extract
	text     string // plain text of payload, as written to board
}

// New creates a clipboard on top of a plain-text board. If board is nil, the
// system clipboard is used. Plain text read from the board is turned into
// spans by interner in, which may be nil.
func New(board Board, in *textbase.Interner) *Clipboard {
	if board == nil {
		board = System{}
	}
	return &Clipboard{board: board, interner: in}
}

// Copy puts an extract on the clipboard.
func (c *Clipboard) Copy(e textbase.Extract) error {
	text := e.Text()
	if err := c.board.WriteAll(text); err != nil {
		tracer().Errorf("clipboard: cannot write: %v", err)
		return err
	}
	c.payload, c.text = e, text
	return nil
}

// Content returns the content of the clipboard. If the board still holds the
// text of the extract copied last, that extract is returned with its markup.
// Otherwise the board's text is returned as plain text.
func (c *Clipboard) Content() (textbase.Extract, error) {
	text, err := c.board.ReadAll()
	if err != nil {
		return textbase.Extract{}, err
	}
	if text == c.text && !c.payload.IsEmpty() {
		return c.payload, nil
	}
	tracer().Debugf("clipboard: content changed outside, using plain text")
	c.payload, c.text = textbase.Extract{}, ""
	b := textbase.NewBuilder(c.interner)
	if err = b.AppendString(text, nil); err != nil {
		return textbase.Extract{}, err
	}
	return b.Extract(), nil
}

// Cut copies [offset, offset+width) of chain to the clipboard and returns a
// change deleting it. The change has not yet been applied.
func (c *Clipboard) Cut(chain *textbase.TextChain, offset, width int) (*change.Change, error) {
	ch, err := change.DeleteRange(chain, offset, width)
	if err != nil {
		return nil, err
	}
	if err = c.Copy(ch.Removed()); err != nil {
		return nil, err
	}
	return ch, nil
}

// Paste returns a change replacing [offset, offset+width) of chain by the
// content of the clipboard. For width 0 the content is inserted. The change
// has not yet been applied.
func (c *Clipboard) Paste(chain *textbase.TextChain, offset, width int) (*change.Change, error) {
	content, err := c.Content()
	if err != nil {
		return nil, err
	}
	if content.IsEmpty() {
		return nil, ErrEmpty
	}
	if width == 0 {
		return change.NewInsertChange(chain, offset, content), nil
	}
	return change.ReplaceRange(chain, offset, width, content)
}
