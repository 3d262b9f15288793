package clipboard

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/textbase"
	"github.com/npillmayer/textbase/change"
	"github.com/npillmayer/textbase/markup"
)

type fakeBoard struct {
	text string
}

func (b *fakeBoard) ReadAll() (string, error) { return b.text, nil }

func (b *fakeBoard) WriteAll(text string) error {
	b.text = text
	return nil
}

func TestCopyKeepsMarkup(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textbase")
	defer teardown()
	//
	board := &fakeBoard{}
	cb := New(board, nil)
	bold, _ := textbase.NewSpan("bold", markup.Bold)
	plain, _ := textbase.NewSpan(" text", nil)
	e := textbase.NewExtract(bold, plain)
	if err := cb.Copy(e); err != nil {
		t.Fatal(err)
	}
	if board.text != "bold text" {
		t.Errorf("expected board to hold plain text, have %q", board.text)
	}
	content, err := cb.Content()
	if err != nil {
		t.Fatal(err)
	}
	if !content.Equal(e) {
		t.Errorf("expected formatted content, have %v", content)
	}
	board.text = "other\ntext"
	content, _ = cb.Content()
	if content.Text() != "other\ntext" {
		t.Errorf("expected content from board, have %q", content.Text())
	}
	if m, _ := content.MarkupAt(0); m != nil {
		t.Errorf("expected foreign content to be plain, have %v", m)
	}
}

func TestCutAndPaste(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textbase")
	defer teardown()
	//
	cb := New(&fakeBoard{}, nil)
	tc, _ := textbase.TextChainFromString("Hello World", nil)
	_ = tc.Format(6, 5, markup.Italics)
	stack := change.NewStack(0)
	cut, err := cb.Cut(tc, 5, 6)
	if err != nil {
		t.Fatal(err)
	}
	if err = stack.Apply(cut); err != nil {
		t.Fatal(err)
	}
	if tc.Text() != "Hello" {
		t.Errorf("expected 'Hello' after cut, have %q", tc.Text())
	}
	paste, err := cb.Paste(tc, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if err = stack.Apply(paste); err != nil {
		t.Fatal(err)
	}
	if tc.Text() != " WorldHello" {
		t.Errorf("expected ' WorldHello' after paste, have %q", tc.Text())
	}
	if m, _ := tc.MarkupAt(1); m != markup.Italics {
		t.Errorf("expected pasted text to keep its markup, have %v", m)
	}
	stack.Undo()
	stack.Undo()
	if tc.Text() != "Hello World" {
		t.Errorf("expected undo to restore text, have %q", tc.Text())
	}
}

func TestPasteEmpty(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textbase")
	defer teardown()
	//
	cb := New(&fakeBoard{}, nil)
	tc, _ := textbase.TextChainFromString("abc", nil)
	if _, err := cb.Paste(tc, 0, 0); !errors.Is(err, ErrEmpty) {
		t.Errorf("expected ErrEmpty, have %v", err)
	}
}

func TestContentInterned(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textbase")
	defer teardown()
	//
	in := textbase.NewInterner(textbase.DefaultConfig())
	cb := New(&fakeBoard{text: "foreign"}, in)
	c1, _ := cb.Content()
	c2, _ := cb.Content()
	s1, _ := c1.Get(0)
	s2, _ := c2.Get(0)
	if s1 == nil || s1 != s2 || in.Len() != 1 {
		t.Errorf("expected plain board text to be interned")
	}
}
