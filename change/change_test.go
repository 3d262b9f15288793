package change

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/textbase"
)

var bold = textbase.NewMarkup("bold")

func chainOf(t *testing.T, text string) *textbase.TextChain {
	t.Helper()
	tc, err := textbase.TextChainFromString(text, nil)
	if err != nil {
		t.Fatal(err)
	}
	return tc
}

func TestDeleteAndUndo(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textbase")
	defer teardown()
	//
	tc := chainOf(t, "Hello World")
	c, err := DeleteRange(tc, 6, 5)
	if err != nil {
		t.Fatal(err)
	}
	if c.Removed().Text() != "World" {
		t.Errorf("expected change to capture 'World', has %q", c.Removed().Text())
	}
	if err = Apply(c); err != nil {
		t.Fatal(err)
	}
	if tc.Text() != "Hello " {
		t.Errorf("expected 'Hello ', have %q", tc.Text())
	}
	if err = Undo(c); err != nil {
		t.Fatal(err)
	}
	if tc.Text() != "Hello World" {
		t.Errorf("expected 'Hello World', have %q", tc.Text())
	}
}

func TestInsertAndReplace(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textbase")
	defer teardown()
	//
	tc := chainOf(t, "Hello World")
	ins, err := InsertText(tc, 5, ",", nil)
	if err != nil {
		t.Fatal(err)
	}
	_ = Apply(ins)
	if tc.Text() != "Hello, World" {
		t.Errorf("expected 'Hello, World', have %q", tc.Text())
	}
	repl, err := ReplaceRange(tc, 7, 5, textbase.NewExtract(textbase.MustSpan("Gophers", bold)))
	if err != nil {
		t.Fatal(err)
	}
	_ = Apply(repl)
	if tc.Text() != "Hello, Gophers" {
		t.Errorf("expected 'Hello, Gophers', have %q", tc.Text())
	}
	_ = Undo(repl)
	_ = Undo(ins)
	if tc.Text() != "Hello World" {
		t.Errorf("expected 'Hello World', have %q", tc.Text())
	}
	if _, err := DeleteRange(tc, 10, 5); !errors.Is(err, textbase.ErrIndexOutOfBounds) {
		t.Errorf("expected delete range beyond end to fail")
	}
}

func TestToggleMarkup(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textbase")
	defer teardown()
	//
	tc := chainOf(t, "Hello")
	on, err := ToggleMarkup(tc, 0, 5, bold)
	if err != nil {
		t.Fatal(err)
	}
	_ = Apply(on)
	if m, _ := tc.MarkupAt(2); m != bold {
		t.Errorf("expected bold at 2, have %v", m)
	}
	off, err := ToggleMarkup(tc, 0, 5, bold)
	if err != nil {
		t.Fatal(err)
	}
	_ = Apply(off)
	if m, _ := tc.MarkupAt(2); m != nil {
		t.Errorf("expected plain text at 2, have %v", m)
	}
	if off.Kind() != Format {
		t.Errorf("expected a format change, have %s", off.Kind())
	}
}

func TestToggleIdempotence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textbase")
	defer teardown()
	//
	italics := textbase.NewMarkup("italics")
	tc := chainOf(t, "Some mixed\ntext here")
	_ = tc.Format(5, 5, italics)
	before := tc.ExtractAll()
	on, _ := ToggleMarkup(tc, 2, 12, bold)
	_ = Apply(on)
	if m, _ := tc.MarkupAt(10); m != nil {
		t.Errorf("expected newline to stay plain, is %v", m)
	}
	off, _ := ToggleMarkup(tc, 2, 12, bold)
	_ = Apply(off)
	after := tc.ExtractAll()
	for i := 0; i < tc.Length(); i++ {
		m1, _ := before.MarkupAt(i)
		m2, _ := after.MarkupAt(i)
		if i >= 2 && i < 14 && tc.Text()[i] != '\n' {
			if m2 != nil {
				t.Errorf("expected toggled range to be plain at %d, is %v", i, m2)
			}
		} else if m1 != m2 {
			t.Errorf("expected markup outside range to be preserved at %d", i)
		}
	}
	_ = Undo(off)
	_ = Undo(on)
	if !tc.ExtractAll().Equal(before) {
		t.Errorf("expected undo to restore original formatting")
	}
}

func TestClearMarkup(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textbase")
	defer teardown()
	//
	tc := chainOf(t, "Hello World")
	_ = tc.Format(0, 11, bold)
	c, err := ClearMarkup(tc, 3, 5)
	if err != nil {
		t.Fatal(err)
	}
	_ = Apply(c)
	if m, _ := tc.MarkupAt(4); m != nil {
		t.Errorf("expected plain text at 4, have %v", m)
	}
	if m, _ := tc.MarkupAt(8); m != bold {
		t.Errorf("expected bold at 8, have %v", m)
	}
}

func TestSplitChange(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textbase")
	defer teardown()
	//
	first := textbase.NewSegment("para", chainOf(t, "Hello World"))
	last := textbase.NewSegment("para", chainOf(t, "The End"))
	series := textbase.NewSeries(first, last)
	split := NewSplitChange(series, 0, 5, textbase.NewSegment("para", nil))
	if err := Apply(split); err != nil {
		t.Fatal(err)
	}
	if series.Len() != 3 || series.Text() != "Hello\n World\nThe End" {
		t.Errorf("unexpected series after split: %q", series.Text())
	}
	if err := Undo(split); err != nil {
		t.Fatal(err)
	}
	if series.Len() != 2 || series.Text() != "Hello World\nThe End" {
		t.Errorf("unexpected series after undo: %q", series.Text())
	}
	bad := NewSplitChange(series, 5, 0, textbase.NewSegment("para", nil))
	if err := Apply(bad); !errors.Is(err, textbase.ErrIndexOutOfBounds) {
		t.Errorf("expected split of non-existent block to fail, err = %v", err)
	}
	if err := Apply(NewSplitChange(series, 0, 0)); !errors.Is(err, textbase.ErrInvalidArgument) {
		t.Errorf("expected split without new blocks to fail, err = %v", err)
	}
}

func TestUnknownKindPanics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textbase")
	defer teardown()
	//
	defer func() {
		if r := recover(); r != textbase.ErrUnreachable {
			t.Errorf("expected panic with ErrUnreachable, have %v", r)
		}
	}()
	_ = Apply(&Change{kind: Kind(42)})
}

func TestRoundTripRandom(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textbase")
	defer teardown()
	//
	rnd := rand.New(rand.NewSource(99))
	tc := chainOf(t, "The quick brown fox\njumps over the lazy dog")
	for i := 0; i < 300; i++ {
		before := tc.ExtractAll()
		length := tc.Length()
		off := rnd.Intn(length)
		w := min(1+rnd.Intn(6), length-off)
		var c *Change
		var err error
		switch rnd.Intn(4) {
		case 0:
			c, err = InsertText(tc, off, "xy", bold)
		case 1:
			c, err = DeleteRange(tc, off, w)
		case 2:
			c, err = ToggleMarkup(tc, off, w, bold)
		default:
			c, err = ReplaceRange(tc, off, w, textbase.NewExtract(textbase.MustSpan("Z", nil)))
		}
		if err != nil {
			t.Fatal(err)
		}
		if err = Apply(c); err != nil {
			t.Fatal(err)
		}
		if err = Undo(c); err != nil {
			t.Fatal(err)
		}
		if !tc.ExtractAll().Equal(before) || tc.Length() != length {
			t.Fatalf("round trip of %s did not restore the chain", c)
		}
		_ = Apply(c) // keep the edit, to vary the text
		if tc.Length() < 10 {
			_ = tc.Insert(0, textbase.MustSpan("padding text", nil))
		}
	}
}

func TestToggleAfterNewline(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textbase")
	defer teardown()
	//
	tc := chainOf(t, "\nab")
	for i, expected := range []*textbase.Markup{bold, nil} {
		c, err := ToggleMarkup(tc, 0, 3, bold)
		if err != nil {
			t.Fatal(err)
		}
		_ = Apply(c)
		if m, _ := tc.MarkupAt(1); m != expected {
			t.Errorf("toggle #%d: expected %v at 1, have %v", i+1, expected, m)
		}
		if m, _ := tc.MarkupAt(0); m != nil {
			t.Errorf("toggle #%d: expected newline to stay plain, is %v", i+1, m)
		}
	}
	tc = chainOf(t, "a\n\nb")
	c, _ := ToggleMarkup(tc, 1, 2, bold)
	if !c.Added().Equal(c.Removed()) {
		t.Errorf("expected toggling a range of newlines to change nothing")
	}
}

func TestToggleReplacesOtherMarkup(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textbase")
	defer teardown()
	//
	italics := textbase.NewMarkup("italics")
	tc := chainOf(t, "Hello")
	_ = tc.Format(0, 5, italics)
	before := tc.ExtractAll()
	on, _ := ToggleMarkup(tc, 0, 5, bold)
	_ = Apply(on)
	if m, _ := tc.MarkupAt(2); m != bold {
		t.Errorf("expected bold to replace italics, have %v", m)
	}
	off, _ := ToggleMarkup(tc, 0, 5, bold)
	_ = Apply(off)
	if m, _ := tc.MarkupAt(2); m != nil {
		t.Errorf("expected toggling bold off to leave plain text, have %v", m)
	}
	_ = Undo(off)
	_ = Undo(on)
	if !tc.ExtractAll().Equal(before) {
		t.Errorf("expected undo to restore italics")
	}
}

func TestSplitCapturesTail(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textbase")
	defer teardown()
	//
	first := textbase.NewSegment("para", chainOf(t, "Hello World"))
	series := textbase.NewSeries(first)
	split := NewSplitChange(series, 0, 5, textbase.NewSegment("para", nil))
	if split.tail.Text() != " World" || split.tailAt != 0 {
		t.Errorf("expected tail ' World' to be captured, have %q at %d", split.tail.Text(), split.tailAt)
	}
	if err := Undo(split); err == nil || series.Len() != 1 {
		t.Errorf("expected undo of a split not applied to fail")
	}
	for i := 0; i < 2; i++ {
		if err := Apply(split); err != nil {
			t.Fatal(err)
		}
		if series.Text() != "Hello\n World" {
			t.Errorf("round %d: unexpected series after split: %q", i, series.Text())
		}
		if err := Undo(split); err != nil {
			t.Fatal(err)
		}
	}
	if series.Text() != "Hello World" || split.tail.Text() != " World" {
		t.Errorf("expected split to restore text and keep its tail, have %q", series.Text())
	}
	_ = first.Chain().Delete(0, 1)
	if err := Apply(split); !errors.Is(err, textbase.ErrIndexOutOfBounds) {
		t.Errorf("expected split of a modified block to fail, err = %v", err)
	}
	if series.Len() != 1 {
		t.Errorf("expected failed split to leave series untouched")
	}
}
