package textbase

import (
	"errors"
	"io"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestExtractFromNode(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textbase")
	defer teardown()
	//
	e := ExtractFromNode(tree("Hello", " ", "World"))
	if e.Size() != 3 || e.Width() != 11 || e.Text() != "Hello World" {
		t.Errorf("unexpected extract %v", e)
	}
	s, err := e.Get(2)
	if err != nil || s.Text() != "World" {
		t.Errorf("expected span 2 to be 'World', is %v", s)
	}
	if _, err := e.Get(3); !errors.Is(err, ErrIndexOutOfBounds) {
		t.Errorf("expected Get(3) to fail")
	}
	if e.Node().Text() != "Hello World" {
		t.Errorf("expected tree of extract to have text 'Hello World'")
	}
}

func TestExtractEqual(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textbase")
	defer teardown()
	//
	bold := NewMarkup("bold")
	a := NewExtract(MustSpan("Hello", bold), MustSpan(" World", nil))
	b := NewExtract(MustSpan("He", bold), MustSpan("llo", bold), MustSpan(" ", nil), MustSpan("World", nil))
	if !a.Equal(b) || !b.Equal(a) {
		t.Errorf("expected extracts with different partitioning to be equal")
	}
	c := NewExtract(MustSpan("Hello ", bold), MustSpan("World", nil))
	if a.Equal(c) {
		t.Errorf("expected extracts with different markup to differ")
	}
	if !(Extract{}).Equal(NewExtract()) {
		t.Errorf("expected empty extracts to be equal")
	}
}

func TestExtractSliceAndMarkup(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textbase")
	defer teardown()
	//
	bold := NewMarkup("bold")
	e := NewExtract(MustSpan("Hello", bold), nil, MustSpan(" World", nil))
	if e.Size() != 2 {
		t.Errorf("expected nil span to be skipped")
	}
	sl, err := e.Slice(3, 5)
	if err != nil || sl.Text() != "lo Wo" || sl.Width() != 5 {
		t.Errorf("expected slice 'lo Wo', have %v (err=%v)", sl, err)
	}
	if m, _ := sl.MarkupAt(1); m != bold {
		t.Errorf("expected bold at 1 of slice, have %v", m)
	}
	if m, _ := sl.MarkupAt(2); m != nil {
		t.Errorf("expected plain text at 2 of slice, have %v", m)
	}
	if _, err := e.MarkupAt(11); !errors.Is(err, ErrIndexOutOfBounds) {
		t.Errorf("expected MarkupAt(width) to fail")
	}
}

func TestExtractReader(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textbase")
	defer teardown()
	//
	e := NewExtract(MustSpan("Grüße", nil), MustSpan(", ", nil), MustSpan("Welt", nil))
	b, err := io.ReadAll(e.Reader())
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "Grüße, Welt" {
		t.Errorf("expected reader to deliver 'Grüße, Welt', have %q", string(b))
	}
	small := make([]byte, 3)
	r := e.Reader()
	n, _ := r.Read(small)
	if n != 3 || string(small) != "Grü"[:3] {
		t.Errorf("expected 3 bytes, have %d: %q", n, small[:n])
	}
}
