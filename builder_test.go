package textbase

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestBuilderAppendPrepend(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textbase")
	defer teardown()
	//
	b := NewBuilder(nil)
	_ = b.Append(MustSpan("World", nil))
	_ = b.Prepend(MustSpan(" ", nil))
	_ = b.Prepend(MustSpan("Hello", nil))
	if b.Width() != 11 {
		t.Errorf("expected staged width 11, have %d", b.Width())
	}
	n := b.Node()
	if n.Text() != "Hello World" {
		t.Errorf("expected 'Hello World', have %q", n.Text())
	}
	if b.Node() != n {
		t.Errorf("expected repeated calls of Node to return the same tree")
	}
	if err := b.Append(MustSpan("!", nil)); !errors.Is(err, ErrBuilderDone) {
		t.Errorf("expected append after completion to fail, err = %v", err)
	}
	b.Reset()
	if !b.Node().IsEmpty() {
		t.Errorf("expected reset builder to yield an empty tree")
	}
}

func TestBuilderAppendString(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textbase")
	defer teardown()
	//
	bold := NewMarkup("bold")
	in := NewInterner(DefaultConfig())
	b := NewBuilder(in)
	if err := b.AppendString("One\n\nTwo", bold); err != nil {
		t.Fatal(err)
	}
	e := b.Extract()
	if e.Size() != 4 || e.Text() != "One\n\nTwo" {
		t.Fatalf("expected 4 spans for 'One\\n\\nTwo', have %v", e)
	}
	nl1, _ := e.Get(1)
	nl2, _ := e.Get(2)
	if nl1.Markup() != nil || nl1 != nl2 {
		t.Errorf("expected plain and interned newline spans")
	}
	if m, _ := e.MarkupAt(0); m != bold {
		t.Errorf("expected text to be bold")
	}
}

func TestConfigFrom(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textbase")
	defer teardown()
	//
	conf := testconfig.Conf{
		KeyHistoryLimit: 20,
		KeyTraceLevel:   "Debug",
	}
	c := ConfigFrom(conf)
	if c.HistoryLimit != 20 {
		t.Errorf("expected history limit 20, have %d", c.HistoryLimit)
	}
	if c.InternMaxLen != DefaultConfig().InternMaxLen {
		t.Errorf("expected default intern length, have %d", c.InternMaxLen)
	}
	if c.TraceLevel != "Debug" {
		t.Errorf("expected trace level 'Debug', have %q", c.TraceLevel)
	}
	c.SetupTracing()
	if ConfigFrom(nil) != DefaultConfig() {
		t.Errorf("expected default config for missing configuration")
	}
}

func TestSeries(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textbase")
	defer teardown()
	//
	one := NewSegment("para", chainOf(t, "One"))
	three := NewSegment("para", chainOf(t, "Three"))
	s := NewSeries(one, three)
	two := NewSegment("para", nil)
	_ = two.Chain().Append(MustSpan("Two", nil))
	if err := s.Insert(1, two); err != nil {
		t.Fatal(err)
	}
	if s.Text() != "One\nTwo\nThree" {
		t.Errorf("expected 'One\\nTwo\\nThree', have %q", s.Text())
	}
	if s.Index(three) != 2 || s.Index(NewSegment("x", nil)) != -1 {
		t.Errorf("unexpected segment index")
	}
	removed, err := s.Delete(0, 2)
	if err != nil || len(removed) != 2 || removed[1] != two {
		t.Errorf("expected to remove two segments, have %v", removed)
	}
	if s.Len() != 1 {
		t.Errorf("expected one segment left, have %d", s.Len())
	}
	if _, err := s.Get(1); !errors.Is(err, ErrIndexOutOfBounds) {
		t.Errorf("expected Get(1) to fail")
	}
}
