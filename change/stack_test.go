package change

import (
	"testing"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/textbase"
)

func TestStackUndoRedo(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textbase")
	defer teardown()
	//
	tc := chainOf(t, "Hello World")
	s := NewStack(0)
	if c, err := s.Undo(); c != nil || err != nil {
		t.Errorf("expected undo on empty stack to be a no-op")
	}
	c, _ := DeleteRange(tc, 6, 5)
	if err := s.Apply(c); err != nil {
		t.Fatal(err)
	}
	if s.Current() != c || !s.CanUndo() || s.CanRedo() {
		t.Errorf("unexpected stack state after apply")
	}
	if u, _ := s.Undo(); u != c || tc.Text() != "Hello World" {
		t.Errorf("expected undo to restore 'Hello World', have %q", tc.Text())
	}
	if s.Current() != nil || s.Pointer() != 0 {
		t.Errorf("expected no current change after undo")
	}
	if r, _ := s.Redo(); r != c || tc.Text() != "Hello " {
		t.Errorf("expected redo to yield 'Hello ', have %q", tc.Text())
	}
	if r, err := s.Redo(); r != nil || err != nil {
		t.Errorf("expected redo at end of history to be a no-op")
	}
}

func TestStackLaw(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textbase")
	defer teardown()
	//
	tc := chainOf(t, "abc")
	s := NewStack(0)
	const k = 5
	for i := 0; i < k; i++ {
		c, _ := InsertText(tc, tc.Length(), "x", nil)
		_ = s.Apply(c)
	}
	final := tc.ExtractAll()
	for i := 0; i < k; i++ {
		_, _ = s.Undo()
	}
	if tc.Text() != "abc" {
		t.Fatalf("expected all changes undone, have %q", tc.Text())
	}
	for i := 0; i < k-1; i++ {
		_, _ = s.Redo()
	}
	if !s.CanRedo() {
		t.Fatalf("expected one more change to redo")
	}
	_, _ = s.Redo()
	if !tc.ExtractAll().Equal(final) || s.Pointer() != k {
		t.Errorf("expected redo to reproduce final state")
	}
	_, _ = s.Undo()
	_, _ = s.Undo()
	c, _ := DeleteRange(tc, 0, 1)
	_ = s.Apply(c)
	if s.CanRedo() || s.Len() != k-1 {
		t.Errorf("expected apply after undo to discard redo entries, len = %d", s.Len())
	}
}

func TestStackFailedApply(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textbase")
	defer teardown()
	//
	tc := chainOf(t, "abc")
	s := NewStack(0)
	bad := NewDeleteChange(tc, 2, textbase.NewExtract(textbase.MustSpan("long text", nil)))
	if err := s.Apply(bad); err == nil {
		t.Errorf("expected invalid change to fail")
	}
	if s.Len() != 0 || tc.Text() != "abc" {
		t.Errorf("expected failed change to leave stack and text untouched")
	}
}

func TestStackHistoryLimit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textbase")
	defer teardown()
	//
	conf := textbase.ConfigFrom(testconfig.Conf{textbase.KeyHistoryLimit: 3})
	s := NewStackFromConfig(conf)
	tc := chainOf(t, "")
	for i := 0; i < 5; i++ {
		c, _ := InsertText(tc, 0, "x", nil)
		_ = s.Apply(c)
	}
	if s.Len() != 3 || s.Pointer() != 3 {
		t.Errorf("expected history of 3, have len=%d pointer=%d", s.Len(), s.Pointer())
	}
	for s.CanUndo() {
		_, _ = s.Undo()
	}
	if tc.Text() != "xx" {
		t.Errorf("expected the two oldest changes to stay applied, have %q", tc.Text())
	}
}

func TestStackClear(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textbase")
	defer teardown()
	//
	tc := chainOf(t, "abc")
	s := NewStack(0)
	c, _ := InsertText(tc, 3, "d", nil)
	_ = s.Apply(c)
	s.Clear()
	if s.Len() != 0 || s.CanUndo() || s.CanRedo() {
		t.Errorf("expected cleared stack to be empty")
	}
	if tc.Text() != "abcd" {
		t.Errorf("expected clearing the history to leave the text alone, have %q", tc.Text())
	}
}
