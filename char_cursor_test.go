package textbase

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestCharCursorNextPrev(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textbase")
	defer teardown()
	//
	tc := NewTextChain()
	for _, s := range []string{"aß", "😀", "z"} {
		_ = tc.Append(MustSpan(s, nil))
	}
	cc := tc.NewCharCursor()
	var fwd []rune
	for {
		r, ok := cc.Next()
		if !ok {
			break
		}
		fwd = append(fwd, r)
	}
	if string(fwd) != "aß😀z" || cc.Pos() != 4 {
		t.Errorf("expected forward walk 'aß😀z' ending at 4, have %q at %d", string(fwd), cc.Pos())
	}
	var back []rune
	for {
		r, ok := cc.Prev()
		if !ok {
			break
		}
		back = append(back, r)
	}
	if string(back) != "z😀ßa" || cc.Pos() != 0 {
		t.Errorf("expected backward walk 'z😀ßa' ending at 0, have %q at %d", string(back), cc.Pos())
	}
}

func TestCharCursorSeekAndSnapshot(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textbase")
	defer teardown()
	//
	tc := chainOf(t, "Hello World")
	cc := tc.NewCharCursor()
	if err := cc.Seek(6); err != nil {
		t.Fatal(err)
	}
	_ = tc.Delete(0, 6) // cursor keeps the old spans
	if r, _ := cc.Next(); r != 'W' {
		t.Errorf("expected 'W' after seek, have %q", r)
	}
	if err := cc.Seek(12); err == nil {
		t.Errorf("expected seek beyond end to fail")
	}
}
