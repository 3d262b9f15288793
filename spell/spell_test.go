package spell

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/textbase"
	"github.com/npillmayer/textbase/markup"
)

func TestWords(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textbase")
	defer teardown()
	//
	tc, _ := textbase.TextChainFromString("'Don’t' stop, 42 times!\nok", nil)
	_ = tc.Format(8, 4, markup.Bold)
	var words []string
	for w := range Words(tc) {
		words = append(words, w.Text)
		if s, _ := tc.ExtractRange(w.Offset, w.Width); s.Text() != w.Text {
			t.Errorf("word %q does not match text at %d", w.Text, w.Offset)
		}
	}
	if strings.Join(words, "|") != "Don’t|stop|times|ok" {
		t.Errorf("unexpected words %v", words)
	}
}

func TestMisspelled(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textbase")
	defer teardown()
	//
	dict, err := LoadWordList(strings.NewReader("# words\nthe\nquick\n\nfox\ndon't\n"))
	if err != nil {
		t.Fatal(err)
	}
	if dict.Len() != 4 {
		t.Errorf("expected 4 words in list, have %d", dict.Len())
	}
	tc, _ := textbase.TextChainFromString("The quikc fox, don’t", nil)
	bad := Misspelled(tc, dict)
	if len(bad) != 1 || bad[0].Text != "quikc" || bad[0].Offset != 4 {
		t.Errorf("expected 'quikc' at 4 to be misspelled, have %v", bad)
	}
	w, ok, err := Check(tc, 6, dict)
	if err != nil || ok || w.Text != "quikc" {
		t.Errorf("expected check at 6 to flag 'quikc', have %v/%v/%v", w, ok, err)
	}
	if _, ok, _ = Check(tc, 14, dict); !ok {
		t.Errorf("expected non-word position to pass")
	}
	if _, _, err = Check(tc, 99, dict); err == nil {
		t.Errorf("expected error for offset beyond chain")
	}
}
