package spell

import (
	"iter"
	"strings"

	"github.com/npillmayer/textbase"
)

// Word is a word of a text chain.
type Word struct {
	Offset int    // position of the first code point
	Width  int    // number of code points
	Text   string // text of the word, without markup
}

// End returns the position after the last code point of w.
func (w Word) End() int {
	return w.Offset + w.Width
}

// Words iterates over the words of a text chain. The iteration works on a
// snapshot of the chain taken at the time of the call.
func Words(tc *textbase.TextChain) iter.Seq[Word] {
	snapshot := tc.ExtractAll()
	return func(yield func(Word) bool) {
		cc := textbase.TextChainFromExtract(snapshot).NewCharCursor()
		var w strings.Builder
		start := -1
		flush := func(end int) bool {
			if start < 0 {
				return true
			}
			word, ok := trimApostrophes([]rune(w.String()), start)
			w.Reset()
			start = -1
			if !ok {
				return true
			}
			assert(word.End() <= end, "spell: word exceeds its run")
			return yield(word)
		}
		for {
			pos := cc.Pos()
			r, ok := cc.Next()
			if !ok {
				flush(pos)
				return
			}
			if textbase.IsWordChar(r) {
				if start < 0 {
					start = pos
				}
				w.WriteRune(r)
				continue
			}
			if !flush(pos) {
				return
			}
		}
	}
}

// trimApostrophes strips apostrophes at both ends of a run of word characters
// starting at offset.
func trimApostrophes(run []rune, offset int) (Word, bool) {
	from, to := 0, len(run)
	for from < to && isApostrophe(run[from]) {
		from++
	}
	for to > from && isApostrophe(run[to-1]) {
		to--
	}
	if from == to {
		return Word{}, false
	}
	return Word{
		Offset: offset + from,
		Width:  to - from,
		Text:   string(run[from:to]),
	}, true
}

func isApostrophe(r rune) bool {
	return r == '\'' || r == '’'
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
