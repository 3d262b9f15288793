package spell

import (
	"bufio"
	"io"
	"strings"

	"github.com/npillmayer/textbase"
)

// Dictionary decides whether a word is spelled correctly.
type Dictionary interface {
	Check(word string) bool
}

// WordList is a dictionary holding a list of known words. Lookup ignores case
// and does not distinguish between the apostrophes ' and ’.
type WordList struct {
	words map[string]struct{}
}

// NewWordList creates a word list holding words.
func NewWordList(words ...string) *WordList {
	wl := &WordList{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		wl.Add(w)
	}
	return wl
}

// LoadWordList reads a word list with one word per line. Empty lines and
// lines starting with '#' are skipped.
func LoadWordList(r io.Reader) (*WordList, error) {
	wl := NewWordList()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		wl.Add(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	tracer().Debugf("spell: loaded %d words", wl.Len())
	return wl, nil
}

// Add adds a word to the list.
func (wl *WordList) Add(word string) {
	wl.words[fold(word)] = struct{}{}
}

// Len returns the number of distinct words in the list.
func (wl *WordList) Len() int {
	return len(wl.words)
}

// Check is part of interface Dictionary.
func (wl *WordList) Check(word string) bool {
	_, ok := wl.words[fold(word)]
	return ok
}

func fold(word string) string {
	return strings.ReplaceAll(strings.ToLower(word), "’", "'")
}

// Misspelled returns the words of a text chain not accepted by dict.
func Misspelled(tc *textbase.TextChain, dict Dictionary) []Word {
	var bad []Word
	for w := range Words(tc) {
		if !dict.Check(w.Text) {
			bad = append(bad, w)
		}
	}
	return bad
}

// Check looks up the word around offset. It returns the word, or false if
// there is no word at offset, and whether dict accepts it.
func Check(tc *textbase.TextChain, offset int, dict Dictionary) (Word, bool, error) {
	start, e, err := tc.WordAt(offset)
	if err != nil {
		return Word{}, false, err
	}
	w, ok := trimApostrophes([]rune(e.Text()), start)
	if !ok {
		return Word{}, true, nil
	}
	return w, dict.Check(w.Text), nil
}
