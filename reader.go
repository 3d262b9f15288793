package textbase

import (
	"io"
	"strings"
)

// Reader returns a reader for the UTF-8 text of an extract, without markup.
func (e Extract) Reader() io.Reader {
	return &extractReader{spans: e.spans}
}

type extractReader struct {
	spans  []Span
	cur    *strings.Reader
	cursor int // index of next span
}

func (er *extractReader) Read(p []byte) (n int, err error) {
	for n < len(p) {
		if er.cur == nil || er.cur.Len() == 0 {
			if er.cursor >= len(er.spans) {
				break
			}
			er.cur = strings.NewReader(er.spans[er.cursor].Text())
			er.cursor++
		}
		k, _ := er.cur.Read(p[n:])
		n += k
	}
	if n == 0 && len(p) > 0 {
		return 0, io.EOF
	}
	return n, nil
}
