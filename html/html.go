package html

import (
	"io"
	"strings"
	"unicode"

	"github.com/npillmayer/textbase"
	"github.com/npillmayer/textbase/markup"
	"golang.org/x/net/html"
)

// InnerText creates an extract for the textual content of an HTML element and
// all its descendents. It resembles the text produced by
//
//	document.getElementById("myNode").innerText
//
// in JavaScript, except that InnerText cannot respect CSS styling. Inline
// elements known to package markup are translated into markup, <br> into
// newlines. Runs of white space are collapsed into a single space.
//
// Spans are created by interner in. If in is nil, a new interner with default
// configuration is used.
func InnerText(n *html.Node, in *textbase.Interner) (textbase.Extract, error) {
	if n == nil {
		return textbase.Extract{}, textbase.ErrInvalidArgument
	}
	b := textbase.NewBuilder(orDefault(in))
	if err := collectText(n, nil, false, b); err != nil {
		return textbase.Extract{}, err
	}
	return b.Extract(), nil
}

// TextFromHTML creates an extract from the textual content of an HTML
// fragment. The fragment should reflect the content of a paragraph-like
// element. Interner in is used as with InnerText.
func TextFromHTML(input io.Reader, in *textbase.Interner) (textbase.Extract, error) {
	nodes, err := html.ParseFragment(input, nil)
	if err != nil {
		return textbase.Extract{}, err
	}
	b := textbase.NewBuilder(orDefault(in))
	for _, n := range nodes {
		if err = collectText(n, nil, false, b); err != nil {
			return textbase.Extract{}, err
		}
	}
	return b.Extract(), nil
}

func orDefault(in *textbase.Interner) *textbase.Interner {
	if in == nil {
		return textbase.NewInterner(textbase.DefaultConfig())
	}
	return in
}

func collectText(n *html.Node, m *textbase.Markup, pre bool, b *textbase.Builder) error {
	switch n.Type {
	case html.ElementNode:
		if ignored(n.Data) {
			return nil
		}
		if n.Data == "br" {
			return b.AppendString("\n", nil)
		}
		if n.Data == "pre" {
			pre = true
		}
		if mm := markup.FromHTMLName(n.Data); mm != nil {
			m = mm
		}
		tracer().Debugf("html: collect text of <%s> with %v", n.Data, m)
	case html.TextNode:
		text := n.Data
		if !pre {
			text = collapseSpace(text)
		}
		return b.AppendString(text, m)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := collectText(c, m, pre, b); err != nil {
			return err
		}
	}
	return nil
}

// --- Documents -------------------------------------------------------------

// LoadSeries reads an HTML document and creates a segment for each block
// element. The kind of a segment is the name of its element, e.g. "p" or "h1".
// Text outside of block elements is collected into segments of kind "p".
//
// Leading and trailing white space is removed from each block, and blocks
// without text are dropped.
//
// All spans of the document are created by interner in. If in is nil, a new
// interner with default configuration is used for the document.
func LoadSeries(input io.Reader, in *textbase.Interner) (*textbase.Series, error) {
	doc, err := html.Parse(input)
	if err != nil {
		return nil, err
	}
	series := textbase.NewSeries()
	if err = collectBlocks(doc, series, orDefault(in)); err != nil {
		return nil, err
	}
	tracer().Infof("html: loaded %d blocks", series.Len())
	return series, nil
}

var blockElements = map[string]bool{
	"p": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"li": true, "pre": true, "blockquote": true, "dt": true, "dd": true,
}

func ignored(element string) bool {
	switch element {
	case "head", "script", "style", "template":
		return true
	}
	return false
}

func collectBlocks(n *html.Node, series *textbase.Series, in *textbase.Interner) error {
	if n.Type == html.ElementNode && ignored(n.Data) {
		return nil
	}
	if n.Type == html.ElementNode && blockElements[n.Data] {
		return addBlock(n.Data, n, series, in)
	}
	if n.Type == html.TextNode {
		if strings.TrimSpace(n.Data) == "" {
			return nil
		}
		return addBlock("p", n, series, in)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := collectBlocks(c, series, in); err != nil {
			return err
		}
	}
	return nil
}

// addBlock appends the text of n, span by span, to a new segment.
func addBlock(kind string, n *html.Node, series *textbase.Series, in *textbase.Interner) error {
	b := textbase.NewBuilder(in)
	if err := collectText(n, nil, kind == "pre", b); err != nil {
		return err
	}
	seg := textbase.NewSegment(kind, nil)
	chain := seg.Chain()
	for s := range b.Extract().Spans() {
		if err := chain.Append(s); err != nil {
			return err
		}
	}
	if err := trimSpace(chain); err != nil {
		return err
	}
	if chain.Length() == 0 {
		return nil
	}
	return series.Insert(series.Len(), seg)
}

// trimSpace deletes leading and trailing white space from a chain.
func trimSpace(chain *textbase.TextChain) error {
	cc := chain.NewCharCursor()
	lead := 0
	for r, ok := cc.Next(); ok && unicode.IsSpace(r); r, ok = cc.Next() {
		lead++
	}
	if err := chain.Delete(0, lead); err != nil {
		return err
	}
	cc = chain.NewCharCursor()
	_ = cc.Seek(chain.Length())
	trail := 0
	for r, ok := cc.Prev(); ok && unicode.IsSpace(r); r, ok = cc.Prev() {
		trail++
	}
	return chain.Delete(chain.Length()-trail, trail)
}

func collapseSpace(s string) string {
	var sb strings.Builder
	space := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !space {
				sb.WriteByte(' ')
			}
			space = true
			continue
		}
		space = false
		sb.WriteRune(r)
	}
	return sb.String()
}
