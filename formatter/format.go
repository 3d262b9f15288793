package formatter

import (
	"bufio"
	"errors"
	"io"
	"os"
	"sync"
	"unicode/utf8"

	"github.com/npillmayer/textbase"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/segment"
	"github.com/npillmayer/uax/uax11"
	"github.com/npillmayer/uax/uax14"
)

// Config represents a set of configuration parameters for formatting.
type Config struct {
	LineWidth int
	Context   *uax11.Context
}

// Format is an interface for formatting drivers, given an io.Writer
type Format interface {
	Preamble(io.Writer)
	Postamble(io.Writer)
	StyledText(string, *textbase.Markup, io.Writer)
	Newline(io.Writer)
}

var setupGraphemes sync.Once

// Output formats a paragraph of text using a given formatter. The paragraph
// must not contain newlines.
//
// Neither of the arguments may be nil. However, it is safe to have
// config.Context set to nil. In this case, uax11.LatinContext is used.
func Output(para textbase.Extract, out io.Writer, config *Config, format Format) error {
	if out == nil || config == nil || format == nil {
		return errors.New("illegal argument: nil")
	}
	context := config.Context
	if context == nil {
		context = uax11.LatinContext
	}
	breaks := firstFit(para, config.LineWidth, context)
	format.Preamble(out)
	start := 0
	for i, pos := range breaks {
		line, err := para.Slice(start, pos-start)
		if err != nil {
			tracer().Errorf("error cutting line %d: %v", i, err)
			return err
		}
		tracer().Debugf("[%3d] \"%s\"", i, line.Text())
		for s := range line.Spans() {
			format.StyledText(s.Text(), s.Markup(), out)
		}
		format.Newline(out)
		start = pos
	}
	format.Postamble(out)
	return nil
}

// Print outputs a paragraph to stdout.
//
// If parameter config is nil, a heuristic will create a config from the
// current terminal's properties (if stdout is interactive). Config.Context
// will also be created based on heuristics from the user environment.
func Print(para textbase.Extract, config *Config) error {
	if config == nil {
		config = ConfigFromTerminal()
		config.Context = uax11.ContextFromEnvironment()
	}
	return Output(para, os.Stdout, config, NewConsole(nil, nil))
}

// OutputChain formats all paragraphs of a text chain.
func OutputChain(chain *textbase.TextChain, out io.Writer, config *Config, format Format) error {
	for _, para := range chain.ExtractParagraphs() {
		if err := Output(para, out, config, format); err != nil {
			return err
		}
	}
	return nil
}

// --- Line breaking ---------------------------------------------------------
/*
Wikipedia:

	1. |  SpaceLeft := LineWidth
	2. |  for each Word in Text
	3. |      if (Width(Word) + SpaceWidth) > SpaceLeft
	4. |           insert line break before Word in Text
	5. |           SpaceLeft := LineWidth - Width(Word)
	6. |      else
	7. |           SpaceLeft := SpaceLeft - (Width(Word) + SpaceWidth)
*/

// firstFit returns the positions (in code points) after which to break
// lines. The last position is always the width of para.
func firstFit(para textbase.Extract, linewidth int, context *uax11.Context) []int {
	setupGraphemes.Do(grapheme.SetupGraphemeClasses)
	linewrap := uax14.NewLineWrap()
	segmenter := segment.NewSegmenter(linewrap)
	segmenter.Init(bufio.NewReader(para.Reader()))
	spaceleft := linewidth
	breaks := make([]int, 0, 20)
	prevpos := 0
	linestart := true
	for segmenter.Next() {
		frag := string(segmenter.Bytes())
		gstr := grapheme.StringFromString(frag)
		fraglen := uax11.StringWidth(gstr, context)
		if fraglen >= spaceleft {
			if linestart { // fragment is too long for a line
				prevpos += utf8.RuneCountInString(frag)
				breaks = append(breaks, prevpos)
				spaceleft = linewidth
				continue
			}
			breaks = append(breaks, prevpos) // fragment overshoots line
			spaceleft = linewidth - fraglen
		} else {
			spaceleft -= fraglen
		}
		linestart = false
		prevpos += utf8.RuneCountInString(frag)
	}
	if len(breaks) == 0 || breaks[len(breaks)-1] < para.Width() {
		breaks = append(breaks, para.Width())
	}
	tracer().Debugf("line breaks at %v", breaks)
	return breaks
}
