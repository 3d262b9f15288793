/*
Package html loads text with inline formatting from HTML.

It is a stand-in for a full document loader: block elements like <p> or <h1>
become segments, inline elements like <b> or <code> become markup (see package
markup), and text is appended span by span to the segments' text chains.
Everything else about HTML (CSS, tables, images, …) is ignored.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

All rights reserved.

Please refer to the License file in the repository root.

*/
package html

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'textbase'
func tracer() tracing.Trace {
	return tracing.Select("textbase")
}
