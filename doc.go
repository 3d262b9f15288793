/*
Package textbase is the in-memory model for rich text as edited by a
WYSIWYN (“what you see is what you need”) editor.

Spans

Formatted text is stored as a sequence of spans. A span is an immutable run of
one or more Unicode code points, carrying at most one markup. Spans are never
changed after construction; re-formatting a piece of text produces new spans
sharing the character storage of the old ones.

Widths and offsets in this package are measured in code points, never in
bytes. A span of text “Grüße” has width 5, even though its UTF-8 encoding
takes 7 bytes.

Trees, Chains and Extracts

There are three views on a sequence of spans:

	Type       | Mutability  | Use
	-----------+-------------+-------------------------------------------
	Node       | persistent  | structural sharing of long-lived snapshots
	TextChain  | mutable     | the live buffer of one block of text
	Extract    | immutable   | clipboard payloads, undo records, rendering

A Node is a persistent binary tree over spans. Every operation on a node
returns a new tree and leaves the old one intact, so any number of readers may
hold on to older versions.

A TextChain is the buffer actually edited. It holds a flat slice of spans
together with a lazily computed index of span offsets. It is mutated in place,
but every mutation assembles a replacement slice first and swaps it in, so an
operation either completes or leaves the chain untouched.

An Extract is a flattened, immutable snapshot of a range of spans. Extracts
are what travels between the buffer and its collaborators: changes capture the
text they remove and add as extracts, the clipboard stores them and renderers
consume them.

Undo and redo is handled by package change, which wraps edits of a TextChain
as reversible changes.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
this list of conditions and the following disclaimer in the documentation
and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

*/
package textbase

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'textbase'
func tracer() tracing.Trace {
	return tracing.Select("textbase")
}

// TextError is an error type for the textbase module
type TextError string

func (e TextError) Error() string {
	return string(e)
}

// ErrIndexOutOfBounds is flagged whenever an offset or width does not denote
// a valid range of a span, tree or chain. It signals a programming error of
// the caller, not a recoverable runtime condition.
const ErrIndexOutOfBounds = TextError("index out of bounds")

// ErrInvalidArgument is flagged for illegal constructor input, e.g. empty text
// or lone surrogate code points.
const ErrInvalidArgument = TextError("invalid argument")

// ErrBuilderDone is flagged when adding to a builder which has already
// delivered its result.
const ErrBuilderDone = TextError("builder already completed")

// ErrUnreachable is raised (as a panic value) if a dispatch site encounters
// a variant it does not know of.
const ErrUnreachable = TextError("unreachable state")

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
