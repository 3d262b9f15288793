/*
Package change implements reversible edits of text chains, and an undo/redo
stack for them.

A Change is a record of an edit: where it happened, which text it removed and
which text it added, both as immutable extracts. Changes come in a few kinds
(insert, delete, replace, format, split), and the free functions Apply and Undo
dispatch on the kind of a change. UI code will rarely call them directly, but
construct changes and hand them to a Stack:

	stack := change.NewStack(100)
	c, err := change.ToggleMarkup(chain, 0, 5, markup.Bold)
	...
	err = stack.Apply(c)    // chain now has [0,5) set in bold
	stack.Undo()            // back to before

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

All rights reserved.

Please refer to the License file in the repository root.

*/
package change

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'textbase'
func tracer() tracing.Trace {
	return tracing.Select("textbase")
}
