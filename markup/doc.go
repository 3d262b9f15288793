/*
Package markup holds a catalogue of standard markups for inline formatting.

Markups are compared by identity, thus all parts of an application must share
the instances of this package. Clients needing additional formats may create
their own with textbase.NewMarkup.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

All rights reserved.

Please refer to the License file in the repository root.

*/
package markup
