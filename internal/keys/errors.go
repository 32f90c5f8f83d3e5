package keys

import "errors"

// ErrUnmappedSymbol is returned for a symbol with no key code.
var ErrUnmappedSymbol = errors.New("keys: symbol has no key code")
