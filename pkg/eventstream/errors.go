package eventstream

import "errors"

// ErrNilEvent indicates a nil event payload was delivered to a handler.
var ErrNilEvent = errors.New("nil object event")
