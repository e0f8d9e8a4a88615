package rag

import "errors"

// ErrInvalidArgument is returned when caller-supplied input fails validation,
// before any external call is made.
var ErrInvalidArgument = errors.New("invalid argument")
