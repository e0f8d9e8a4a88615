package vector

import "errors"

var (
	// ErrConnection is returned when the vector store connection or a
	// store operation fails.
	ErrConnection = errors.New("vector store connection failed")
)
