package format

import "errors"

var (
	// ErrTruncated indicates the buffer lacked the bytes required for a structure.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrFreeCell indicates a block not marked allocated was encountered.
	ErrFreeCell = errors.New("format: cell not in use")
)
