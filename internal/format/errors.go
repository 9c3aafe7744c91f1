package format

import "errors"

var (
	// ErrTruncated indicates the buffer lacked the bytes required for a header.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrOverrun indicates a block extent runs past the end of the pool.
	ErrOverrun = errors.New("format: block overruns pool")
)
