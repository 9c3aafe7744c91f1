// Package region reserves the zero-filled backing memory for a pool.
//
// On unix the region is an anonymous private mapping, on windows it is committed with
// VirtualAlloc, and elsewhere it falls back to a heap slice. Memory obtained from the
// first two is invisible to the garbage collector: slices into it must not be used
// after the release function runs.
package region

import "errors"

// ErrInvalidSize indicates a non-positive region size.
var ErrInvalidSize = errors.New("invalid region size")
