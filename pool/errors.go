package pool

import "errors"

var (
	// ErrInvalidCapacity indicates a pool capacity that is not positive or exceeds format.MaxPoolSize.
	ErrInvalidCapacity = errors.New("pool: invalid capacity")

	// ErrReserve indicates the backing region could not be reserved. Callers treat it as fatal.
	ErrReserve = errors.New("pool: cannot reserve backing region")

	// ErrInvalidSize indicates a zero or negative allocation size.
	ErrInvalidSize = errors.New("pool: size must be positive")

	// ErrNoSpace indicates that no free block large enough was found.
	ErrNoSpace = errors.New("pool: no free block large enough")

	// ErrBadRef indicates a ref whose header or payload falls outside the pool.
	ErrBadRef = errors.New("pool: bad block reference")

	// ErrNotAllocated indicates a ref whose block is marked free.
	ErrNotAllocated = errors.New("pool: block not allocated")

	// ErrClosed indicates an operation on a pool after Close.
	ErrClosed = errors.New("pool: closed")
)
