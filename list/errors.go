package list

import "errors"

var (
	// ErrNilNode is returned when an insert is anchored on NilRef.
	ErrNilNode = errors.New("list: nil node")

	// ErrNotFound is returned when a value or anchor node is not in the list.
	ErrNotFound = errors.New("list: not found")
)
