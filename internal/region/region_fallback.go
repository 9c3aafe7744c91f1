//go:build !unix && !windows

package region

import "fmt"

// Reserve allocates the region on the Go heap when no virtual memory API is available.
func Reserve(size int) ([]byte, func() error, error) {
	if size <= 0 {
		return nil, nil, fmt.Errorf("region: %w (%d bytes)", ErrInvalidSize, size)
	}
	data := make([]byte, size)
	return data, func() error { return nil }, nil
}
