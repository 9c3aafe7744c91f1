package verify

import (
	"fmt"

	"github.com/joshuapare/poolkit/internal/format"
)

// ValidationError describes the first ledger inconsistency found.
type ValidationError struct {
	Type    string
	Message string
	Offset  int
	Details map[string]interface{}
}

func (e *ValidationError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s at offset 0x%X: %s", e.Type, e.Offset, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Ledger validates that the headers in data tile the pool from offset 0 to the
// unclaimed tail, and that the tail is untouched.
func Ledger(data []byte) error {
	off := 0
	blocks := 0
	for {
		h, next, ok, err := format.NextBlock(data, off)
		if err != nil {
			return &ValidationError{
				Type:    "BlockBounds",
				Message: err.Error(),
				Offset:  off,
				Details: map[string]interface{}{"extent": h.Extent, "capacity": len(data)},
			}
		}
		if !ok {
			break
		}
		if h.Length > h.Extent {
			return &ValidationError{
				Type:    "BlockLength",
				Message: fmt.Sprintf("length %d exceeds extent %d", h.Length, h.Extent),
				Offset:  off,
				Details: map[string]interface{}{"block": blocks},
			}
		}
		blocks++
		off = next
	}
	return Tail(data, off)
}

// Tail validates the unclaimed tail starting at off: its header must be empty and
// every byte must still be zero.
func Tail(data []byte, off int) error {
	if off < 0 || off > len(data) {
		return &ValidationError{
			Type:    "Tail",
			Message: fmt.Sprintf("tail offset outside pool of %d bytes", len(data)),
			Offset:  off,
		}
	}
	if format.Fits(len(data), off) {
		if h := format.ReadHeader(data, off); h.Length != 0 {
			return &ValidationError{
				Type:    "Tail",
				Message: fmt.Sprintf("tail header has length %d with zero extent", h.Length),
				Offset:  off,
			}
		}
	}
	for i := off; i < len(data); i++ {
		if data[i] != 0 {
			return &ValidationError{
				Type:    "Tail",
				Message: fmt.Sprintf("non-zero byte 0x%02X in unclaimed tail", data[i]),
				Offset:  i,
				Details: map[string]interface{}{"tail": off},
			}
		}
	}
	return nil
}
