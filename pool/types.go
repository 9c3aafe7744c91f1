package pool

import "github.com/joshuapare/poolkit/internal/format"

// Ref is the offset of a block payload from the start of the pool. The payload
// follows its header, so a valid Ref is never smaller than format.HeaderSize.
type Ref uint32

// NilRef is the null reference returned when an allocation fails.
const NilRef Ref = 0

// HeaderSize is the fixed width of the header preceding every payload.
const HeaderSize = format.HeaderSize

// Allocator is the allocation surface of a pool.
//
// Implementations:
//   - Pool: fixed-capacity first-fit allocator over one reserved region
type Allocator interface {
	// Alloc claims a block with a payload of exactly size bytes.
	// Returns NilRef and an error when size is not positive or no block fits.
	Alloc(size int) (Ref, error)

	// Free marks the block as free. NilRef is a no-op.
	Free(ref Ref) error

	// Resize moves the payload into a block of newSize bytes, keeping the first
	// min(old, newSize) bytes. On failure the original block is left untouched.
	Resize(ref Ref, newSize int) (Ref, error)

	// Bytes returns the live payload of ref.
	Bytes(ref Ref) ([]byte, error)
}

// Block describes one claimed ledger entry.
type Block struct {
	Ref    Ref    // Payload reference
	Offset int    // Header offset
	Length uint32 // Live payload length, 0 when free
	Extent uint32 // Payload slot size
}

// Free reports whether the block is available for reuse.
func (b Block) Free() bool { return b.Length == 0 }

// Compile-time interface check
var _ Allocator = (*Pool)(nil)
