// Package format describes the in-band block ledger stored inside a pool.
//
// Every block starts with a fixed-width header followed by its payload:
//
//	Offset  Size  Description
//	0x00    4     Length. Payload length of a live block; 0 marks the block free.
//	0x04    4     Extent. Payload slot owned by the block; 0 marks the unclaimed tail.
//	0x08    ...   Payload (Extent bytes, of which the first Length are live).
//
// Headers and extents tile the pool from offset 0 up to the unclaimed tail. Freeing a
// block clears Length only, so the block boundary survives until the slot is claimed
// again.
package format

import "math"

const (
	// HeaderSize is the width of a block header in bytes.
	HeaderSize = 8

	// LengthOffset is the offset of the Length field inside a header.
	LengthOffset = 0x00

	// ExtentOffset is the offset of the Extent field inside a header.
	ExtentOffset = 0x04

	// MaxPoolSize is the largest capacity a ledger can address with 32-bit fields.
	MaxPoolSize = math.MaxUint32
)

// Header is a decoded block header.
type Header struct {
	Length uint32
	Extent uint32
}

// Free reports whether the header marks its block as free.
func (h Header) Free() bool { return h.Length == 0 }

// Tail reports whether the header marks the start of the unclaimed tail.
func (h Header) Tail() bool { return h.Extent == 0 }

// Span returns the number of pool bytes covered by the block, header included.
func (h Header) Span() int { return HeaderSize + int(h.Extent) }

// Fits reports whether a header can be read at off in a pool of n bytes.
func Fits(n, off int) bool {
	return off >= 0 && off <= n-HeaderSize
}

// ReadHeader decodes the header at off. The caller must ensure Fits(len(b), off).
func ReadHeader(b []byte, off int) Header {
	return Header{
		Length: ReadU32(b, off+LengthOffset),
		Extent: ReadU32(b, off+ExtentOffset),
	}
}

// PutHeader encodes h at off.
func PutHeader(b []byte, off int, h Header) {
	PutU32(b, off+LengthOffset, h.Length)
	PutU32(b, off+ExtentOffset, h.Extent)
}

// PutLength rewrites only the Length field at off.
func PutLength(b []byte, off int, length uint32) {
	PutU32(b, off+LengthOffset, length)
}
