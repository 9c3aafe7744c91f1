package pool

import (
	"fmt"

	"github.com/joshuapare/poolkit/internal/format"
)

// The helpers below operate on the ledger directly and assume p.mu is held and the
// pool is open. Exported methods acquire the lock once and compose them, which is
// what keeps Resize a single critical section.

// alloc performs the first-fit scan.
//
//	+--------+-----------+--------+-----------+--------+---------------------+
//	| hdr    | payload   | hdr    | payload   | hdr    | unclaimed tail      |
//	| 16/16  | live      | 0/24   | stale     | 0/0    | zero                |
//	+--------+-----------+--------+-----------+--------+---------------------+
//	         ^ Ref                ^ reusable if Extent >= size
//
// A freed block is reused when its Extent can hold size; its Extent is kept, so the
// block boundary does not move. The unclaimed tail is claimed when the bytes left in
// the pool can hold a header plus size. Adjacent free blocks are never merged.
func (p *Pool) alloc(size int) (Ref, error) {
	p.stats.AllocCalls++

	if size <= 0 {
		p.stats.AllocFailures++
		return NilRef, ErrInvalidSize
	}
	if size > len(p.data)-format.HeaderSize {
		p.stats.AllocFailures++
		p.log.Debug("alloc exceeds capacity", "size", size, "capacity", len(p.data))
		return NilRef, ErrNoSpace
	}

	off := 0
	for format.Fits(len(p.data), off) {
		h := format.ReadHeader(p.data, off)

		if h.Tail() {
			if len(p.data)-off-format.HeaderSize < size {
				break
			}
			format.PutHeader(p.data, off, format.Header{Length: uint32(size), Extent: uint32(size)})
			return p.claimed(off, size), nil
		}

		if h.Free() && int(h.Extent) >= size {
			format.PutLength(p.data, off, uint32(size))
			return p.claimed(off, size), nil
		}

		off += h.Span()
	}

	p.stats.AllocFailures++
	p.log.Debug("alloc exhausted", "size", size, "scanned", off)
	return NilRef, ErrNoSpace
}

func (p *Pool) claimed(off, size int) Ref {
	ref := Ref(off + format.HeaderSize)
	p.stats.BytesAllocated += int64(size)
	p.log.Debug("alloc", "ref", ref, "size", size)
	return ref
}

// free zeroes the Length field of ref's header.
func (p *Pool) free(ref Ref) error {
	off := HeaderOffset(ref)
	if !format.Fits(len(p.data), off) {
		return fmt.Errorf("free %d: %w", ref, ErrBadRef)
	}

	length := format.ReadU32(p.data, off+format.LengthOffset)
	format.PutLength(p.data, off, 0)

	p.stats.FreeCalls++
	p.stats.BytesFreed += int64(length)
	p.log.Debug("free", "ref", ref, "size", length)
	return nil
}

// payload returns ref's live payload slice.
func (p *Pool) payload(ref Ref) ([]byte, error) {
	off := HeaderOffset(ref)
	if !format.Fits(len(p.data), off) {
		return nil, fmt.Errorf("payload %d: %w", ref, ErrBadRef)
	}

	length := int(format.ReadU32(p.data, off+format.LengthOffset))
	if length == 0 {
		return nil, fmt.Errorf("payload %d: %w", ref, ErrNotAllocated)
	}
	end := int(ref) + length
	if end > len(p.data) {
		return nil, fmt.Errorf("payload %d length %d: %w", ref, length, ErrBadRef)
	}
	return p.data[ref:end:end], nil
}

// resize claims the new block before releasing the old one, so a failed resize
// never loses data.
func (p *Pool) resize(ref Ref, newSize int) (Ref, error) {
	p.stats.ResizeCalls++

	old, err := p.payload(ref)
	if err != nil {
		p.stats.ResizeFailures++
		return NilRef, err
	}

	next, err := p.alloc(newSize)
	if err != nil {
		p.stats.ResizeFailures++
		p.log.Debug("resize failed", "ref", ref, "from", len(old), "to", newSize, "error", err)
		return NilRef, err
	}

	// alloc never hands out a live block, so old and dst do not overlap.
	dst := p.data[next : int(next)+newSize]
	copy(dst, old)

	if err := p.free(ref); err != nil {
		return NilRef, err
	}
	p.log.Debug("resize", "from_ref", ref, "to_ref", next, "from", len(old), "to", newSize)
	return next, nil
}
