// Package pool provides a fixed-capacity, process-local block allocator.
//
// # Overview
//
// A Pool reserves one zero-filled region up front and hands out blocks from it
// instead of relying on the Go heap. All free/used bookkeeping is stored in-band: every
// block starts with an 8-byte header directly followed by its payload, and the
// sequence of headers doubles as the free list. There is no side table.
//
// # Lifecycle
//
//	p, err := pool.New(1024, nil) // init: reserve and zero 1 KiB
//	if err != nil {
//	    return err // wraps pool.ErrReserve when the region cannot be obtained
//	}
//	defer p.Close() // deinit: release the region
//
// Each Pool is initialised once by New and torn down once by Close. Independent pools
// do not share state, so tests can run isolated pools side by side.
//
// # Allocation
//
//	ref, err := p.Alloc(16)
//	if err != nil {
//	    return err // ErrInvalidSize for size <= 0, ErrNoSpace when nothing fits
//	}
//	buf, _ := p.Bytes(ref)
//	copy(buf, "sixteen bytes!!!")
//
//	ref, err = p.Resize(ref, 32) // first 16 bytes preserved
//	_ = p.Free(ref)
//
// Allocation is strict first-fit in ascending address order: the first freed block
// whose slot can hold the request wins, otherwise the request is carved from the
// unclaimed tail. Freed blocks keep their boundaries and are never merged, so
// fragmentation accumulates under churn.
//
// # Block Header
//
//	Offset  Size  Description
//	0x00    4     Length - payload length, 0 = free
//	0x04    4     Extent - payload slot size, 0 = unclaimed tail
//
// A Ref is the payload offset (header offset + 8), so NilRef (0) is never a valid
// payload. Free writes 0 into Length and leaves the payload untouched; a later
// allocation of the same block may observe the previous occupant's bytes.
//
// # Thread Safety
//
// One mutex serializes every ledger operation. Resize claims the new block, copies
// and frees the old block inside a single critical section. Payload contents are not
// protected once Alloc returns.
//
// # Related Packages
//
//   - github.com/joshuapare/poolkit/pool/verify: Ledger validation
//   - github.com/joshuapare/poolkit/list: Linked list whose nodes live in a pool
//   - github.com/joshuapare/poolkit/internal/format: Header layout
package pool
