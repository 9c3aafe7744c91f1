package pool

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/joshuapare/poolkit/internal/format"
	"github.com/joshuapare/poolkit/pool/verify"
)

// Pool is a fixed-capacity allocator over one reserved region. All bookkeeping lives
// in block headers inside the region itself.
//
// A single mutex guards the ledger: Alloc, Free and Resize each run as one critical
// section. Payload bytes handed out by Bytes are not guarded; goroutines sharing one
// payload must synchronize among themselves.
type Pool struct {
	mu sync.Mutex

	// data is the backing region; nil once the pool is closed.
	data    []byte
	release func() error

	log   *slog.Logger
	stats counters
}

// New reserves a zero-filled region of exactly capacity bytes and returns a pool
// managing it. Pass nil opts for DefaultOptions.
//
// A reservation failure is returned wrapped in ErrReserve. No partial pool exists in
// that case; command-line entry points treat it as fatal.
func New(capacity int, opts *Options) (*Pool, error) {
	o := opts.withDefaults()

	if capacity <= 0 || int64(capacity) > format.MaxPoolSize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}

	data, release, err := o.Reserve(capacity)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReserve, err)
	}
	if len(data) != capacity {
		if release != nil {
			_ = release()
		}
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrReserve, len(data), capacity)
	}

	o.Logger.Debug("pool init", "capacity", capacity)
	return &Pool{
		data:    data,
		release: release,
		log:     o.Logger,
	}, nil
}

// Close releases the backing region. Every ref and payload slice obtained from the
// pool is dangling afterwards. Closing an already closed pool is a no-op.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.data == nil {
		return nil
	}
	capacity := len(p.data)
	p.data = nil

	var err error
	if p.release != nil {
		err = p.release()
		p.release = nil
	}
	p.log.Debug("pool deinit", "capacity", capacity, "error", err)
	return err
}

// Cap returns the pool capacity in bytes, or 0 once closed.
func (p *Pool) Cap() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.data)
}

// HeaderOffset returns the offset of the header that precedes ref's payload.
func HeaderOffset(ref Ref) int {
	return int(ref) - format.HeaderSize
}

// Alloc claims the first free block, in ascending address order, that can hold size
// bytes. It returns NilRef with ErrInvalidSize for size <= 0 and NilRef with
// ErrNoSpace when nothing fits.
func (p *Pool) Alloc(size int) (Ref, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.data == nil {
		return NilRef, ErrClosed
	}
	return p.alloc(size)
}

// Free marks ref's block free in O(1). NilRef is a no-op. The payload bytes are left
// as they were, so the next occupant of the block may observe them.
//
// Free does not check that ref came from Alloc or is still live; only refs whose
// header would fall outside the pool are rejected with ErrBadRef.
func (p *Pool) Free(ref Ref) error {
	if ref == NilRef {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.data == nil {
		return ErrClosed
	}
	return p.free(ref)
}

// Resize moves ref's payload into a newly claimed block of newSize bytes, copying the
// first min(old, newSize) bytes and freeing the old block. A NilRef behaves exactly
// like Alloc(newSize).
//
// If no block can be claimed, Resize returns NilRef and the allocation error, and the
// original block stays allocated with its contents intact. The whole operation runs
// under one lock acquisition, so no other goroutine observes the new block without
// the old one having been freed.
func (p *Pool) Resize(ref Ref, newSize int) (Ref, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.data == nil {
		return NilRef, ErrClosed
	}
	if ref == NilRef {
		return p.alloc(newSize)
	}
	return p.resize(ref, newSize)
}

// Bytes returns the live payload of ref. The slice capacity is clamped to the payload
// length so appends never reach the following header.
func (p *Pool) Bytes(ref Ref) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.data == nil {
		return nil, ErrClosed
	}
	return p.payload(ref)
}

// Verify validates that the ledger tiles the pool. See verify.Ledger.
func (p *Pool) Verify() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.data == nil {
		return ErrClosed
	}
	return verify.Ledger(p.data)
}
