// Package check tracks live payload ranges and reports overlaps. It backs the stress
// command and the concurrency tests, which record every successful allocation here
// before using it and remove it before freeing.
package check

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/btree"
)

// ErrOverlap indicates a range intersecting one that is already live.
var ErrOverlap = errors.New("check: ranges overlap")

// Range is a half-open byte range [Off, Off+Len).
type Range struct {
	Off int
	Len int
}

// End returns the first offset past the range.
func (r Range) End() int { return r.Off + r.Len }

func (r Range) overlaps(o Range) bool {
	return r.Off < o.End() && o.Off < r.End()
}

// Tracker is an ordered set of non-overlapping live ranges. It is safe for
// concurrent use.
type Tracker struct {
	mu    sync.Mutex
	tree  *btree.BTreeG[Range]
	bytes int
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		tree: btree.NewG(32, func(a, b Range) bool { return a.Off < b.Off }),
	}
}

// Add records r as live. It fails with ErrOverlap, leaving the tracker unchanged,
// when r intersects its predecessor or successor.
func (t *Tracker) Add(r Range) error {
	if r.Len <= 0 {
		return fmt.Errorf("check: empty range at %d", r.Off)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	var clash *Range
	t.tree.DescendLessOrEqual(r, func(prev Range) bool {
		if prev.overlaps(r) {
			clash = &prev
		}
		return false
	})
	if clash == nil {
		t.tree.AscendGreaterOrEqual(r, func(next Range) bool {
			if next.overlaps(r) {
				clash = &next
			}
			return false
		})
	}
	if clash != nil {
		return fmt.Errorf("%w: [%d,%d) and [%d,%d)", ErrOverlap, r.Off, r.End(), clash.Off, clash.End())
	}

	t.tree.ReplaceOrInsert(r)
	t.bytes += r.Len
	return nil
}

// Remove forgets the range starting at off. It reports whether one was present.
func (t *Tracker) Remove(off int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	r, ok := t.tree.Delete(Range{Off: off})
	if ok {
		t.bytes -= r.Len
	}
	return ok
}

// Live returns the number of live ranges and their total length.
func (t *Tracker) Live() (count, bytes int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tree.Len(), t.bytes
}

// Ranges returns the live ranges in ascending order.
func (t *Tracker) Ranges() []Range {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Range, 0, t.tree.Len())
	t.tree.Ascend(func(r Range) bool {
		out = append(out, r)
		return true
	})
	return out
}
