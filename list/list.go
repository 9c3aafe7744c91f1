package list

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/joshuapare/poolkit/pool"
)

// Allocator is the subset of *pool.Pool the list needs.
type Allocator interface {
	Alloc(size int) (pool.Ref, error)
	Free(ref pool.Ref) error
	Bytes(ref pool.Ref) ([]byte, error)
}

// List is a singly linked list stored in an Allocator. The zero value is not usable;
// call New.
//
// All methods are safe for concurrent use. The list lock is always acquired before
// any lock held by the allocator.
type List struct {
	mu   sync.RWMutex
	a    Allocator
	head pool.Ref
	log  *slog.Logger
}

// New returns an empty list allocating from a. Pass nil opts for defaults.
func New(a Allocator, opts *Options) *List {
	return &List{a: a, log: opts.logger()}
}

// Head returns the first node, or NilRef for an empty list.
func (l *List) Head() pool.Ref {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.head
}

// Insert appends v at the tail and returns the new node.
func (l *List) Insert(v uint16) (pool.Ref, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ref, err := l.newNode(v, pool.NilRef)
	if err != nil {
		return pool.NilRef, err
	}
	if l.head == pool.NilRef {
		l.head = ref
		return ref, nil
	}

	tail := l.head
	for {
		n, err := l.read(tail)
		if err != nil {
			_ = l.a.Free(ref)
			return pool.NilRef, err
		}
		if n.next == pool.NilRef {
			break
		}
		tail = n.next
	}
	if err := l.setNext(tail, ref); err != nil {
		_ = l.a.Free(ref)
		return pool.NilRef, err
	}
	return ref, nil
}

// InsertAfter links a new node holding v directly after prev. prev must be a live
// node of this list.
func (l *List) InsertAfter(prev pool.Ref, v uint16) (pool.Ref, error) {
	if prev == pool.NilRef {
		return pool.NilRef, ErrNilNode
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	p, err := l.read(prev)
	if err != nil {
		return pool.NilRef, err
	}
	ref, err := l.newNode(v, p.next)
	if err != nil {
		return pool.NilRef, err
	}
	if err := l.setNext(prev, ref); err != nil {
		_ = l.a.Free(ref)
		return pool.NilRef, err
	}
	return ref, nil
}

// InsertBefore links a new node holding v directly before next. When next is the
// head the new node becomes the head. If next is not reachable from the head the new
// node is freed again and ErrNotFound is returned.
func (l *List) InsertBefore(next pool.Ref, v uint16) (pool.Ref, error) {
	if next == pool.NilRef {
		return pool.NilRef, ErrNilNode
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	ref, err := l.newNode(v, next)
	if err != nil {
		return pool.NilRef, err
	}
	if l.head == next {
		l.head = ref
		return ref, nil
	}

	cur := l.head
	for cur != pool.NilRef {
		n, err := l.read(cur)
		if err != nil {
			_ = l.a.Free(ref)
			return pool.NilRef, err
		}
		if n.next == next {
			if err := l.setNext(cur, ref); err != nil {
				_ = l.a.Free(ref)
				return pool.NilRef, err
			}
			return ref, nil
		}
		cur = n.next
	}

	if err := l.a.Free(ref); err != nil {
		return pool.NilRef, fmt.Errorf("list: release unlinked node: %w", err)
	}
	return pool.NilRef, fmt.Errorf("%w: node %d", ErrNotFound, next)
}

// Delete unlinks and frees the first node holding v.
func (l *List) Delete(v uint16) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	prev := pool.NilRef
	cur := l.head
	for cur != pool.NilRef {
		n, err := l.read(cur)
		if err != nil {
			return err
		}
		if n.value != v {
			prev, cur = cur, n.next
			continue
		}

		if prev == pool.NilRef {
			l.head = n.next
		} else if err := l.setNext(prev, n.next); err != nil {
			return err
		}
		if err := l.a.Free(cur); err != nil {
			return fmt.Errorf("list: delete %d: %w", v, err)
		}
		return nil
	}
	return fmt.Errorf("%w: value %d", ErrNotFound, v)
}

// Search returns the first node holding v.
func (l *List) Search(v uint16) (pool.Ref, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var found pool.Ref
	_ = l.each(l.head, func(n node) bool {
		if n.value == v {
			found = n.ref
			return false
		}
		return true
	})
	return found, found != pool.NilRef
}

// Value returns the value stored in ref.
func (l *List) Value(ref pool.Ref) (uint16, error) {
	if ref == pool.NilRef {
		return 0, ErrNilNode
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	n, err := l.read(ref)
	if err != nil {
		return 0, err
	}
	return n.value, nil
}

// Values returns the list contents from head to tail.
func (l *List) Values() ([]uint16, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []uint16
	err := l.each(l.head, func(n node) bool {
		out = append(out, n.value)
		return true
	})
	return out, err
}

// Count returns the number of nodes reachable from the head.
func (l *List) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	count := 0
	_ = l.each(l.head, func(node) bool {
		count++
		return true
	})
	return count
}

// Display writes the list as "[10, 20]".
func (l *List) Display(w io.Writer) error {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.display(w, l.head, pool.NilRef)
}

// DisplayRange writes the values from start through end inclusive. When end is
// NilRef or not reachable from start, it writes through the tail.
func (l *List) DisplayRange(w io.Writer, start, end pool.Ref) error {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.display(w, start, end)
}

func (l *List) String() string {
	var sb strings.Builder
	if err := l.Display(&sb); err != nil {
		return fmt.Sprintf("<list: %v>", err)
	}
	return sb.String()
}

// Cleanup frees every node and leaves the list empty. If a node cannot be read or
// freed, Cleanup stops there and that node becomes the head, so the rest of the
// chain stays reachable for another attempt.
func (l *List) Cleanup() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	freed := 0
	for l.head != pool.NilRef {
		n, err := l.read(l.head)
		if err == nil {
			if ferr := l.a.Free(l.head); ferr != nil {
				err = fmt.Errorf("list: cleanup: %w", ferr)
			}
		}
		if err != nil {
			l.log.Warn("list cleanup stopped", "freed", freed, "head", l.head, "error", err)
			return err
		}
		l.head = n.next
		freed++
	}
	l.log.Debug("list cleanup", "freed", freed)
	return nil
}

func (l *List) display(w io.Writer, start, end pool.Ref) error {
	var sb strings.Builder
	sb.WriteByte('[')
	first := true
	err := l.each(start, func(n node) bool {
		if !first {
			sb.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&sb, "%d", n.value)
		return n.ref != end
	})
	if err != nil {
		return err
	}
	sb.WriteByte(']')
	_, err = io.WriteString(w, sb.String())
	return err
}

// each visits nodes from start until fn returns false or the list ends.
// Caller holds l.mu.
func (l *List) each(start pool.Ref, fn func(node) bool) error {
	for cur := start; cur != pool.NilRef; {
		n, err := l.read(cur)
		if err != nil {
			return err
		}
		if !fn(n) {
			return nil
		}
		cur = n.next
	}
	return nil
}
