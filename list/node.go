package list

import (
	"fmt"

	"github.com/joshuapare/poolkit/internal/format"
	"github.com/joshuapare/poolkit/pool"
)

// NodeSize is the payload size of one list node.
const NodeSize = 8

const (
	valueOffset = 0x00
	nextOffset  = 0x04
)

// node is a decoded view of one list node.
type node struct {
	ref   pool.Ref
	value uint16
	next  pool.Ref
}

func (l *List) read(ref pool.Ref) (node, error) {
	b, err := l.a.Bytes(ref)
	if err != nil {
		return node{}, fmt.Errorf("list: node %d: %w", ref, err)
	}
	if len(b) < NodeSize {
		return node{}, fmt.Errorf("list: node %d: payload is %d bytes, want %d", ref, len(b), NodeSize)
	}
	return node{
		ref:   ref,
		value: format.ReadU16(b, valueOffset),
		next:  pool.Ref(format.ReadU32(b, nextOffset)),
	}, nil
}

func (l *List) write(n node) error {
	b, err := l.a.Bytes(n.ref)
	if err != nil {
		return fmt.Errorf("list: node %d: %w", n.ref, err)
	}
	format.PutU16(b, valueOffset, n.value)
	format.PutU16(b, valueOffset+2, 0)
	format.PutU32(b, nextOffset, uint32(n.next))
	return nil
}

func (l *List) setNext(ref, next pool.Ref) error {
	b, err := l.a.Bytes(ref)
	if err != nil {
		return fmt.Errorf("list: node %d: %w", ref, err)
	}
	format.PutU32(b, nextOffset, uint32(next))
	return nil
}

// newNode allocates and writes a node. The caller links it.
func (l *List) newNode(v uint16, next pool.Ref) (pool.Ref, error) {
	ref, err := l.a.Alloc(NodeSize)
	if err != nil {
		l.log.Warn("node allocation failed", "value", v, "error", err)
		return pool.NilRef, fmt.Errorf("list: insert %d: %w", v, err)
	}
	if err := l.write(node{ref: ref, value: v, next: next}); err != nil {
		_ = l.a.Free(ref)
		return pool.NilRef, err
	}
	return ref, nil
}
