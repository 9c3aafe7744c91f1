// Package list implements a thread-safe singly linked list of uint16 values whose
// nodes are allocated from a pool.Pool instead of the Go heap.
//
// Each node occupies one NodeSize payload:
//
//	Offset  Size  Description
//	0x00    2     Value
//	0x02    2     Reserved (zero)
//	0x04    4     Next node ref, 0 = end of list
//
// Nodes are addressed by their pool.Ref. A Ref returned by Insert or Search stays valid
// until the node is deleted or the list is cleaned up.
//
// Example:
//
//	p, _ := pool.New(1024, nil)
//	defer p.Close()
//
//	l := list.New(p, nil)
//	l.Insert(10)
//	l.Insert(20)
//	fmt.Println(l) // [10, 20]
//	l.Cleanup()
package list
