package pool

import "github.com/joshuapare/poolkit/internal/format"

// Walk calls fn for every claimed block in ascending address order until fn returns
// false. The unclaimed tail is not reported. fn runs with the pool locked and must
// not call back into the pool.
func (p *Pool) Walk(fn func(Block) bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.data == nil {
		return ErrClosed
	}
	_, err := p.walk(fn)
	return err
}

// walk returns the header offset of the unclaimed tail, or where the walk stopped.
func (p *Pool) walk(fn func(Block) bool) (int, error) {
	off := 0
	for {
		h, next, ok, err := format.NextBlock(p.data, off)
		if err != nil {
			return off, err
		}
		if !ok {
			return off, nil
		}
		b := Block{
			Ref:    Ref(off + format.HeaderSize),
			Offset: off,
			Length: h.Length,
			Extent: h.Extent,
		}
		if !fn(b) {
			return off, nil
		}
		off = next
	}
}
