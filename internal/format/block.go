package format

import "fmt"

// NextBlock decodes the claimed block at off and returns its header plus the offset
// of the following block. It returns ok = false when off starts the unclaimed tail,
// either because the header has a zero Extent or because fewer than HeaderSize bytes
// remain.
func NextBlock(b []byte, off int) (h Header, next int, ok bool, err error) {
	if off < 0 || off > len(b) {
		return Header{}, 0, false, fmt.Errorf("block at %d: %w", off, ErrTruncated)
	}
	if !Fits(len(b), off) {
		return Header{}, off, false, nil
	}
	h = ReadHeader(b, off)
	if h.Tail() {
		return h, off, false, nil
	}
	next = off + h.Span()
	if next > len(b) {
		return h, 0, false, fmt.Errorf("block at %d extent %d: %w", off, h.Extent, ErrOverrun)
	}
	return h, next, true, nil
}
