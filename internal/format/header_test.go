package format

import (
	"errors"
	"testing"
)

func TestHeaderRoundTrip(t *testing.T) {
	b := make([]byte, 32)
	PutHeader(b, 8, Header{Length: 12, Extent: 16})

	h := ReadHeader(b, 8)
	if h.Length != 12 || h.Extent != 16 {
		t.Fatalf("ReadHeader = %+v, want {12 16}", h)
	}
	if h.Free() || h.Tail() {
		t.Fatalf("live header reported free=%v tail=%v", h.Free(), h.Tail())
	}
	if h.Span() != 24 {
		t.Fatalf("Span = %d, want 24", h.Span())
	}

	PutLength(b, 8, 0)
	h = ReadHeader(b, 8)
	if !h.Free() || h.Extent != 16 {
		t.Fatalf("after PutLength(0) got %+v, want free with extent 16", h)
	}
}

func TestFits(t *testing.T) {
	if !Fits(16, 8) {
		t.Fatalf("header at 8 should fit in 16 bytes")
	}
	if Fits(16, 9) {
		t.Fatalf("header at 9 should not fit in 16 bytes")
	}
	if Fits(16, -1) {
		t.Fatalf("negative offset should not fit")
	}
	if Fits(4, 0) {
		t.Fatalf("header should not fit in 4 bytes")
	}
}

func TestNextBlock(t *testing.T) {
	b := make([]byte, 40)
	PutHeader(b, 0, Header{Length: 4, Extent: 8})

	h, next, ok, err := NextBlock(b, 0)
	if err != nil || !ok {
		t.Fatalf("NextBlock(0) = ok %v err %v", ok, err)
	}
	if h.Length != 4 || next != 16 {
		t.Fatalf("NextBlock(0) = %+v next %d, want length 4 next 16", h, next)
	}

	// zeroed header starts the tail
	_, next, ok, err = NextBlock(b, 16)
	if err != nil || ok || next != 16 {
		t.Fatalf("NextBlock(16) = next %d ok %v err %v, want tail at 16", next, ok, err)
	}

	// fewer than HeaderSize bytes left
	_, _, ok, err = NextBlock(b, 36)
	if err != nil || ok {
		t.Fatalf("NextBlock(36) = ok %v err %v, want short tail", ok, err)
	}

	PutHeader(b, 16, Header{Length: 1, Extent: 64})
	_, _, _, err = NextBlock(b, 16)
	if !errors.Is(err, ErrOverrun) {
		t.Fatalf("NextBlock overrun err = %v, want ErrOverrun", err)
	}

	_, _, _, err = NextBlock(b, 41)
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("NextBlock past end err = %v, want ErrTruncated", err)
	}
}
