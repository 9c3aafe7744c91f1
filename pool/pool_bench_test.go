package pool

import (
	"testing"
)

// BenchmarkNew measures region reservation and release.
func BenchmarkNew(b *testing.B) {
	b.ReportAllocs()

	for n := 0; n < b.N; n++ {
		p, err := New(64*1024, nil)
		if err != nil {
			b.Fatal(err)
		}
		p.Close()
	}
}

// BenchmarkAllocFree measures the steady state where the first block is reused.
func BenchmarkAllocFree(b *testing.B) {
	p := newTestPool(b, 64*1024)

	b.ResetTimer()
	b.ReportAllocs()

	for n := 0; n < b.N; n++ {
		ref, err := p.Alloc(64)
		if err != nil {
			b.Fatal(err)
		}
		if err := p.Free(ref); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkAlloc_Fragmented measures a first-fit scan past many undersized holes.
func BenchmarkAlloc_Fragmented(b *testing.B) {
	p := newTestPool(b, 1<<20)

	// 1000 free 16-byte holes in front of the tail
	var refs []Ref
	for n := 0; n < 1000; n++ {
		ref, err := p.Alloc(16)
		if err != nil {
			b.Fatal(err)
		}
		refs = append(refs, ref)
	}
	for _, ref := range refs {
		_ = p.Free(ref)
	}

	b.ResetTimer()
	b.ReportAllocs()

	for n := 0; n < b.N; n++ {
		ref, err := p.Alloc(64)
		if err != nil {
			b.Fatal(err)
		}
		if err := p.Free(ref); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkResize measures a grow followed by a shrink back to the original size.
func BenchmarkResize(b *testing.B) {
	p := newTestPool(b, 64*1024)
	ref, err := p.Alloc(32)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		size := 32
		if i%2 == 0 {
			size = 128
		}
		ref, err = p.Resize(ref, size)
		if err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkHeapAlloc is the Go heap baseline for BenchmarkAllocFree.
func BenchmarkHeapAlloc(b *testing.B) {
	b.ReportAllocs()

	var sink []byte
	for n := 0; n < b.N; n++ {
		sink = make([]byte, 64)
	}
	_ = sink
}
