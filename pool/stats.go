package pool

import "github.com/joshuapare/poolkit/internal/format"

// counters holds call statistics, updated under the pool lock.
type counters struct {
	AllocCalls     int
	AllocFailures  int
	FreeCalls      int
	ResizeCalls    int
	ResizeFailures int
	BytesAllocated int64
	BytesFreed     int64
}

// Stats is a snapshot of call counters and ledger occupancy.
type Stats struct {
	Capacity int `json:"capacity"`

	AllocCalls     int   `json:"alloc_calls"`
	AllocFailures  int   `json:"alloc_failures"` // includes failed inner allocations of Resize
	FreeCalls      int   `json:"free_calls"`
	ResizeCalls    int   `json:"resize_calls"`
	ResizeFailures int   `json:"resize_failures"`
	BytesAllocated int64 `json:"bytes_allocated"`
	BytesFreed     int64 `json:"bytes_freed"`

	Blocks     int `json:"blocks"` // claimed blocks, live or free
	LiveBlocks int `json:"live_blocks"`
	FreeBlocks int `json:"free_blocks"`
	LiveBytes  int `json:"live_bytes"`  // sum of live payload lengths
	FreeBytes  int `json:"free_bytes"`  // sum of free block extents
	SlackBytes int `json:"slack_bytes"` // extent - length over live blocks
	TailOffset int `json:"tail_offset"` // header offset of the unclaimed tail
	TailBytes  int `json:"tail_bytes"`  // capacity - TailOffset

	// LargestFree is the largest size a single Alloc would currently satisfy.
	LargestFree int `json:"largest_free"`
}

// Utilization returns live payload bytes as a percentage of capacity.
func (s Stats) Utilization() float64 {
	if s.Capacity == 0 {
		return 0
	}
	return float64(s.LiveBytes) / float64(s.Capacity) * 100
}

// Stats walks the ledger and returns a snapshot. A closed pool reports zero occupancy
// with the counters accumulated before Close.
func (p *Pool) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := Stats{
		Capacity:       len(p.data),
		AllocCalls:     p.stats.AllocCalls,
		AllocFailures:  p.stats.AllocFailures,
		FreeCalls:      p.stats.FreeCalls,
		ResizeCalls:    p.stats.ResizeCalls,
		ResizeFailures: p.stats.ResizeFailures,
		BytesAllocated: p.stats.BytesAllocated,
		BytesFreed:     p.stats.BytesFreed,
	}
	if p.data == nil {
		return s
	}

	tail, _ := p.walk(func(b Block) bool {
		s.Blocks++
		if b.Free() {
			s.FreeBlocks++
			s.FreeBytes += int(b.Extent)
			s.LargestFree = max(s.LargestFree, int(b.Extent))
			return true
		}
		s.LiveBlocks++
		s.LiveBytes += int(b.Length)
		s.SlackBytes += int(b.Extent) - int(b.Length)
		return true
	})

	s.TailOffset = tail
	s.TailBytes = len(p.data) - tail
	s.LargestFree = max(s.LargestFree, s.TailBytes-format.HeaderSize)
	return s
}
