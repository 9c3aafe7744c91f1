package main

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	cpool "github.com/sourcegraph/conc/pool"
	"github.com/spf13/cobra"
	"github.com/zeebo/xxh3"

	"github.com/joshuapare/poolkit/internal/check"
	"github.com/joshuapare/poolkit/pool"
)

var (
	stressSize     int
	stressWorkers  int
	stressCycles   int
	stressMaxBlock int
	stressSeed     int64
)

func init() {
	cmd := newStressCmd()
	cmd.Flags().IntVar(&stressSize, "size", 1<<20, "Pool capacity in bytes")
	cmd.Flags().IntVar(&stressWorkers, "workers", 8, "Number of concurrent workers")
	cmd.Flags().IntVar(&stressCycles, "cycles", 10000, "Operations per worker")
	cmd.Flags().IntVar(&stressMaxBlock, "max-block", 256, "Largest payload a worker requests")
	cmd.Flags().Int64Var(&stressSeed, "seed", 1, "Workload seed; worker i uses seed+i")
	rootCmd.AddCommand(cmd)
}

func newStressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stress",
		Short: "Churn a pool from concurrent workers and verify the ledger",
		Long: `The stress command runs concurrent workers that allocate, resize and free
blocks in one shared pool. Every payload carries an xxh3 checksum that is
checked before the block is touched again, every live range is tracked for
overlap, and the ledger is verified once all workers are done.

Example:
  poolctl stress
  poolctl stress --size 65536 --workers 16 --cycles 50000 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStress()
		},
	}
}

type stressReport struct {
	Workers  int    `json:"workers"`
	Cycles   int    `json:"cycles"`
	MaxBlock int    `json:"max_block"`
	Seed     int64  `json:"seed"`
	Elapsed  string `json:"elapsed"`

	Allocs    int64 `json:"allocs"`
	Frees     int64 `json:"frees"`
	Resizes   int64 `json:"resizes"`
	Exhausted int64 `json:"exhausted"`

	Stats pool.Stats `json:"stats"`
}

// slot is a block held by one worker together with its payload checksum.
type slot struct {
	ref  pool.Ref
	size int
	sum  uint64
}

type stressRun struct {
	p  *pool.Pool
	tr *check.Tracker

	allocs, frees, resizes, exhausted atomic.Int64
}

func runStress() error {
	if stressWorkers <= 0 || stressCycles < 0 || stressMaxBlock <= 0 {
		return fmt.Errorf("workers and max-block must be positive, cycles non-negative")
	}

	p, err := pool.New(stressSize, poolOptions())
	if err != nil {
		return fmt.Errorf("pool init: %w", err)
	}
	defer p.Close()

	run := &stressRun{p: p, tr: check.NewTracker()}
	printVerbose("Starting %d workers x %s cycles on %s\n",
		stressWorkers, formatNumber(int64(stressCycles)), formatBytes(int64(stressSize)))

	start := time.Now()
	workers := cpool.New().WithErrors().WithMaxGoroutines(stressWorkers)
	for w := 0; w < stressWorkers; w++ {
		w := w
		workers.Go(func() error {
			return run.worker(w, gofakeit.New(stressSeed+int64(w)))
		})
	}
	if err := workers.Wait(); err != nil {
		return err
	}
	elapsed := time.Since(start)

	if err := p.Verify(); err != nil {
		return fmt.Errorf("ledger verification failed: %w", err)
	}

	report := stressReport{
		Workers:   stressWorkers,
		Cycles:    stressCycles,
		MaxBlock:  stressMaxBlock,
		Seed:      stressSeed,
		Elapsed:   elapsed.String(),
		Allocs:    run.allocs.Load(),
		Frees:     run.frees.Load(),
		Resizes:   run.resizes.Load(),
		Exhausted: run.exhausted.Load(),
		Stats:     p.Stats(),
	}
	if err := crossCheck(p, run.tr); err != nil {
		return fmt.Errorf("tracker disagrees with ledger: %w", err)
	}

	if jsonOut {
		return printJSON(report)
	}
	printStressReport(report)
	return nil
}

func (r *stressRun) worker(id int, faker *gofakeit.Faker) error {
	var held []slot

	for i := 0; i < stressCycles; i++ {
		var err error
		switch op := faker.Number(0, 9); {
		case op < 5 || len(held) == 0:
			held, err = r.alloc(faker, held)
		case op < 8:
			held, err = r.free(faker, held)
		default:
			err = r.resize(faker, held)
		}
		if err != nil {
			return fmt.Errorf("worker %d cycle %d: %w", id, i, err)
		}
	}

	// every block left behind must still hold what this worker wrote
	for _, s := range held {
		if err := r.checksum(s); err != nil {
			return fmt.Errorf("worker %d: %w", id, err)
		}
	}
	return nil
}

func (r *stressRun) alloc(faker *gofakeit.Faker, held []slot) ([]slot, error) {
	size := faker.Number(1, stressMaxBlock)
	ref, err := r.p.Alloc(size)
	if errors.Is(err, pool.ErrNoSpace) {
		r.exhausted.Add(1)
		return held, nil
	}
	if err != nil {
		return held, err
	}
	r.allocs.Add(1)

	if err := r.tr.Add(check.Range{Off: int(ref), Len: size}); err != nil {
		return held, err
	}
	sum, err := r.fill(faker, ref, 0)
	if err != nil {
		return held, err
	}
	return append(held, slot{ref, size, sum}), nil
}

func (r *stressRun) free(faker *gofakeit.Faker, held []slot) ([]slot, error) {
	k := faker.Number(0, len(held)-1)
	s := held[k]
	if err := r.checksum(s); err != nil {
		return held, err
	}

	r.tr.Remove(int(s.ref))
	if err := r.p.Free(s.ref); err != nil {
		return held, err
	}
	r.frees.Add(1)

	held[k] = held[len(held)-1]
	return held[:len(held)-1], nil
}

func (r *stressRun) resize(faker *gofakeit.Faker, held []slot) error {
	k := faker.Number(0, len(held)-1)
	s := &held[k]
	if err := r.checksum(*s); err != nil {
		return err
	}

	size := faker.Number(1, stressMaxBlock)
	keep := min(size, s.size)
	old, err := r.p.Bytes(s.ref)
	if err != nil {
		return err
	}
	prefix := xxh3.Hash(old[:keep])

	// the old range leaves the tracker first; the pool may hand the same bytes to
	// another worker as soon as Resize returns
	r.tr.Remove(int(s.ref))
	moved, err := r.p.Resize(s.ref, size)
	if errors.Is(err, pool.ErrNoSpace) {
		r.exhausted.Add(1)
		return r.tr.Add(check.Range{Off: int(s.ref), Len: s.size})
	}
	if err != nil {
		return err
	}
	r.resizes.Add(1)

	if err := r.tr.Add(check.Range{Off: int(moved), Len: size}); err != nil {
		return err
	}
	buf, err := r.p.Bytes(moved)
	if err != nil {
		return err
	}
	if got := xxh3.Hash(buf[:keep]); got != prefix {
		return fmt.Errorf("resize %d -> %d lost payload prefix", s.ref, moved)
	}

	sum, err := r.fill(faker, moved, keep)
	if err != nil {
		return err
	}
	*s = slot{moved, size, sum}
	return nil
}

// fill writes random bytes into ref's payload from offset from on and returns the
// checksum of the whole payload.
func (r *stressRun) fill(faker *gofakeit.Faker, ref pool.Ref, from int) (uint64, error) {
	buf, err := r.p.Bytes(ref)
	if err != nil {
		return 0, err
	}
	for i := from; i < len(buf); i++ {
		buf[i] = faker.Uint8()
	}
	return xxh3.Hash(buf), nil
}

func (r *stressRun) checksum(s slot) error {
	buf, err := r.p.Bytes(s.ref)
	if err != nil {
		return err
	}
	if len(buf) != s.size {
		return fmt.Errorf("block %d: length %d, want %d", s.ref, len(buf), s.size)
	}
	if xxh3.Hash(buf) != s.sum {
		return fmt.Errorf("block %d: payload checksum mismatch", s.ref)
	}
	return nil
}

// crossCheck matches every tracked range against a live ledger block with the same
// ref and length.
func crossCheck(p *pool.Pool, tr *check.Tracker) error {
	live := map[pool.Ref]uint32{}
	err := p.Walk(func(b pool.Block) bool {
		if !b.Free() {
			live[b.Ref] = b.Length
		}
		return true
	})
	if err != nil {
		return err
	}

	ranges := tr.Ranges()
	if len(ranges) != len(live) {
		return fmt.Errorf("%d tracked ranges, %d live blocks", len(ranges), len(live))
	}
	for _, r := range ranges {
		length, ok := live[pool.Ref(r.Off)]
		if !ok {
			return fmt.Errorf("range [%d,%d) is not a live block", r.Off, r.End())
		}
		if int(length) != r.Len {
			return fmt.Errorf("range [%d,%d) has ledger length %d", r.Off, r.End(), length)
		}
	}
	return nil
}

func printStressReport(r stressReport) {
	s := r.Stats
	printInfo("\nStress Run\n")
	printInfo("  Workers: %d, cycles per worker: %s, max block: %s\n",
		r.Workers, formatNumber(int64(r.Cycles)), formatBytes(int64(r.MaxBlock)))
	printInfo("  Seed: %d\n", r.Seed)
	printInfo("  Elapsed: %s\n\n", r.Elapsed)

	printInfo("Operations:\n")
	printInfo("  Allocs: %s\n", formatNumber(r.Allocs))
	printInfo("  Frees: %s\n", formatNumber(r.Frees))
	printInfo("  Resizes: %s\n", formatNumber(r.Resizes))
	printInfo("  Exhausted: %s\n\n", formatNumber(r.Exhausted))

	printInfo("Pool:\n")
	printInfo("  Capacity: %s\n", formatBytes(int64(s.Capacity)))
	printInfo("  Blocks: %s (%s live, %s free)\n",
		formatNumber(int64(s.Blocks)), formatNumber(int64(s.LiveBlocks)), formatNumber(int64(s.FreeBlocks)))
	printInfo("  Live bytes: %s (%.1f%%)\n", formatNumber(int64(s.LiveBytes)), s.Utilization())
	printInfo("  Free bytes: %s, slack: %s\n", formatNumber(int64(s.FreeBytes)), formatNumber(int64(s.SlackBytes)))
	printInfo("  Unclaimed tail: %s at offset %d\n", formatBytes(int64(s.TailBytes)), s.TailOffset)
	printInfo("  Largest free: %s\n", formatBytes(int64(s.LargestFree)))
	printInfo("Ledger verified\n")
}
