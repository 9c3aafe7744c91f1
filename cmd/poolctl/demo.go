package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/poolkit/list"
	"github.com/joshuapare/poolkit/pool"
)

var demoSize int

func init() {
	cmd := newDemoCmd()
	cmd.Flags().IntVar(&demoSize, "size", 1024, "Pool capacity in bytes")
	rootCmd.AddCommand(cmd)
}

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run the linked list demonstration",
		Long: `The demo command initialises a pool, builds a two-node linked list in it,
prints the list, frees every node and shows that the next small allocation
reuses the lowest freed block.

Example:
  poolctl demo
  poolctl demo --size 4096 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo()
		},
	}
}

type demoResult struct {
	Capacity  int      `json:"capacity"`
	Inserted  []uint32 `json:"inserted"`
	List      string   `json:"list"`
	Remaining int      `json:"remaining"`
	ReuseRef  uint32   `json:"reuse_ref"`
}

func runDemo() error {
	p, err := pool.New(demoSize, poolOptions())
	if err != nil {
		return fmt.Errorf("pool init: %w", err)
	}
	defer p.Close()

	printVerbose("Pool initialised: %s bytes\n", formatNumber(int64(p.Cap())))

	l := list.New(p, &list.Options{Logger: logger()})
	res := demoResult{Capacity: p.Cap()}

	for _, v := range []uint16{10, 20} {
		ref, err := l.Insert(v)
		if err != nil {
			return err
		}
		res.Inserted = append(res.Inserted, uint32(ref))
		printVerbose("Inserted %d at ref %d\n", v, ref)
	}
	res.List = l.String()

	if err := l.Cleanup(); err != nil {
		return err
	}
	res.Remaining = l.Count()

	ref, err := p.Alloc(4)
	if err != nil {
		return fmt.Errorf("reallocate: %w", err)
	}
	res.ReuseRef = uint32(ref)
	if err := p.Free(ref); err != nil {
		return err
	}

	if jsonOut {
		return printJSON(res)
	}

	printInfo("List: %s\n", res.List)
	printInfo("Nodes after cleanup: %d\n", res.Remaining)
	printInfo("Reallocated 4 bytes at ref %d (header at %d)\n", res.ReuseRef, pool.HeaderOffset(ref))
	return nil
}
