// Package testutil provides fixtures shared by tests outside the pool package.
package testutil

import (
	"bytes"
	"testing"

	"github.com/joshuapare/poolkit/list"
	"github.com/joshuapare/poolkit/pool"
)

// DefaultCapacity is the pool size used by SetupPool.
const DefaultCapacity = 1024

// SetupPool creates a pool of DefaultCapacity bytes.
// Returns the pool and a cleanup function.
//
// Example:
//
//	p, cleanup := testutil.SetupPool(t)
//	defer cleanup()
func SetupPool(t testing.TB) (*pool.Pool, func()) {
	t.Helper()
	return SetupPoolSize(t, DefaultCapacity, nil)
}

// SetupPoolSize creates a pool of capacity bytes with opts (nil for defaults).
// Calls t.Fatal if the pool cannot be created.
func SetupPoolSize(t testing.TB, capacity int, opts *pool.Options) (*pool.Pool, func()) {
	t.Helper()

	p, err := pool.New(capacity, opts)
	if err != nil {
		t.Fatalf("Failed to create pool: %v", err)
	}

	cleanup := func() {
		if err := p.Close(); err != nil {
			t.Errorf("Failed to close pool: %v", err)
		}
	}
	return p, cleanup
}

// SetupPoolWithLog creates a pool whose debug log is written to the returned buffer.
//
// Example:
//
//	p, logs, cleanup := testutil.SetupPoolWithLog(t, 256)
//	defer cleanup()
//	p.Alloc(8)
//	// logs.String() contains "msg=alloc"
func SetupPoolWithLog(t testing.TB, capacity int) (*pool.Pool, *bytes.Buffer, func()) {
	t.Helper()

	var logs bytes.Buffer
	opts := pool.DefaultOptions()
	opts.Logger = pool.DebugLogger(&logs)

	p, cleanup := SetupPoolSize(t, capacity, opts)
	return p, &logs, cleanup
}

// SetupList creates an empty list backed by a fresh pool of capacity bytes.
// Returns the list, its pool, and a cleanup function that empties the list and
// closes the pool.
func SetupList(t testing.TB, capacity int) (*list.List, *pool.Pool, func()) {
	t.Helper()

	p, closePool := SetupPoolSize(t, capacity, nil)
	l := list.New(p, nil)

	cleanup := func() {
		if err := l.Cleanup(); err != nil {
			t.Errorf("Failed to clean up list: %v", err)
		}
		closePool()
	}
	return l, p, cleanup
}
