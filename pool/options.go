package pool

import (
	"io"
	"log/slog"
	"os"

	"github.com/joshuapare/poolkit/internal/region"
)

// Runtime debug flag for allocation logging - controlled by POOL_LOG_ALLOC env var.
var logAlloc = os.Getenv("POOL_LOG_ALLOC") != ""

// ReserveFunc reserves a zero-filled region of exactly size bytes and returns it with
// a function that releases it.
type ReserveFunc func(size int) ([]byte, func() error, error)

// Options configures a pool.
type Options struct {
	// Logger receives debug records for every alloc, free and resize.
	// Default: discards output, or a stderr text handler when POOL_LOG_ALLOC is set.
	Logger *slog.Logger

	// Reserve obtains the backing region.
	// Default: region.Reserve (anonymous mmap on unix, VirtualAlloc on windows)
	Reserve ReserveFunc
}

// DefaultOptions returns the options used when New is given nil.
func DefaultOptions() *Options {
	return &Options{
		Logger:  DefaultLogger(),
		Reserve: region.Reserve,
	}
}

// DefaultLogger returns the logger used when Options.Logger is nil.
func DefaultLogger() *slog.Logger {
	if logAlloc {
		return DebugLogger(os.Stderr)
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// DebugLogger returns a text logger writing debug-level records to w.
func DebugLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func (o *Options) withDefaults() Options {
	out := *DefaultOptions()
	if o == nil {
		return out
	}
	if o.Logger != nil {
		out.Logger = o.Logger
	}
	if o.Reserve != nil {
		out.Reserve = o.Reserve
	}
	return out
}
