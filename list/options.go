package list

import (
	"io"
	"log/slog"
)

// Options configures a list.
type Options struct {
	// Logger receives a warning whenever a node cannot be allocated.
	// Default: discards output.
	Logger *slog.Logger
}

func (o *Options) logger() *slog.Logger {
	if o == nil || o.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o.Logger
}
