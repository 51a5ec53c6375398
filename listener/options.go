package listener

import (
	"fmt"
	"log/slog"
)

// Mode selects how a Set behaves when it is mutated while a dispatch is
// running.
type Mode int8

const (
	// Snapshot dispatches over a point-in-time copy. Mutations made by
	// listeners become visible from the next dispatch. This is the zero
	// value.
	Snapshot Mode = iota
	// Direct iterates the live collection. Listeners must not mutate the
	// set while it is being dispatched; if one does, the dispatch panics
	// with ErrModifiedDuringDispatch.
	Direct
	// Deferred stages added listeners and merges them into the committed
	// collection at the start of the next dispatch, then dispatches over a
	// snapshot.
	Deferred
)

func (m Mode) String() string {
	switch m {
	case Snapshot:
		return "snapshot"
	case Direct:
		return "direct"
	case Deferred:
		return "deferred"
	}
	return fmt.Sprintf("mode(%d)", int8(m))
}

type Option func(opts *Options)

type Options struct {
	mode   Mode
	limit  int
	logger *slog.Logger
}

func buildOptions(opts ...Option) Options {
	rlt := Options{}
	for _, opt := range opts {
		opt(&rlt)
	}
	fillDefaults(&rlt)
	return rlt
}

func fillDefaults(opts *Options) {
	if opts.logger == nil {
		opts.logger = slog.Default()
	}
	if opts.limit < 0 {
		opts.limit = 0
	}
}

func (o Options) log() *slog.Logger {
	if o.logger == nil {
		return slog.Default()
	}
	return o.logger
}

func WithMode(mode Mode) Option {
	return func(opts *Options) {
		opts.mode = mode
	}
}

// WithConcurrencyLimit bounds how many async listeners of one dispatch run
// at the same time. Zero means unbounded.
func WithConcurrencyLimit(n int) Option {
	return func(opts *Options) {
		opts.limit = n
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(opts *Options) {
		opts.logger = logger
	}
}
