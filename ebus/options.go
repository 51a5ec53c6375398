package ebus

import (
	"log/slog"

	"github.com/zhenyu888/ddd-event/listener"
)

type Option func(opts *Options)

type Options struct {
	dispatcher Dispatcher
	mode       listener.Mode
	limit      int
	logger     *slog.Logger
}

func buildOptions(opts ...Option) *Options {
	rlt := &Options{}
	for _, opt := range opts {
		opt(rlt)
	}
	fillDefaults(rlt)
	return rlt
}

func fillDefaults(opts *Options) {
	if opts.logger == nil {
		opts.logger = slog.Default()
	}
	if opts.dispatcher == nil {
		opts.dispatcher = NewImmediateDispatcher()
	}
}

func (o *Options) listenerOptions() []listener.Option {
	return []listener.Option{
		listener.WithMode(o.mode),
		listener.WithConcurrencyLimit(o.limit),
		listener.WithLogger(o.logger),
	}
}

func WithDispatcher(dispatcher Dispatcher) Option {
	return func(opts *Options) {
		opts.dispatcher = dispatcher
	}
}

// WithMode sets the listener mode of every topic. Direct is rejected: the
// bus always delivers from a snapshot.
func WithMode(mode listener.Mode) Option {
	return func(opts *Options) {
		if mode != listener.Direct {
			opts.mode = mode
		}
	}
}

// WithAsyncLimit bounds how many async subscribers of one post run at once.
func WithAsyncLimit(n int) Option {
	return func(opts *Options) {
		opts.limit = n
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(opts *Options) {
		opts.logger = logger
	}
}
