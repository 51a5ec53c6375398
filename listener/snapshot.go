package listener

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Snapshot is the immutable list of listeners taken at the start of one
// dispatch. It is safe to hand to another goroutine.
type Snapshot[F any] struct {
	handles []Handle[F]
	opts    Options
}

func (s Snapshot[F]) Len() int {
	return len(s.handles)
}

// Each invokes every listener of the snapshot in order on the calling
// goroutine.
func (s Snapshot[F]) Each(call func(fn F)) {
	for _, h := range s.handles {
		call(h.fn)
	}
}

// FanOut starts every listener on its own goroutine, in order, and
// returns without waiting for them. A failing or panicking listener never
// stops its siblings; all failures are reported together by the
// Completion once the last listener has returned.
func (s Snapshot[F]) FanOut(call func(fn F) error) *Completion {
	c := newCompletion()
	if len(s.handles) == 0 {
		c.finish(nil)
		return c
	}

	var g errgroup.Group
	errs := make([]error, len(s.handles))
	start := func() {
		for i, h := range s.handles {
			g.Go(func() error {
				errs[i] = safeCall(call, h.fn)
				return nil
			})
		}
	}
	wait := func() {
		_ = g.Wait()
		c.finish(s.collect(errs))
	}

	if s.opts.limit > 0 {
		// g.Go blocks once the limit is reached.
		g.SetLimit(s.opts.limit)
		go func() {
			start()
			wait()
		}()
	} else {
		start()
		go wait()
	}
	return c
}

func (s Snapshot[F]) collect(errs []error) error {
	var failures []*ListenerError
	for i, err := range errs {
		if err == nil {
			continue
		}
		h := s.handles[i]
		s.opts.log().Debug("async listener failed",
			slog.String("listener", h.String()),
			slog.Int("index", i),
			slog.Any("error", err))
		failures = append(failures, &ListenerError{Index: i, Key: h.key, Err: err})
	}
	if len(failures) == 0 {
		return nil
	}
	return &FanOutError{Failures: failures}
}

func safeCall[F any](call func(fn F) error, fn F) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Wrapf(ErrListenerPanic, "%v", r)
		}
	}()
	return call(fn)
}

// Completion is the combined result of an async dispatch.
type Completion struct {
	done chan struct{}
	err  error
}

func newCompletion() *Completion {
	return &Completion{done: make(chan struct{})}
}

func (c *Completion) finish(err error) {
	c.err = err
	close(c.done)
}

// Done is closed once every listener of the dispatch has returned.
func (c *Completion) Done() <-chan struct{} {
	return c.done
}

// Wait blocks until every listener has returned. The error is nil or a
// *FanOutError.
func (c *Completion) Wait() error {
	<-c.done
	return c.err
}

// WaitContext is Wait bounded by ctx. Giving up does not cancel the
// listeners; they keep running until they return on their own.
func (c *Completion) WaitContext(ctx context.Context) error {
	select {
	case <-c.done:
		return c.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Err returns the result if the dispatch has finished, nil otherwise.
func (c *Completion) Err() error {
	select {
	case <-c.done:
		return c.err
	default:
		return nil
	}
}
