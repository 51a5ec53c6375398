package ebus

import (
	"context"
	"log/slog"
)

// Dispatcher delivers one posted event to the subscribers of its topic.
// Sync subscribers always run on the posting goroutine, in registration
// order; dispatchers differ in how they treat async ones.
type Dispatcher interface {
	Dispatch(ctx context.Context, event interface{}, subscribers Subscribers) error
}

type immediateDispatcher struct{}

// NewImmediateDispatcher waits for async subscribers and returns their
// combined failure, a *listener.FanOutError.
func NewImmediateDispatcher() Dispatcher {
	return &immediateDispatcher{}
}

func (i *immediateDispatcher) Dispatch(ctx context.Context, event interface{}, subscribers Subscribers) error {
	dispatchSync(ctx, event, subscribers)
	return subscribers.Async.FanOut(func(fn AsyncFunc) error {
		return fn(ctx, event)
	}).Wait()
}

type detachedDispatcher struct {
	logger *slog.Logger
}

// NewDetachedDispatcher returns as soon as sync subscribers are done.
// Async subscribers finish in the background and their failures are only
// logged.
func NewDetachedDispatcher(logger *slog.Logger) Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &detachedDispatcher{logger: logger}
}

func (d *detachedDispatcher) Dispatch(ctx context.Context, event interface{}, subscribers Subscribers) error {
	dispatchSync(ctx, event, subscribers)
	if subscribers.Async.Len() == 0 {
		return nil
	}
	// The poster may cancel ctx as soon as Post returns.
	bg := context.WithoutCancel(ctx)
	completion := subscribers.Async.FanOut(func(fn AsyncFunc) error {
		return fn(bg, event)
	})
	go func() {
		if err := completion.Wait(); err != nil {
			d.logger.Error("async subscribers failed",
				slog.String("event", eventName(event)),
				slog.Any("error", err))
		}
	}()
	return nil
}

func dispatchSync(ctx context.Context, event interface{}, subscribers Subscribers) {
	subscribers.Sync.Each(func(fn SyncFunc) {
		fn(ctx, event)
	})
}
