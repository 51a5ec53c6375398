package listener

import "context"

// AsyncEvent0 .. AsyncEvent5 are listener sets whose listeners run
// concurrently. InvokeAsync starts every listener and returns a
// Completion that resolves when all of them have returned.
type AsyncEvent0 struct {
	Set[func(context.Context) error]
}

func NewAsyncEvent0(opt ...Option) *AsyncEvent0 {
	e := &AsyncEvent0{}
	e.init(opt...)
	return e
}

func (e *AsyncEvent0) On(fn func(context.Context) error) Handle[func(context.Context) error] {
	h := Func(fn)
	e.Add(h)
	return h
}

func (e *AsyncEvent0) InvokeAsync(ctx context.Context) *Completion {
	return e.DispatchAsync(func(fn func(context.Context) error) error {
		return fn(ctx)
	})
}

type AsyncEvent1[T0 any] struct {
	Set[func(context.Context, T0) error]
}

func NewAsyncEvent1[T0 any](opt ...Option) *AsyncEvent1[T0] {
	e := &AsyncEvent1[T0]{}
	e.init(opt...)
	return e
}

func (e *AsyncEvent1[T0]) On(fn func(context.Context, T0) error) Handle[func(context.Context, T0) error] {
	h := Func(fn)
	e.Add(h)
	return h
}

func (e *AsyncEvent1[T0]) InvokeAsync(ctx context.Context, a0 T0) *Completion {
	return e.DispatchAsync(func(fn func(context.Context, T0) error) error {
		return fn(ctx, a0)
	})
}

type AsyncEvent2[T0, T1 any] struct {
	Set[func(context.Context, T0, T1) error]
}

func NewAsyncEvent2[T0, T1 any](opt ...Option) *AsyncEvent2[T0, T1] {
	e := &AsyncEvent2[T0, T1]{}
	e.init(opt...)
	return e
}

func (e *AsyncEvent2[T0, T1]) On(fn func(context.Context, T0, T1) error) Handle[func(context.Context, T0, T1) error] {
	h := Func(fn)
	e.Add(h)
	return h
}

func (e *AsyncEvent2[T0, T1]) InvokeAsync(ctx context.Context, a0 T0, a1 T1) *Completion {
	return e.DispatchAsync(func(fn func(context.Context, T0, T1) error) error {
		return fn(ctx, a0, a1)
	})
}

type AsyncEvent3[T0, T1, T2 any] struct {
	Set[func(context.Context, T0, T1, T2) error]
}

func NewAsyncEvent3[T0, T1, T2 any](opt ...Option) *AsyncEvent3[T0, T1, T2] {
	e := &AsyncEvent3[T0, T1, T2]{}
	e.init(opt...)
	return e
}

func (e *AsyncEvent3[T0, T1, T2]) On(fn func(context.Context, T0, T1, T2) error) Handle[func(context.Context, T0, T1, T2) error] {
	h := Func(fn)
	e.Add(h)
	return h
}

func (e *AsyncEvent3[T0, T1, T2]) InvokeAsync(ctx context.Context, a0 T0, a1 T1, a2 T2) *Completion {
	return e.DispatchAsync(func(fn func(context.Context, T0, T1, T2) error) error {
		return fn(ctx, a0, a1, a2)
	})
}

type AsyncEvent4[T0, T1, T2, T3 any] struct {
	Set[func(context.Context, T0, T1, T2, T3) error]
}

func NewAsyncEvent4[T0, T1, T2, T3 any](opt ...Option) *AsyncEvent4[T0, T1, T2, T3] {
	e := &AsyncEvent4[T0, T1, T2, T3]{}
	e.init(opt...)
	return e
}

func (e *AsyncEvent4[T0, T1, T2, T3]) On(fn func(context.Context, T0, T1, T2, T3) error) Handle[func(context.Context, T0, T1, T2, T3) error] {
	h := Func(fn)
	e.Add(h)
	return h
}

func (e *AsyncEvent4[T0, T1, T2, T3]) InvokeAsync(ctx context.Context, a0 T0, a1 T1, a2 T2, a3 T3) *Completion {
	return e.DispatchAsync(func(fn func(context.Context, T0, T1, T2, T3) error) error {
		return fn(ctx, a0, a1, a2, a3)
	})
}

type AsyncEvent5[T0, T1, T2, T3, T4 any] struct {
	Set[func(context.Context, T0, T1, T2, T3, T4) error]
}

func NewAsyncEvent5[T0, T1, T2, T3, T4 any](opt ...Option) *AsyncEvent5[T0, T1, T2, T3, T4] {
	e := &AsyncEvent5[T0, T1, T2, T3, T4]{}
	e.init(opt...)
	return e
}

func (e *AsyncEvent5[T0, T1, T2, T3, T4]) On(fn func(context.Context, T0, T1, T2, T3, T4) error) Handle[func(context.Context, T0, T1, T2, T3, T4) error] {
	h := Func(fn)
	e.Add(h)
	return h
}

func (e *AsyncEvent5[T0, T1, T2, T3, T4]) InvokeAsync(ctx context.Context, a0 T0, a1 T1, a2 T2, a3 T3, a4 T4) *Completion {
	return e.DispatchAsync(func(fn func(context.Context, T0, T1, T2, T3, T4) error) error {
		return fn(ctx, a0, a1, a2, a3, a4)
	})
}
