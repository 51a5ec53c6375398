package listener

// Event0 .. Event5 are listener sets with synchronous void signatures of
// zero to five parameters. Their zero values are usable and dispatch in
// Snapshot mode; use the constructors to pick another Mode.
type Event0 struct {
	Set[func()]
}

func NewEvent0(opt ...Option) *Event0 {
	e := &Event0{}
	e.init(opt...)
	return e
}

// On registers fn and returns its handle for a later Remove.
func (e *Event0) On(fn func()) Handle[func()] {
	h := Func(fn)
	e.Add(h)
	return h
}

func (e *Event0) Invoke() {
	e.Dispatch(func(fn func()) {
		fn()
	})
}

type Event1[T0 any] struct {
	Set[func(T0)]
}

func NewEvent1[T0 any](opt ...Option) *Event1[T0] {
	e := &Event1[T0]{}
	e.init(opt...)
	return e
}

func (e *Event1[T0]) On(fn func(T0)) Handle[func(T0)] {
	h := Func(fn)
	e.Add(h)
	return h
}

func (e *Event1[T0]) Invoke(a0 T0) {
	e.Dispatch(func(fn func(T0)) {
		fn(a0)
	})
}

type Event2[T0, T1 any] struct {
	Set[func(T0, T1)]
}

func NewEvent2[T0, T1 any](opt ...Option) *Event2[T0, T1] {
	e := &Event2[T0, T1]{}
	e.init(opt...)
	return e
}

func (e *Event2[T0, T1]) On(fn func(T0, T1)) Handle[func(T0, T1)] {
	h := Func(fn)
	e.Add(h)
	return h
}

func (e *Event2[T0, T1]) Invoke(a0 T0, a1 T1) {
	e.Dispatch(func(fn func(T0, T1)) {
		fn(a0, a1)
	})
}

type Event3[T0, T1, T2 any] struct {
	Set[func(T0, T1, T2)]
}

func NewEvent3[T0, T1, T2 any](opt ...Option) *Event3[T0, T1, T2] {
	e := &Event3[T0, T1, T2]{}
	e.init(opt...)
	return e
}

func (e *Event3[T0, T1, T2]) On(fn func(T0, T1, T2)) Handle[func(T0, T1, T2)] {
	h := Func(fn)
	e.Add(h)
	return h
}

func (e *Event3[T0, T1, T2]) Invoke(a0 T0, a1 T1, a2 T2) {
	e.Dispatch(func(fn func(T0, T1, T2)) {
		fn(a0, a1, a2)
	})
}

type Event4[T0, T1, T2, T3 any] struct {
	Set[func(T0, T1, T2, T3)]
}

func NewEvent4[T0, T1, T2, T3 any](opt ...Option) *Event4[T0, T1, T2, T3] {
	e := &Event4[T0, T1, T2, T3]{}
	e.init(opt...)
	return e
}

func (e *Event4[T0, T1, T2, T3]) On(fn func(T0, T1, T2, T3)) Handle[func(T0, T1, T2, T3)] {
	h := Func(fn)
	e.Add(h)
	return h
}

func (e *Event4[T0, T1, T2, T3]) Invoke(a0 T0, a1 T1, a2 T2, a3 T3) {
	e.Dispatch(func(fn func(T0, T1, T2, T3)) {
		fn(a0, a1, a2, a3)
	})
}

type Event5[T0, T1, T2, T3, T4 any] struct {
	Set[func(T0, T1, T2, T3, T4)]
}

func NewEvent5[T0, T1, T2, T3, T4 any](opt ...Option) *Event5[T0, T1, T2, T3, T4] {
	e := &Event5[T0, T1, T2, T3, T4]{}
	e.init(opt...)
	return e
}

func (e *Event5[T0, T1, T2, T3, T4]) On(fn func(T0, T1, T2, T3, T4)) Handle[func(T0, T1, T2, T3, T4)] {
	h := Func(fn)
	e.Add(h)
	return h
}

func (e *Event5[T0, T1, T2, T3, T4]) Invoke(a0 T0, a1 T1, a2 T2, a3 T3, a4 T4) {
	e.Dispatch(func(fn func(T0, T1, T2, T3, T4)) {
		fn(a0, a1, a2, a3, a4)
	})
}
