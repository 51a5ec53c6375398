// Package listener implements typed multicast callbacks: an ordered set of
// listeners with one signature, broadcast to in registration order.
//
// A Set has no internal locking. It belongs to one logical owner; hosts
// that share a set between goroutines must serialise access themselves.
// What happens when a listener mutates the set while it is being
// dispatched is decided by the set's Mode.
package listener

import (
	"log/slog"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// Set is an ordered collection of listeners with signature F. The zero
// value is an empty set in Snapshot mode.
//
// committed is only ever appended to in place; removals build a new
// backing array, so a Snapshot taken earlier keeps seeing its own
// listeners.
type Set[F any] struct {
	opts      Options
	committed []Handle[F]
	pending   []Handle[F]
	version   uint64
}

func New[F any](opt ...Option) *Set[F] {
	s := &Set[F]{}
	s.init(opt...)
	return s
}

func (s *Set[F]) init(opt ...Option) {
	s.opts = buildOptions(opt...)
}

func (s *Set[F]) Mode() Mode {
	return s.opts.mode
}

// Add appends h even if an equal handle is already registered; each copy
// is invoked once per dispatch.
func (s *Set[F]) Add(h Handle[F]) {
	if s.opts.mode == Deferred {
		s.pending = append(s.pending, h)
	} else {
		s.committed = append(s.committed, h)
	}
	s.version++
}

// AddUnique appends h unless an equal handle is registered or staged. It
// reports whether h was added.
func (s *Set[F]) AddUnique(h Handle[F]) bool {
	if s.Contains(h) {
		return false
	}
	s.Add(h)
	return true
}

// Remove drops the first handle equal to h, looking at committed
// listeners before staged ones. It reports whether one was found.
func (s *Set[F]) Remove(h Handle[F]) bool {
	if idx := s.indexOf(s.committed, h); idx >= 0 {
		s.committed = without(s.committed, idx)
		s.version++
		return true
	}
	if idx := s.indexOf(s.pending, h); idx >= 0 {
		s.pending = without(s.pending, idx)
		s.version++
		return true
	}
	return false
}

func (s *Set[F]) RemoveAll() {
	s.committed = nil
	s.pending = nil
	s.version++
}

func (s *Set[F]) Contains(h Handle[F]) bool {
	return s.indexOf(s.committed, h) >= 0 || s.indexOf(s.pending, h) >= 0
}

// Count returns the number of registrations, staged ones included.
func (s *Set[F]) Count() int {
	return len(s.committed) + len(s.pending)
}

func (s *Set[F]) HasListeners() bool {
	return s.Count() > 0
}

// Listeners returns a copy of the registered handles, committed first.
func (s *Set[F]) Listeners() []Handle[F] {
	rlt := make([]Handle[F], 0, s.Count())
	rlt = append(rlt, s.committed...)
	return append(rlt, s.pending...)
}

// Prepare merges staged listeners (Deferred mode) and returns the
// listeners eligible for a dispatch starting now.
func (s *Set[F]) Prepare() Snapshot[F] {
	s.commitPending()
	return Snapshot[F]{
		handles: s.committed[:len(s.committed):len(s.committed)],
		opts:    s.opts,
	}
}

// Dispatch calls call once per eligible listener, in registration order,
// on the calling goroutine. A panic raised by a listener propagates and
// the remaining listeners are skipped.
//
// Dispatch is the engine behind every EventN.Invoke; use it directly for
// signatures the Event types do not cover.
func (s *Set[F]) Dispatch(call func(fn F)) {
	if s.opts.mode == Direct {
		s.dispatchDirect(call)
		return
	}
	s.Prepare().Each(call)
}

// DispatchAsync starts one goroutine per eligible listener, in
// registration order, and returns a Completion that resolves once all of
// them have returned. Registration changes made after DispatchAsync
// returns do not affect the dispatch, whatever the Mode.
func (s *Set[F]) DispatchAsync(call func(fn F) error) *Completion {
	return s.Prepare().FanOut(call)
}

func (s *Set[F]) dispatchDirect(call func(fn F)) {
	version := s.version
	for i := 0; i < len(s.committed); i++ {
		h := s.committed[i]
		call(h.fn)
		if s.version != version {
			s.opts.log().Error("listener set modified during direct dispatch",
				slog.String("listener", h.String()),
				slog.Int("index", i))
			panic(errors.WithStack(ErrModifiedDuringDispatch))
		}
	}
}

func (s *Set[F]) commitPending() {
	if len(s.pending) == 0 {
		return
	}
	s.committed = append(s.committed, s.pending...)
	s.pending = nil
}

func (s *Set[F]) indexOf(handles []Handle[F], h Handle[F]) int {
	return slices.IndexFunc(handles, h.Equal)
}

func without[F any](handles []Handle[F], idx int) []Handle[F] {
	if len(handles) == 1 {
		return nil
	}
	return slices.Delete(slices.Clone(handles), idx, idx+1)
}
