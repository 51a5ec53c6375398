package listener

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrNilListener            = errors.New("listener: nil listener func")
	ErrUncomparableKey        = errors.New("listener: handle key is not comparable")
	ErrModifiedDuringDispatch = errors.New("listener: set modified during direct dispatch")
	ErrListenerPanic          = errors.New("listener: panic in async listener")
)

// ListenerError is the failure of one listener during an async fan-out.
type ListenerError struct {
	Index int
	Key   interface{}
	Err   error
}

func (e *ListenerError) Error() string {
	return fmt.Sprintf("listener #%d (%v): %v", e.Index, e.Key, e.Err)
}

func (e *ListenerError) Unwrap() error {
	return e.Err
}

// FanOutError collects every failed listener of one async dispatch, in
// registration order.
type FanOutError struct {
	Failures []*ListenerError
}

func (e *FanOutError) Error() string {
	if len(e.Failures) == 1 {
		return e.Failures[0].Error()
	}
	msgs := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		msgs = append(msgs, f.Error())
	}
	return fmt.Sprintf("%d listeners failed: %s", len(e.Failures), strings.Join(msgs, "; "))
}

func (e *FanOutError) Unwrap() []error {
	rlt := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		rlt = append(rlt, f)
	}
	return rlt
}
