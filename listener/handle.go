package listener

import (
	"fmt"
	"reflect"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/zhenyu888/ddd-event/funcs"
)

// Handle is a registered callback together with the identity used for
// AddUnique and Remove. Go funcs are not comparable, so two handles are
// equal when their keys are equal, whatever their funcs.
type Handle[F any] struct {
	key interface{}
	fn  F
}

type methodKey struct {
	recv interface{}
	name string
}

// Func wraps fn in a handle with a fresh identity. Keep the returned
// handle to remove the listener later.
func Func[F any](fn F) Handle[F] {
	mustFunc(fn)
	return Handle[F]{key: uuid.New(), fn: fn}
}

// Keyed wraps fn in a handle identified by key, which must be comparable.
// Handles built from equal keys are treated as the same listener.
func Keyed[F any](key interface{}, fn F) Handle[F] {
	mustFunc(fn)
	if key == nil || !reflect.TypeOf(key).Comparable() {
		panic(errors.Wrapf(ErrUncomparableKey, "key %T", key))
	}
	return Handle[F]{key: key, fn: fn}
}

// Method identifies fn by the receiver it is bound to and the method
// name, so re-binding the same method value yields an equal handle:
//
//	set.AddUnique(listener.Method(svc, "OnSaved", svc.OnSaved))
func Method[F any](recv interface{}, name string, fn F) Handle[F] {
	if recv == nil || !reflect.TypeOf(recv).Comparable() {
		panic(errors.Wrapf(ErrUncomparableKey, "receiver %T", recv))
	}
	return Keyed(methodKey{recv: recv, name: name}, fn)
}

func (h Handle[F]) Key() interface{} {
	return h.key
}

func (h Handle[F]) Func() F {
	return h.fn
}

func (h Handle[F]) Equal(other Handle[F]) bool {
	return h.key != nil && h.key == other.key
}

func (h Handle[F]) String() string {
	if mk, ok := h.key.(methodKey); ok {
		return fmt.Sprintf("%T.%s", mk.recv, mk.name)
	}
	return fmt.Sprintf("%s[%v]", funcs.FuncName(h.fn), h.key)
}

func mustFunc(fn interface{}) {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		panic(errors.WithStack(ErrNilListener))
	}
}
