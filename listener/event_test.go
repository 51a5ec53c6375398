package listener_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhenyu888/ddd-event/listener"
)

func TestEvent1_InvokeInOrder(t *testing.T) {
	type call struct {
		name string
		arg  int
	}
	var calls []call
	var e listener.Event1[int]
	for _, name := range []string{"A", "B", "C"} {
		e.On(func(v int) { calls = append(calls, call{name, v}) })
	}

	e.Invoke(42)
	assert.Equal(t, []call{{"A", 42}, {"B", 42}, {"C", 42}}, calls)
}

func TestEvent_Arities(t *testing.T) {
	var got []string
	record := func(args ...interface{}) { got = append(got, fmt.Sprint(args...)) }

	e0 := listener.NewEvent0()
	e0.On(func() { record("0") })
	e0.Invoke()

	e2 := listener.NewEvent2[string, int]()
	e2.On(func(a string, b int) { record(a, b) })
	e2.Invoke("a", 2)

	e3 := listener.NewEvent3[int, int, int]()
	e3.On(func(a, b, c int) { record(a, b, c) })
	e3.Invoke(1, 2, 3)

	e4 := listener.NewEvent4[int, int, int, int]()
	e4.On(func(a, b, c, d int) { record(a, b, c, d) })
	e4.Invoke(1, 2, 3, 4)

	e5 := listener.NewEvent5[int, int, int, int, string]()
	e5.On(func(a, b, c, d int, s string) { record(a, b, c, d, s) })
	e5.Invoke(1, 2, 3, 4, "x")

	assert.Equal(t, []string{"0", "a2", "1 2 3", "1 2 3 4", "1 2 3 4x"}, got)
}

func TestEvent1_RemoveSelfDuringInvoke(t *testing.T) {
	e := listener.NewEvent1[string]()
	var calls []string
	var once listener.Handle[func(string)]
	once = e.On(func(s string) {
		calls = append(calls, "once:"+s)
		e.Remove(once)
	})
	e.On(func(s string) { calls = append(calls, "always:"+s) })

	e.Invoke("x")
	e.Invoke("y")
	assert.Equal(t, []string{"once:x", "always:x", "always:y"}, calls)
	assert.Equal(t, 1, e.Count())
}

func TestEvent1_DirectModePanicsOnSelfRemoval(t *testing.T) {
	e := listener.NewEvent1[string](listener.WithMode(listener.Direct))
	var h listener.Handle[func(string)]
	h = e.On(func(string) { e.Remove(h) })

	assert.Panics(t, func() { e.Invoke("x") })
	assert.Equal(t, 0, e.Count())
}

func TestEvent0_Deferred(t *testing.T) {
	e := listener.NewEvent0(listener.WithMode(listener.Deferred))
	n := 0
	e.On(func() {
		n++
		e.On(func() { n += 10 })
	})

	e.Invoke()
	require.Equal(t, 1, n)
	e.Invoke()
	assert.Equal(t, 12, n)
	assert.Equal(t, 3, e.Count())
}

func TestEvent_InvokeWithoutListeners(t *testing.T) {
	var e listener.Event2[int, int]
	assert.NotPanics(t, func() { e.Invoke(1, 2) })
	assert.False(t, e.HasListeners())
}
