package listener_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhenyu888/ddd-event/listener"
)

func TestAsyncEvent_WaitsForSlowest(t *testing.T) {
	e := listener.NewAsyncEvent1[string]()
	var mu sync.Mutex
	var finished []time.Duration
	for _, d := range []time.Duration{10 * time.Millisecond, 50 * time.Millisecond, 5 * time.Millisecond} {
		e.On(func(ctx context.Context, _ string) error {
			time.Sleep(d)
			mu.Lock()
			finished = append(finished, d)
			mu.Unlock()
			return nil
		})
	}

	start := time.Now()
	require.NoError(t, e.InvokeAsync(context.Background(), "go").Wait())

	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
	assert.Len(t, finished, 3)
	assert.Equal(t, 50*time.Millisecond, finished[2], "the slowest listener finishes last")
}

func TestAsyncEvent_FailuresReportedTogether(t *testing.T) {
	errFirst := errors.New("first")
	errThird := errors.New("third")
	var siblingDone atomic.Bool

	e := listener.NewAsyncEvent0()
	e.On(func(ctx context.Context) error { return errFirst })
	e.On(func(ctx context.Context) error {
		time.Sleep(20 * time.Millisecond)
		siblingDone.Store(true)
		return nil
	})
	e.On(func(ctx context.Context) error { return errThird })

	err := e.InvokeAsync(context.Background()).Wait()
	require.Error(t, err)
	assert.True(t, siblingDone.Load(), "failures never cut siblings short")

	var fanOut *listener.FanOutError
	require.True(t, errors.As(err, &fanOut))
	require.Len(t, fanOut.Failures, 2)
	assert.Equal(t, 0, fanOut.Failures[0].Index)
	assert.Equal(t, 2, fanOut.Failures[1].Index)
	assert.ErrorIs(t, err, errFirst)
	assert.ErrorIs(t, err, errThird)
}

func TestAsyncEvent_PanicIsRecovered(t *testing.T) {
	e := listener.NewAsyncEvent2[int, int]()
	var sum atomic.Int64
	e.On(func(ctx context.Context, a, b int) error { panic("bad listener") })
	e.On(func(ctx context.Context, a, b int) error {
		sum.Add(int64(a + b))
		return nil
	})

	err := e.InvokeAsync(context.Background(), 2, 3).Wait()
	assert.ErrorIs(t, err, listener.ErrListenerPanic)
	assert.Contains(t, err.Error(), "bad listener")
	assert.Equal(t, int64(5), sum.Load())
}

func TestAsyncEvent_SnapshotAtStart(t *testing.T) {
	e := listener.NewAsyncEvent1[int]()
	release := make(chan struct{})
	var calls atomic.Int32
	h := e.On(func(ctx context.Context, _ int) error {
		<-release
		calls.Add(1)
		return nil
	})

	c := e.InvokeAsync(context.Background(), 1)
	e.Remove(h)
	e.On(func(ctx context.Context, _ int) error {
		calls.Add(100)
		return nil
	})
	close(release)

	require.NoError(t, c.Wait())
	assert.Equal(t, int32(1), calls.Load())
}

func TestAsyncEvent_NoListeners(t *testing.T) {
	var e listener.AsyncEvent3[int, int, int]
	c := e.InvokeAsync(context.Background(), 1, 2, 3)

	select {
	case <-c.Done():
	default:
		t.Fatal("empty dispatch should already be complete")
	}
	assert.NoError(t, c.Err())
}

func TestAsyncEvent_ConcurrencyLimit(t *testing.T) {
	e := listener.NewAsyncEvent0(listener.WithConcurrencyLimit(2))
	var running, peak atomic.Int32
	var mu sync.Mutex
	var started []int
	for i := 0; i < 6; i++ {
		e.On(func(ctx context.Context) error {
			mu.Lock()
			started = append(started, i)
			mu.Unlock()
			n := running.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			running.Add(-1)
			return nil
		})
	}

	require.NoError(t, e.InvokeAsync(context.Background()).Wait())
	assert.LessOrEqual(t, peak.Load(), int32(2))
	assert.Len(t, started, 6)
	assert.ElementsMatch(t, []int{0, 1}, started[:2], "starts follow registration order")
}

func TestCompletion_WaitContext(t *testing.T) {
	e := listener.NewAsyncEvent0()
	release := make(chan struct{})
	e.On(func(ctx context.Context) error {
		<-release
		return nil
	})
	c := e.InvokeAsync(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, c.WaitContext(ctx), context.DeadlineExceeded)
	assert.NoError(t, c.Err(), "not finished yet")

	close(release)
	assert.NoError(t, c.WaitContext(context.Background()))
}

func TestAsyncEvent_PassesContext(t *testing.T) {
	type key struct{}
	e := listener.NewAsyncEvent4[int, int, int, int]()
	var seen atomic.Value
	e.On(func(ctx context.Context, a, b, c, d int) error {
		seen.Store(ctx.Value(key{}))
		return nil
	})

	ctx := context.WithValue(context.Background(), key{}, "v")
	require.NoError(t, e.InvokeAsync(ctx, 1, 2, 3, 4).Wait())
	assert.Equal(t, "v", seen.Load())

	e5 := listener.NewAsyncEvent5[int, int, int, int, int]()
	var total atomic.Int64
	e5.On(func(ctx context.Context, a, b, c, d, f int) error {
		total.Add(int64(a + b + c + d + f))
		return nil
	})
	require.NoError(t, e5.InvokeAsync(ctx, 1, 2, 3, 4, 5).Wait())
	assert.Equal(t, int64(15), total.Load())
}
