package sched

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = 10 * time.Millisecond

// start runs a loop on a fake clock and waits until its frame ticker
// is registered.
func start(t *testing.T) (*Loop, *clockwork.FakeClock, context.Context) {
	t.Helper()
	fc := clockwork.NewFakeClock()
	l := New(fc, WithFrameInterval(frame))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	require.NoError(t, fc.BlockUntilContext(ctx, 1))
	return l, fc, ctx
}

func recv(t *testing.T, ch <-chan string) string {
	t.Helper()
	select {
	case s := <-ch:
		return s
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for loop")
		return ""
	}
}

// drain waits until everything queued on the loop so far has run.
func drain(t *testing.T, l *Loop) {
	t.Helper()
	ch := make(chan string, 1)
	require.True(t, l.Post(func() { ch <- "synced" }))
	recv(t, ch)
}

func TestEveryFiresOnLoop(t *testing.T) {
	l, fc, ctx := start(t)
	got := make(chan string, 10)

	id := l.Every(time.Second, func() { got <- "tick" })
	assert.NotZero(t, id)
	require.NoError(t, fc.BlockUntilContext(ctx, 2))

	fc.Advance(time.Second)
	assert.Equal(t, "tick", recv(t, got))
	fc.Advance(time.Second)
	assert.Equal(t, "tick", recv(t, got))
}

func TestStopTimer(t *testing.T) {
	l, fc, ctx := start(t)
	got := make(chan string, 10)

	id := l.Every(time.Second, func() { got <- "tick" })
	require.NoError(t, fc.BlockUntilContext(ctx, 2))
	l.StopTimer(id)
	l.StopTimer(id)
	l.StopTimer(TimerID(999))

	fc.Advance(3 * time.Second)
	drain(t, l)
	assert.Empty(t, got)
}

func TestFrameRunsOnce(t *testing.T) {
	l, fc, _ := start(t)
	got := make(chan string, 10)

	id := l.RequestFrame(func() { got <- "render" })
	assert.NotZero(t, id)
	assert.Equal(t, 1, l.PendingFrames())

	fc.Advance(frame)
	assert.Equal(t, "render", recv(t, got))

	fc.Advance(frame)
	drain(t, l)
	assert.Empty(t, got)
	assert.Zero(t, l.PendingFrames())

	// Cancelling a request that already ran is harmless.
	l.CancelFrame(id)
}

func TestCancelFrame(t *testing.T) {
	l, fc, _ := start(t)
	got := make(chan string, 10)

	first := l.RequestFrame(func() { got <- "first" })
	l.CancelFrame(first)
	l.RequestFrame(func() { got <- "second" })
	l.CancelFrame(FrameID(12345))

	fc.Advance(frame)
	assert.Equal(t, "second", recv(t, got))
	drain(t, l)
	assert.Empty(t, got)
}

func TestFrameRequestedDuringFrameWaits(t *testing.T) {
	l, fc, _ := start(t)
	got := make(chan string, 10)

	l.RequestFrame(func() {
		got <- "outer"
		l.RequestFrame(func() { got <- "inner" })
	})

	fc.Advance(frame)
	assert.Equal(t, "outer", recv(t, got))
	drain(t, l)
	assert.Empty(t, got)

	fc.Advance(frame)
	assert.Equal(t, "inner", recv(t, got))
}

func TestFrameCancelledBySiblingInSameFrame(t *testing.T) {
	l, fc, _ := start(t)
	got := make(chan string, 10)

	var second FrameID
	l.RequestFrame(func() {
		got <- "first"
		l.CancelFrame(second)
	})
	second = l.RequestFrame(func() { got <- "second" })

	fc.Advance(frame)
	assert.Equal(t, "first", recv(t, got))
	drain(t, l)
	assert.Empty(t, got)
}

func TestRunTwice(t *testing.T) {
	fc := clockwork.NewFakeClock()
	l := New(fc)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, l.Run(ctx), context.Canceled)
	assert.ErrorIs(t, l.Run(context.Background()), ErrClosed)
	assert.False(t, l.Post(func() {}))
}
