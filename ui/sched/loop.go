// Package sched provides the host scheduling primitives a widget runs
// on: repeating timers and display-refresh frame callbacks, both
// delivered on a single cooperative loop.
//
// Everything a Loop runs (timer handlers, frame callbacks, posted
// functions) runs on the goroutine that called Run, one at a time, so
// handlers never overlap and need no locking among themselves.
package sched

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// ErrClosed is returned by Run once the loop has stopped.
var ErrClosed = errors.New("sched: loop closed")

// DefaultFrameInterval is the display refresh period (60 Hz).
const DefaultFrameInterval = time.Second / 60

// TimerID identifies a repeating timer. The zero value is never issued.
type TimerID uint64

// FrameID identifies a pending frame request. The zero value is never
// issued.
type FrameID uint64

type timer struct {
	ticker clockwork.Ticker
	fn     func()
	done   chan struct{}
}

type frameReq struct {
	id FrameID
	fn func()
}

// Loop is a single-threaded event loop.
type Loop struct {
	clock         clockwork.Clock
	frameInterval time.Duration
	log           *slog.Logger

	posted chan func()
	quit   chan struct{}
	once   sync.Once

	mu     sync.Mutex
	nextID uint64
	timers map[TimerID]*timer
	frames []frameReq // waiting for the next frame
	due    []frameReq // taken by the running frame
}

// Option configures a Loop.
type Option func(*Loop)

// WithFrameInterval sets the display refresh period.
func WithFrameInterval(d time.Duration) Option {
	return func(l *Loop) {
		if d > 0 {
			l.frameInterval = d
		}
	}
}

// WithLogger sets the loop's logger.
func WithLogger(log *slog.Logger) Option {
	return func(l *Loop) {
		l.log = log
	}
}

// New creates a loop driven by clock. Pass clockwork.NewRealClock()
// outside tests.
func New(clock clockwork.Clock, opts ...Option) *Loop {
	l := &Loop{
		clock:         clock,
		frameInterval: DefaultFrameInterval,
		log:           slog.Default().With("system", "sched"),
		posted:        make(chan func(), 64),
		quit:          make(chan struct{}),
		timers:        make(map[TimerID]*timer),
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

func (l *Loop) id() uint64 {
	l.nextID++
	return l.nextID
}

// Every runs fn on the loop every d until the timer is stopped.
func (l *Loop) Every(d time.Duration, fn func()) TimerID {
	l.mu.Lock()
	id := TimerID(l.id())
	t := &timer{
		ticker: l.clock.NewTicker(d),
		fn:     fn,
		done:   make(chan struct{}),
	}
	l.timers[id] = t
	l.mu.Unlock()

	go l.forward(id, t)
	l.log.Debug("timer started", "timer", id, "interval", d)
	return id
}

// forward posts a fire of t onto the loop for every tick.
func (l *Loop) forward(id TimerID, t *timer) {
	for {
		select {
		case <-t.ticker.Chan():
			fire := func() {
				// A fire queued before StopTimer is dropped.
				if l.timerActive(id) {
					t.fn()
				}
			}
			select {
			case l.posted <- fire:
			case <-t.done:
				return
			case <-l.quit:
				return
			}
		case <-t.done:
			return
		case <-l.quit:
			return
		}
	}
}

func (l *Loop) timerActive(id TimerID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.timers[id]
	return ok
}

// StopTimer stops a timer. Stopping an unknown or stopped timer is a
// no-op.
func (l *Loop) StopTimer(id TimerID) {
	l.mu.Lock()
	t, ok := l.timers[id]
	delete(l.timers, id)
	l.mu.Unlock()
	if !ok {
		return
	}
	t.ticker.Stop()
	close(t.done)
	l.log.Debug("timer stopped", "timer", id)
}

// RequestFrame schedules fn to run once on the next frame. Requests
// made while a frame is running go to the following frame.
func (l *Loop) RequestFrame(fn func()) FrameID {
	l.mu.Lock()
	defer l.mu.Unlock()
	id := FrameID(l.id())
	l.frames = append(l.frames, frameReq{id: id, fn: fn})
	return id
}

// CancelFrame withdraws a pending frame request. Cancelling a request
// that already ran, or was never issued, is a no-op.
func (l *Loop) CancelFrame(id FrameID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.frames = dropFrame(l.frames, id)
	l.due = dropFrame(l.due, id)
}

func dropFrame(q []frameReq, id FrameID) []frameReq {
	for i, f := range q {
		if f.id == id {
			return append(q[:i], q[i+1:]...)
		}
	}
	return q
}

// PendingFrames returns the number of frame requests waiting to run.
func (l *Loop) PendingFrames() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.frames)
}

// Post runs fn on the loop. It returns false if the loop has stopped.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.quit:
		return false
	default:
	}
	select {
	case l.posted <- fn:
		return true
	case <-l.quit:
		return false
	}
}

// Run processes timers, frames and posted functions until ctx is done.
// A loop runs once; later calls return ErrClosed.
func (l *Loop) Run(ctx context.Context) error {
	select {
	case <-l.quit:
		return ErrClosed
	default:
	}
	defer l.close()

	frames := l.clock.NewTicker(l.frameInterval)
	defer frames.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.posted:
			fn()
		case <-frames.Chan():
			l.runFrame()
		}
	}
}

func (l *Loop) close() {
	l.once.Do(func() {
		close(l.quit)
		l.mu.Lock()
		for id, t := range l.timers {
			t.ticker.Stop()
			close(t.done)
			delete(l.timers, id)
		}
		l.frames = nil
		l.due = nil
		l.mu.Unlock()
	})
}

func (l *Loop) runFrame() {
	l.mu.Lock()
	l.due = l.frames
	l.frames = nil
	l.mu.Unlock()

	for {
		l.mu.Lock()
		if len(l.due) == 0 {
			l.mu.Unlock()
			return
		}
		f := l.due[0]
		l.due = l.due[1:]
		l.mu.Unlock()
		f.fn()
	}
}
