// Package clockview implements a clock widget that shows the wall-clock
// time as hours:minutes:seconds on a display surface.
//
// The view keeps the time in an observable model. A repeating timer
// writes the model once per tick; every change (re)schedules a single
// render for the next display frame, so any number of changes between
// two frames cost one render that sees the final values.
//
// A View is not safe for concurrent use. All of its methods, and the
// callbacks it hands to the Scheduler, must run on the scheduler's
// loop.
package clockview

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/elizafairlady/libui-clock/ui/model"
	"github.com/elizafairlady/libui-clock/ui/patch"
	"github.com/elizafairlady/libui-clock/ui/sched"
	"github.com/elizafairlady/libui-clock/ui/surface"
	"github.com/elizafairlady/libui-clock/ui/view"
)

// Fields written by every tick, in write order.
const (
	FieldHours   = "hours"
	FieldMinutes = "minutes"
	FieldSeconds = "seconds"
)

// DefaultInterval is the tick period.
const DefaultInterval = time.Second

// Scheduler provides the repeating timer and the display-refresh
// callback the view runs on. *sched.Loop implements it.
type Scheduler interface {
	Every(d time.Duration, fn func()) sched.TimerID
	StopTimer(id sched.TimerID)
	RequestFrame(fn func()) sched.FrameID
	CancelFrame(id sched.FrameID)
}

// Painter puts the surface on screen after each render.
type Painter interface {
	Paint(s *surface.Surface) error
}

// ErrorHandler receives render failures.
type ErrorHandler func(err error)

// View is the clock widget.
type View struct {
	container *surface.Element
	sched     Scheduler
	clock     clockwork.Clock
	interval  time.Duration
	log       *slog.Logger
	painter   Painter
	onError   ErrorHandler

	model   *model.Model
	timer   sched.TimerID
	running bool
	pending sched.FrameID // zero when no render is scheduled
	snap    *patch.Snapshot
	text    string
	renders int
}

// Option configures a View.
type Option func(*View)

// WithClock sets the clock the view reads the time from.
func WithClock(c clockwork.Clock) Option {
	return func(v *View) {
		v.clock = c
	}
}

// WithInterval sets the tick period.
func WithInterval(d time.Duration) Option {
	return func(v *View) {
		if d > 0 {
			v.interval = d
		}
	}
}

// WithLogger sets the view's logger.
func WithLogger(log *slog.Logger) Option {
	return func(v *View) {
		v.log = log
	}
}

// WithPainter sets the painter called after each successful render.
func WithPainter(p Painter) Option {
	return func(v *View) {
		v.painter = p
	}
}

// WithErrorHandler sets the function render failures are passed to.
func WithErrorHandler(h ErrorHandler) Option {
	return func(v *View) {
		v.onError = h
	}
}

// New creates a clock view rendering into container. The view takes
// over the container's content on its first render.
func New(container *surface.Element, s Scheduler, opts ...Option) *View {
	v := &View{
		container: container,
		sched:     s,
		clock:     clockwork.NewRealClock(),
		interval:  DefaultInterval,
		log:       slog.Default().With("system", "clockview"),
	}
	for _, o := range opts {
		o(v)
	}
	v.model = model.New(v.onChanges)
	return v
}

// Start starts the timer and ticks once right away. Starting a running
// view does nothing.
func (v *View) Start() {
	if v.running {
		return
	}
	v.running = true
	v.timer = v.sched.Every(v.interval, v.onTick)
	v.log.Debug("started", "interval", v.interval)
	v.onTick()
}

// Stop stops the timer and drops the pending render, if any. It may be
// called any number of times, also before Start.
func (v *View) Stop() {
	if v.running {
		v.sched.StopTimer(v.timer)
		v.timer = 0
		v.running = false
		v.log.Debug("stopped")
	}
	if v.pending != 0 {
		v.sched.CancelFrame(v.pending)
		v.pending = 0
	}
}

// Model returns the view's model.
func (v *View) Model() *model.Model {
	return v.model
}

// Text returns the text shown by the last render.
func (v *View) Text() string {
	return v.text
}

// Renders returns the number of renders that ran.
func (v *View) Renders() int {
	return v.renders
}

// Pending reports whether a render is scheduled.
func (v *View) Pending() bool {
	return v.pending != 0
}

func (v *View) onTick() {
	ticks.Inc()
	now := v.clock.Now()
	for _, f := range []struct {
		name  string
		value int
	}{
		{FieldHours, now.Hour()},
		{FieldMinutes, now.Minute()},
		{FieldSeconds, now.Second()},
	} {
		if err := v.model.Set(f.name, f.value); err != nil {
			v.log.Error("tick", "field", f.name, "err", err)
		}
	}
}

func (v *View) onChanges(field string, old, new model.Value) {
	modelChanges.WithLabelValues(field).Inc()
	if v.pending != 0 {
		v.sched.CancelFrame(v.pending)
		renderRequestsCancelled.Inc()
	}
	v.pending = v.sched.RequestFrame(v.render)
}

// Tree returns the visual tree for the model's current values.
func (v *View) Tree() *view.Node {
	return view.HBox("wrapper",
		view.TextNode(FieldHours, v.model.String(FieldHours)),
		view.TextNode("sep1", ":").Prop("role", "separator"),
		view.TextNode(FieldMinutes, v.model.String(FieldMinutes)),
		view.TextNode("sep2", ":").Prop("role", "separator"),
		view.TextNode(FieldSeconds, v.model.String(FieldSeconds)),
	)
}

func (v *View) render() {
	// The request has fired; a change from here on needs a new one.
	v.pending = 0
	start := v.clock.Now()

	if v.snap == nil {
		v.snap = patch.ToNode(v.container)
	}
	s := v.snap.Elem.Surface()
	before := s.Mutations()

	tree := v.Tree()
	snap, ops, err := patch.Patch(v.snap, tree)
	if err != nil {
		if v.debug() {
			v.log.Debug("render aborted", "applied", patch.Trace(ops), "surface", s.Dump())
		}
		// Start over from what the surface actually shows.
		v.snap = patch.ToNode(v.snap.Elem)
		v.fail(fmt.Errorf("render: %w", err))
		return
	}
	v.snap = snap
	v.text = tree.Content()
	v.renders++

	renders.Inc()
	mutations := s.Mutations() - before
	renderMutations.Add(float64(mutations))
	if v.debug() {
		v.log.Debug("rendered", "text", v.text, "mutations", mutations, "ops", patch.Trace(ops))
	}

	if v.painter != nil {
		if err := v.painter.Paint(s); err != nil {
			v.fail(fmt.Errorf("paint: %w", err))
		}
	}
	renderDuration.Observe(v.clock.Since(start).Seconds())
}

func (v *View) debug() bool {
	return v.log.Enabled(context.Background(), slog.LevelDebug)
}

func (v *View) fail(err error) {
	renderErrors.Inc()
	v.log.Error("render failed", "err", err)
	if v.onError != nil {
		v.onError(err)
	}
}
