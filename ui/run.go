// Package ui runs the clock on a terminal.
//
// Example usage:
//
//	err := ui.Run(ctx, ui.Options{Out: os.Stdout})
//	if err != nil {
//		log.Fatal(err)
//	}
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jonboulle/clockwork"

	"github.com/elizafairlady/libui-clock/ui/clockview"
	"github.com/elizafairlady/libui-clock/ui/config"
	"github.com/elizafairlady/libui-clock/ui/render"
	"github.com/elizafairlady/libui-clock/ui/sched"
	"github.com/elizafairlady/libui-clock/ui/surface"
)

// Placeholder is shown until the first render.
const Placeholder = "--:--:--"

// Options configures Run. The zero value runs the default
// configuration on stdout with the real clock.
type Options struct {
	Out    io.Writer
	Config *config.Config
	Clock  clockwork.Clock
	Logger *slog.Logger
}

// Run shows the clock until ctx is done. It returns nil when ctx is
// cancelled and the first render or paint error otherwise.
func Run(ctx context.Context, opts Options) error {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	th, err := cfg.Colors()
	if err != nil {
		return err
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	loop := sched.New(clock,
		sched.WithFrameInterval(cfg.FrameInterval),
		sched.WithLogger(log.With("system", "sched")),
	)

	sf := surface.New()
	app := sf.NewElement("app", "text")
	app.SetProp("text", Placeholder)
	sf.Root().Append(app)

	r := render.New(out, th)
	r.Plain = !cfg.Color

	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	var failed error
	v := clockview.New(app, loop,
		clockview.WithClock(clock),
		clockview.WithInterval(cfg.Tick),
		clockview.WithPainter(r),
		clockview.WithLogger(log.With("system", "clockview")),
		clockview.WithErrorHandler(func(err error) {
			if failed == nil {
				failed = err
				cancel(err)
			}
		}),
	)
	if !loop.Post(v.Start) {
		return sched.ErrClosed
	}

	log.Info("clock running", "tick", cfg.Tick, "frame_interval", cfg.FrameInterval, "color", cfg.Color)
	err = loop.Run(ctx)
	// The loop has stopped; nothing else touches the view now.
	v.Stop()

	if failed != nil {
		return fmt.Errorf("ui: %w", failed)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}
