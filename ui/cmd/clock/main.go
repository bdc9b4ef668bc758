// Command clock shows the current time as hours:minutes:seconds on the
// terminal, redrawn in place once per second.
//
// Usage:
//
//	clock [--config clock.yaml] [--tick 1s] [--no-color]
//
// Logs go to stderr. Every flag can also be set through the
// environment, or a .env file in the working directory.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	cli "github.com/urfave/cli/v2"

	"github.com/elizafairlady/libui-clock/ui"
	"github.com/elizafairlady/libui-clock/ui/config"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "clock: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	app := cli.App{
		Name:   "clock",
		Usage:  "terminal clock",
		Action: runClock,
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Usage:   "path to a YAML configuration file",
			EnvVars: []string{"CLOCK_CONFIG"},
		},
		&cli.DurationFlag{
			Name:    "tick",
			Usage:   "how often the time is read",
			Value:   time.Second,
			EnvVars: []string{"CLOCK_TICK"},
		},
		&cli.DurationFlag{
			Name:    "frame-interval",
			Usage:   "display refresh period",
			Value:   time.Second / 60,
			EnvVars: []string{"CLOCK_FRAME_INTERVAL"},
		},
		&cli.BoolFlag{
			Name:  "no-color",
			Usage: "print plain lines instead of redrawing in colour (also set by any non-empty NO_COLOR)",
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "log verbosity (error, warn, info, debug)",
			Value:   "warn",
			EnvVars: []string{"CLOCK_LOG_LEVEL", "LOG_LEVEL"},
		},
		&cli.StringFlag{
			Name:    "log-format",
			Usage:   "log format (text, json)",
			Value:   "text",
			EnvVars: []string{"CLOCK_LOG_FORMAT"},
		},
		&cli.StringFlag{
			Name:    "metrics-listen",
			Usage:   "address to serve Prometheus metrics on, empty to disable",
			EnvVars: []string{"CLOCK_METRICS_LISTEN"},
		},
	}

	return app.Run(args)
}

func configLogger(cctx *cli.Context, writer io.Writer) (*slog.Logger, error) {
	var level slog.Level
	switch strings.ToLower(cctx.String("log-level")) {
	case "error":
		level = slog.LevelError
	case "warn":
		level = slog.LevelWarn
	case "info":
		level = slog.LevelInfo
	case "debug":
		level = slog.LevelDebug
	default:
		return nil, fmt.Errorf("unknown log level %q", cctx.String("log-level"))
	}
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	switch strings.ToLower(cctx.String("log-format")) {
	case "text":
		h = slog.NewTextHandler(writer, opts)
	case "json":
		h = slog.NewJSONHandler(writer, opts)
	default:
		return nil, fmt.Errorf("unknown log format %q", cctx.String("log-format"))
	}
	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger, nil
}

// loadConfig reads the config file, if any, and applies the flags that
// were set explicitly on top of it.
func loadConfig(cctx *cli.Context) (*config.Config, error) {
	cfg := config.Default()
	if path := cctx.String("config"); path != "" {
		c, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = c
	}
	if cctx.IsSet("tick") {
		cfg.Tick = cctx.Duration("tick")
	}
	if cctx.IsSet("frame-interval") {
		cfg.FrameInterval = cctx.Duration("frame-interval")
	}
	// https://no-color.org: any non-empty value disables colour.
	if cctx.Bool("no-color") || os.Getenv("NO_COLOR") != "" {
		cfg.Color = false
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runClock(cctx *cli.Context) error {
	log, err := configLogger(cctx, os.Stderr)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cctx)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cctx.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if addr := cctx.String("metrics-listen"); addr != "" {
		srv := &http.Server{
			Addr:    addr,
			Handler: promhttp.Handler(),
		}
		go func() {
			log.Info("metrics server listening", "addr", addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("metrics server failed", "err", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	return ui.Run(ctx, ui.Options{
		Out:    os.Stdout,
		Config: cfg,
		Logger: log,
	})
}
