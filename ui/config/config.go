// Package config loads the clock's YAML configuration file.
//
// A file only needs the keys it changes; everything else keeps its
// default:
//
//	tick: 1s
//	frame_interval: 16ms
//	color: true
//	theme:
//	  foreground: acmetext
//	  background: acmeyellow
//	  separator: "0x999999ff"
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/elizafairlady/libui-clock/ui/sched"
	"github.com/elizafairlady/libui-clock/ui/theme"
)

// ErrInvalid is returned for a configuration that parses but cannot be
// used.
var ErrInvalid = errors.New("config: invalid")

// Config is the clock configuration.
type Config struct {
	Tick          time.Duration `yaml:"tick"`
	FrameInterval time.Duration `yaml:"frame_interval"`
	Color         bool          `yaml:"color"`
	Theme         Theme         `yaml:"theme"`
}

// Theme names the colours, by libui colour name or as 0xRRGGBBAA.
type Theme struct {
	Foreground string `yaml:"foreground"`
	Background string `yaml:"background"`
	Separator  string `yaml:"separator"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Tick:          time.Second,
		FrameInterval: sched.DefaultFrameInterval,
		Color:         true,
		Theme: Theme{
			Foreground: "acmetext",
			Background: "acmeyellow",
			Separator:  "acmedim",
		},
	}
}

// Load reads the file at path over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes YAML over the defaults and validates the result.
// Unknown keys are an error.
func Parse(data []byte) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks durations and colours.
func (c *Config) Validate() error {
	if c.Tick <= 0 {
		return fmt.Errorf("%w: tick %v must be positive", ErrInvalid, c.Tick)
	}
	if c.FrameInterval <= 0 {
		return fmt.Errorf("%w: frame_interval %v must be positive", ErrInvalid, c.FrameInterval)
	}
	_, err := c.Colors()
	return err
}

// Colors resolves the theme names to colours.
func (c *Config) Colors() (*theme.Theme, error) {
	th := &theme.Theme{}
	for _, f := range []struct {
		key  string
		name string
		dst  *uint32
	}{
		{"foreground", c.Theme.Foreground, &th.Foreground},
		{"background", c.Theme.Background, &th.Background},
		{"separator", c.Theme.Separator, &th.Separator},
	} {
		v := theme.ParseColor(f.name)
		if v == 0 {
			return nil, fmt.Errorf("%w: theme.%s: unknown colour %q", ErrInvalid, f.key, f.name)
		}
		*f.dst = v
	}
	return th, nil
}
