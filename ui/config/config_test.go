package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elizafairlady/libui-clock/ui/theme"
)

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, time.Second, c.Tick)
	assert.True(t, c.Color)

	th, err := c.Colors()
	require.NoError(t, err)
	assert.Equal(t, theme.Default(), th)
}

func TestParseOverlaysDefaults(t *testing.T) {
	c, err := Parse([]byte("tick: 500ms\ntheme:\n  separator: red\n"))
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, c.Tick)
	assert.Equal(t, Default().FrameInterval, c.FrameInterval)
	assert.Equal(t, "red", c.Theme.Separator)
	assert.Equal(t, "acmetext", c.Theme.Foreground)
}

func TestParseEmpty(t *testing.T) {
	c, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		invalid bool
	}{
		{"unknown key", "tock: 1s\n", false},
		{"bad duration", "tick: soon\n", false},
		{"zero tick", "tick: 0s\n", true},
		{"negative frame", "frame_interval: -1ms\n", true},
		{"unknown colour", "theme:\n  foreground: mauve\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.in))
			require.Error(t, err)
			assert.Equal(t, tt.invalid, errors.Is(err, ErrInvalid))
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clock.yaml")
	require.NoError(t, os.WriteFile(path, []byte("color: false\nframe_interval: 10ms\n"), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.False(t, c.Color)
	assert.Equal(t, 10*time.Millisecond, c.FrameInterval)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
