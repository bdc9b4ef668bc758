package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elizafairlady/libui-clock/ui/surface"
	"github.com/elizafairlady/libui-clock/ui/theme"
)

func clockSurface(h, m, s string) *surface.Surface {
	sf := surface.New()
	w := sf.NewElement("wrapper", "hbox")
	for _, kv := range [][2]string{{"hours", h}, {"sep1", ":"}, {"minutes", m}, {"sep2", ":"}, {"seconds", s}} {
		e := sf.NewElement(kv[0], "text")
		e.SetProp("text", kv[1])
		if kv[1] == ":" {
			e.SetProp("role", "separator")
		}
		w.Append(e)
	}
	sf.Root().Append(w)
	return sf
}

func TestPaintPlain(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, nil)
	r.Plain = true

	require.NoError(t, r.Paint(clockSurface("9", "5", "1")))
	assert.Equal(t, "9:5:1\n", buf.String())

	require.NoError(t, r.Paint(clockSurface("10", "0", "0")))
	assert.Equal(t, "9:5:1\n10:0:0\n", buf.String())
}

func TestPaintRedrawsInPlace(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, theme.Default())

	require.NoError(t, r.Paint(clockSurface("9", "5", "1")))
	first := buf.String()
	assert.True(t, strings.HasPrefix(first, "\r\x1b[2K"), "%q", first)
	assert.Contains(t, first, theme.SGR(theme.AcmeText, false)+theme.SGR(theme.AcmeYellow, true)+"9")
	assert.Contains(t, first, theme.SGR(theme.AcmeDim, false))
	assert.True(t, strings.HasSuffix(first, theme.Reset+"\n"))

	buf.Reset()
	require.NoError(t, r.Paint(clockSurface("9", "5", "2")))
	assert.True(t, strings.HasPrefix(buf.String(), "\x1b[1A"), "cursor moves back over the last paint")
}

func TestPaintNodeColors(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, theme.Default())

	sf := surface.New()
	e := sf.NewElement("msg", "text")
	e.SetProp("text", "hi")
	e.SetProp("fg", "red")
	e.SetProp("bg", "white")
	sf.Root().Append(e)

	require.NoError(t, r.Paint(sf))
	assert.Contains(t, buf.String(), theme.SGR(theme.Red, false)+theme.SGR(theme.White, true)+"hi")
}

func TestPaintEmptySurface(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, nil)
	require.NoError(t, r.Paint(surface.New()))
	assert.Zero(t, buf.Len())
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("tty gone") }

func TestPaintWriteError(t *testing.T) {
	r := New(failWriter{}, nil)
	err := r.Paint(clockSurface("1", "2", "3"))
	assert.ErrorContains(t, err, "tty gone")
}
