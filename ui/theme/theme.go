// Package theme defines the colours the terminal renderer paints with.
// Node props "fg" and "bg" override the theme per node; anything a node
// leaves unset falls back to the theme.
package theme

import (
	"fmt"
	"strconv"
	"strings"
)

// Colours as 0xRRGGBBAA, named after the Plan 9 palette.
const (
	Black      uint32 = 0x000000FF
	White      uint32 = 0xFFFFFFFF
	Red        uint32 = 0xFF0000FF
	Green      uint32 = 0x00FF00FF
	Blue       uint32 = 0x0000FFFF
	Cyan       uint32 = 0x00FFFFFF
	Magenta    uint32 = 0xFF00FFFF
	Yellow     uint32 = 0xFFFF00FF
	Paleyellow uint32 = 0xFFFFAAFF
	Darkyellow uint32 = 0xEEEE9EFF
	Darkgreen  uint32 = 0x448844FF
	Palegreen  uint32 = 0xAAFFAAFF
	Paleblue   uint32 = 0x0000BBFF
	Greyblue   uint32 = 0x005DBBFF

	AcmeYellow uint32 = 0xFFFFEAFF
	AcmeCyan   uint32 = 0xEAFFFFFF
	AcmeBorder uint32 = 0x888888FF
	AcmeText   uint32 = 0x333333FF
	AcmeDim    uint32 = 0x999999FF
	AcmeFocus  uint32 = 0x4488CCFF
)

var named = map[string]uint32{
	"black":      Black,
	"white":      White,
	"red":        Red,
	"green":      Green,
	"blue":       Blue,
	"cyan":       Cyan,
	"magenta":    Magenta,
	"yellow":     Yellow,
	"paleyellow": Paleyellow,
	"darkyellow": Darkyellow,
	"darkgreen":  Darkgreen,
	"palegreen":  Palegreen,
	"paleblue":   Paleblue,
	"greyblue":   Greyblue,
	"acmeyellow": AcmeYellow,
	"acmecyan":   AcmeCyan,
	"acmetag":    AcmeCyan,
	"acmeborder": AcmeBorder,
	"acmetext":   AcmeText,
	"acmedim":    AcmeDim,
	"acmefocus":  AcmeFocus,
}

// Theme holds the default colours.
type Theme struct {
	Foreground uint32
	Background uint32
	// Separator colours the ":" between clock fields.
	Separator uint32
}

// Default returns the Acme-inspired theme: soft black text on warm
// cream, dimmed separators.
func Default() *Theme {
	return &Theme{
		Foreground: AcmeText,
		Background: AcmeYellow,
		Separator:  AcmeDim,
	}
}

// ParseColor parses a colour name or a hex value ("0xRRGGBBAA").
// Returns 0 on failure.
func ParseColor(s string) uint32 {
	if c, ok := named[strings.ToLower(s)]; ok {
		return c
	}
	if len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		v, err := strconv.ParseUint(s[2:], 16, 32)
		if err != nil {
			return 0
		}
		return uint32(v)
	}
	return 0
}

// Resolve returns the colour for a node prop value, or def if the
// value is empty or not a colour.
func Resolve(prop string, def uint32) uint32 {
	if prop == "" {
		return def
	}
	if c := ParseColor(prop); c != 0 {
		return c
	}
	return def
}

// SGR returns the 24-bit ANSI escape selecting c as foreground, or as
// background if bg is set.
func SGR(c uint32, bg bool) string {
	code := 38
	if bg {
		code = 48
	}
	return fmt.Sprintf("\x1b[%d;2;%d;%d;%dm", code, c>>24&0xFF, c>>16&0xFF, c>>8&0xFF)
}

// Reset is the escape that restores default terminal attributes.
const Reset = "\x1b[0m"
