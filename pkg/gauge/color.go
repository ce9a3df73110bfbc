package gauge

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an RGB triple with channels in [0,255]. Channels stay fractional
// until they are formatted.
type Color struct {
	R, G, B float64
}

// Black is the color used for unparseable color strings.
var Black = Color{}

// ParseColor parses "#rgb" or "#rrggbb". Anything else yields Black and false.
func ParseColor(s string) (Color, bool) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Black, false
	}
	r, g, b := c.RGB255()
	return Color{R: float64(r), G: float64(g), B: float64(b)}, true
}

// ParseColorOrBlack is ParseColor without the ok flag.
func ParseColorOrBlack(s string) Color {
	c, _ := ParseColor(s)
	return c
}

// Lerp returns b + (a - b) * t on every channel, so t=0 yields b and t=1
// yields a.
func Lerp(a, b Color, t float64) Color {
	return Color{
		R: (a.R-b.R)*t + b.R,
		G: (a.G-b.G)*t + b.G,
		B: (a.B-b.B)*t + b.B,
	}
}

// Hex formats the color as "#rrggbb", rounding each channel half away
// from zero.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B))
}

// RGBA returns the opaque 8-bit color.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: channel(c.R), G: channel(c.G), B: channel(c.B), A: 0xff}
}

// NRGBA returns the 8-bit color with opacity in [0,1] as its alpha.
func (c Color) NRGBA(opacity float64) color.NRGBA {
	return color.NRGBA{R: channel(c.R), G: channel(c.G), B: channel(c.B), A: channel(opacity * 255)}
}

// String implements fmt.Stringer.
func (c Color) String() string { return c.Hex() }

func channel(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return uint8(max(0, min(255, math.Round(v))))
}
