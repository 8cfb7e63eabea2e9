package render

import (
	"image/color"
	"math"

	"github.com/lixenwraith/rainfield/terminal"
)

// RGB is the screen color type; drawing code and the screen share it
type RGB = terminal.RGB

// RGBBlack is the cleared canvas color
var RGBBlack = terminal.RGBBlack

// Lerp mixes a toward b by t, clamped to [0,1], rounding each channel
func Lerp(a, b RGB, t float64) RGB {
	t = unit(t)
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + t*(float64(y)-float64(x))))
	}
	return RGB{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B)}
}

// Paint returns c with alpha as a canvas fill or stroke style
// The canvas reads channels as straight alpha, so they are not premultiplied
func Paint(c RGB, alpha float64) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(unit(alpha) * 255))}
}

func unit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
