package render

import (
	"image"

	"github.com/lixenwraith/rainfield/parameter"
)

// HalfBlock draws the upper dot as foreground and the lower dot as background
const HalfBlock = '▀'

// CellWriter receives composed terminal cells
type CellWriter interface {
	SetCell(x, y int, ch rune, fg, bg RGB)
}

// Present box-filters img by ratio into dots and packs two dot rows per cell
func Present(img *image.RGBA, ratio int, w CellWriter) {
	if ratio < 1 {
		ratio = 1
	}
	b := img.Bounds()
	dotsW := b.Dx() / ratio
	dotsH := b.Dy() / ratio
	rows := (dotsH + parameter.DotsPerRow - 1) / parameter.DotsPerRow

	for cy := 0; cy < rows; cy++ {
		top := 2 * cy
		bottom := top + 1
		for cx := 0; cx < dotsW; cx++ {
			fg := sampleDot(img, cx, top, ratio)
			bg := RGBBlack
			if bottom < dotsH {
				bg = sampleDot(img, cx, bottom, ratio)
			}
			w.SetCell(cx, cy, HalfBlock, fg, bg)
		}
	}
}

// sampleDot averages the ratio x ratio block behind one dot
// Pixels are premultiplied, so averaging composes them over black
func sampleDot(img *image.RGBA, dx, dy, ratio int) RGB {
	b := img.Bounds()
	x0 := b.Min.X + dx*ratio
	y0 := b.Min.Y + dy*ratio

	var r, g, bl int
	for y := y0; y < y0+ratio; y++ {
		off := img.PixOffset(x0, y)
		for x := 0; x < ratio; x++ {
			r += int(img.Pix[off])
			g += int(img.Pix[off+1])
			bl += int(img.Pix[off+2])
			off += 4
		}
	}
	n := ratio * ratio
	return RGB{R: uint8(r / n), G: uint8(g / n), B: uint8(bl / n)}
}
