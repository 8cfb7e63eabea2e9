package render

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/tfriedel6/canvas"
	"github.com/tfriedel6/canvas/backend/softwarebackend"

	"github.com/lixenwraith/rainfield/field"
	"github.com/lixenwraith/rainfield/parameter"
	"github.com/lixenwraith/rainfield/parameter/visual"
	"github.com/lixenwraith/rainfield/perf"
)

// ErrNoContext is returned when a drawing surface cannot be created for the requested size
var ErrNoContext = errors.New("drawing context unavailable")

// maxBackingPixels caps the software backing store
const maxBackingPixels = 4096 * 4096

// Painter owns the canvas backing store; all coordinates passed in are dots
type Painter struct {
	backend *softwarebackend.SoftwareBackend
	cv      *canvas.Canvas

	dotsW, dotsH int
	ratio        int
	blur         bool
}

// NewPainter returns an unsized painter; Resize must succeed before drawing
func NewPainter() *Painter {
	return &Painter{}
}

// Resize recreates the backing store at dots x ratio and rescales the context to dots
func (p *Painter) Resize(dotsW, dotsH, ratio int) error {
	if dotsW <= 0 || dotsH <= 0 {
		return fmt.Errorf("%w: %dx%d dots", ErrNoContext, dotsW, dotsH)
	}
	ratio = min(max(ratio, parameter.MinPixelRatio), parameter.MaxPixelRatio)

	w, h := dotsW*ratio, dotsH*ratio
	if w*h > maxBackingPixels {
		return fmt.Errorf("%w: backing store %dx%d too large", ErrNoContext, w, h)
	}

	backend := softwarebackend.New(w, h)
	if backend == nil || backend.Image == nil {
		return fmt.Errorf("%w: software backend", ErrNoContext)
	}
	cv := canvas.New(backend)
	if cv == nil {
		return fmt.Errorf("%w: canvas", ErrNoContext)
	}
	cv.Scale(float64(ratio), float64(ratio))

	p.backend = backend
	p.cv = cv
	p.dotsW, p.dotsH, p.ratio = dotsW, dotsH, ratio

	p.cv.SetFillStyle(Paint(visual.RgbBlack, 1))
	p.cv.FillRect(0, 0, float64(dotsW), float64(dotsH))
	return nil
}

// SetBlur toggles the soft underlay drawn beneath diffuse trails
func (p *Painter) SetBlur(on bool) {
	p.blur = on
}

// Blur reports whether the diffuse underlay is drawn
func (p *Painter) Blur() bool {
	return p.blur
}

// Ready reports whether a backing store exists
func (p *Painter) Ready() bool {
	return p.cv != nil
}

// Size returns the drawing area in dots and the supersampling ratio
func (p *Painter) Size() (dotsW, dotsH, ratio int) {
	return p.dotsW, p.dotsH, p.ratio
}

// Image returns the backing store; nil before the first successful Resize
func (p *Painter) Image() *image.RGBA {
	if p.backend == nil {
		return nil
	}
	return p.backend.Image
}

// FadeAlpha returns the afterimage overlay alpha for a fidelity level
func FadeAlpha(level perf.AnimationLevel) float64 {
	switch level {
	case perf.LevelFull:
		return parameter.FadeAlphaFull
	case perf.LevelReduced:
		return parameter.FadeAlphaReduced
	default:
		return parameter.FadeAlphaMinimal
	}
}

// Fade paints a translucent black rectangle so previous frames linger as afterimages
func (p *Painter) Fade(level perf.AnimationLevel) {
	if p.cv == nil {
		return
	}
	p.cv.SetFillStyle(Paint(visual.RgbBlack, FadeAlpha(level)))
	p.cv.FillRect(0, 0, float64(p.dotsW), float64(p.dotsH))
}

// DrawParticles strokes every trail with more than one history point
// Minimal level collapses every trail kind to one simple stroke
func (p *Painter) DrawParticles(particles []field.Particle, level perf.AnimationLevel) int {
	if p.cv == nil {
		return 0
	}
	drawn := 0
	for i := range particles {
		pt := &particles[i]
		n := pt.History.Len()
		if n < 2 {
			continue
		}
		soft := p.blur && level != perf.LevelMinimal && pt.Trail == field.TrailDiffuse

		prev := pt.History.At(0)
		for j := 1; j < n; j++ {
			cur := pt.History.At(j)
			p.trail(prev, cur, strokeAt(pt, float64(j)/float64(n), level), soft)
			prev = cur
		}
		// Head leads along the blended angle
		p.trail(prev, Lead(prev, pt.CurrentAngle, pt.Length), strokeAt(pt, 1, level), soft)
		drawn++
	}
	return drawn
}

// Lead returns the point length*HeadExtent dots ahead of from along angle (radians from vertical)
func Lead(from field.Point, angle, length float64) field.Point {
	d := length * parameter.HeadExtent
	return field.Point{X: from.X + math.Sin(angle)*d, Y: from.Y + math.Cos(angle)*d}
}

func strokeAt(pt *field.Particle, t float64, level perf.AnimationLevel) Stroke {
	if level == perf.LevelMinimal {
		return SimpleStroke(pt.Opacity)
	}
	return Style(pt.Trail, t, pt.Opacity, pt.Taperness)
}

func (p *Painter) trail(a, b field.Point, st Stroke, soft bool) {
	if soft {
		p.segment(a, b, Soften(st))
	}
	p.segment(a, b, st)
}

func (p *Painter) segment(a, b field.Point, st Stroke) {
	if st.Alpha <= 0 || st.Width <= 0 {
		return
	}
	p.cv.SetStrokeStyle(Paint(st.Color, st.Alpha))
	p.cv.SetLineWidth(st.Width)
	p.cv.BeginPath()
	p.cv.MoveTo(a.X, a.Y)
	p.cv.LineTo(b.X, b.Y)
	p.cv.Stroke()
}

// DrawHalo paints a soft glow centered on the pointer
func (p *Painter) DrawHalo(x, y float64) {
	if p.cv == nil {
		return
	}
	// Outer rings first; overlapping fills brighten toward the center
	fill := Paint(visual.RgbHalo, parameter.HaloAlpha/parameter.HaloRings)
	for i := parameter.HaloRings; i >= 1; i-- {
		r := parameter.HaloRadius * float64(i) / parameter.HaloRings
		p.cv.SetFillStyle(fill)
		p.cv.BeginPath()
		p.cv.Arc(x, y, r, 0, 2*math.Pi, false)
		p.cv.ClosePath()
		p.cv.Fill()
	}
}

// Present downsamples the backing store onto w
func (p *Painter) Present(w CellWriter) {
	if img := p.Image(); img != nil {
		Present(img, p.ratio, w)
	}
}
