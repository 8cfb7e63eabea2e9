package render

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/rainfield/field"
	"github.com/lixenwraith/rainfield/parameter"
	"github.com/lixenwraith/rainfield/perf"
)

type cell struct {
	ch     rune
	fg, bg RGB
}

type gridWriter map[[2]int]cell

func (g gridWriter) SetCell(x, y int, ch rune, fg, bg RGB) {
	g[[2]int{x, y}] = cell{ch: ch, fg: fg, bg: bg}
}

func TestLerpAndPaint(t *testing.T) {
	a := RGB{R: 0, G: 0, B: 0}
	b := RGB{R: 200, G: 100, B: 50}

	assert.Equal(t, a, Lerp(a, b, -1))
	assert.Equal(t, b, Lerp(a, b, 2))
	assert.Equal(t, RGB{R: 100, G: 50, B: 25}, Lerp(a, b, 0.5))
	assert.Equal(t, RGB{R: 150, G: 75, B: 38}, Lerp(a, b, 0.75), "channels round to nearest")

	assert.Equal(t, color.RGBA{200, 100, 50, 64}, Paint(b, 0.25), "channels stay straight")
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, Paint(a, 3))
	assert.Equal(t, color.RGBA{0, 0, 0, 0}, Paint(a, -1))
}

func TestStyleCurves(t *testing.T) {
	const opacity = 0.8

	for _, kind := range []field.TrailKind{field.TrailSharp, field.TrailTapered, field.TrailDiffuse} {
		tail := Style(kind, 0.1, opacity, 0.7)
		head := Style(kind, 1, opacity, 0.7)
		assert.Greater(t, head.Alpha, tail.Alpha, kind.String())
		assert.Greater(t, head.Width, tail.Width, kind.String())
		assert.LessOrEqual(t, head.Alpha, opacity, kind.String())
	}

	assert.InDelta(t, opacity, Style(field.TrailSharp, 1, opacity, 0).Alpha, 1e-12)
	assert.Zero(t, Style(field.TrailTapered, 0, opacity, 0.5).Alpha, "tapered tail vanishes")
	assert.Greater(t,
		Style(field.TrailDiffuse, 0.5, opacity, 0.5).Width,
		Style(field.TrailSharp, 0.5, opacity, 0.5).Width,
		"diffuse trails are the widest")

	assert.Equal(t, SimpleStroke(opacity), Style(field.TrailKind(7), 0.5, opacity, 0.5))
}

func TestFadeAlphaByLevel(t *testing.T) {
	assert.Less(t, FadeAlpha(perf.LevelFull), FadeAlpha(perf.LevelReduced))
	assert.Less(t, FadeAlpha(perf.LevelReduced), FadeAlpha(perf.LevelMinimal))
}

func TestPresentPacksTwoDotsPerCell(t *testing.T) {
	// 2x3 dots at ratio 2
	img := image.NewRGBA(image.Rect(0, 0, 4, 6))
	fill := func(dx, dy int, c color.RGBA) {
		for y := dy * 2; y < dy*2+2; y++ {
			for x := dx * 2; x < dx*2+2; x++ {
				img.SetRGBA(x, y, c)
			}
		}
	}
	fill(0, 0, color.RGBA{200, 100, 40, 255})
	fill(0, 1, color.RGBA{10, 20, 30, 255})
	fill(1, 2, color.RGBA{90, 90, 90, 255})
	img.SetRGBA(2, 0, color.RGBA{40, 40, 40, 255})

	out := gridWriter{}
	Present(img, 2, out)

	require.Len(t, out, 4)
	assert.Equal(t, cell{HalfBlock, RGB{R: 200, G: 100, B: 40}, RGB{R: 10, G: 20, B: 30}}, out[[2]int{0, 0}])
	assert.Equal(t, RGB{R: 10, G: 10, B: 10}, out[[2]int{1, 0}].fg, "box filter averages the block")
	assert.Equal(t, RGB{R: 90, G: 90, B: 90}, out[[2]int{1, 1}].fg)
	assert.Equal(t, RGBBlack, out[[2]int{1, 1}].bg, "odd height leaves the last half empty")
}

func TestPainterResize(t *testing.T) {
	p := NewPainter()
	assert.False(t, p.Ready())
	assert.Nil(t, p.Image())

	err := p.Resize(0, 10, 1)
	require.ErrorIs(t, err, ErrNoContext)
	assert.False(t, p.Ready())

	require.NoError(t, p.Resize(40, 20, 9))
	w, h, ratio := p.Size()
	assert.Equal(t, 40, w)
	assert.Equal(t, 20, h)
	assert.Equal(t, parameter.MaxPixelRatio, ratio)
	assert.Equal(t, image.Rect(0, 0, 160, 80), p.Image().Bounds())

	require.ErrorIs(t, p.Resize(5000, 5000, 1), ErrNoContext)
	assert.True(t, p.Ready(), "a failed resize keeps the previous surface")
}

func TestPainterDrawsTrails(t *testing.T) {
	f := field.New(40, 30, 60, field.WithSeed(4))
	for i := 1; i <= 6; i++ {
		f.Step(float64(i) * 16)
	}

	p := NewPainter()
	require.NoError(t, p.Resize(40, 30, 1))
	p.Fade(perf.LevelFull)
	drawn := p.DrawParticles(f.Particles(), perf.LevelFull)
	assert.Positive(t, drawn)

	lit := 0
	img := p.Image()
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] > 0 || img.Pix[i+1] > 0 || img.Pix[i+2] > 0 {
			lit++
		}
	}
	assert.Positive(t, lit)

	out := gridWriter{}
	p.Present(out)
	assert.Len(t, out, 40*15)
}

func TestDrawSkipsShortHistory(t *testing.T) {
	f := field.New(40, 30, 10, field.WithSeed(4))
	p := NewPainter()
	require.NoError(t, p.Resize(40, 30, 1))
	assert.Zero(t, p.DrawParticles(f.Particles(), perf.LevelReduced))

	empty := NewPainter()
	assert.Zero(t, empty.DrawParticles(f.Particles(), perf.LevelReduced))
	empty.Fade(perf.LevelFull)
	empty.DrawHalo(1, 1)
	empty.Present(gridWriter{})
}

func TestHaloSpring(t *testing.T) {
	h := NewHalo(60)

	_, _, ok := h.Update()
	assert.False(t, ok)

	h.Target(10, 10)
	x, y, ok := h.Update()
	require.True(t, ok)
	assert.InDelta(t, 10, x, 1e-9, "first target snaps")
	assert.InDelta(t, 10, y, 1e-9)

	h.Target(30, 0)
	x, _, _ = h.Update()
	assert.Greater(t, x, 10.0)
	assert.Less(t, x, 30.0)
	for range 240 {
		x, y, _ = h.Update()
	}
	assert.InDelta(t, 30, x, 0.1)
	assert.InDelta(t, 0, y, 0.1)

	h.Hide()
	_, _, ok = h.Update()
	assert.False(t, ok)
}

// drop is a two-point trail falling straight down x=10.5 from y=5 to y=10
func drop(kind field.TrailKind, angle float64) field.Particle {
	p := field.Particle{CurrentAngle: angle, Length: 12, Opacity: 1, Trail: kind, Taperness: 0.5}
	p.History.Push(field.Point{X: 10.5, Y: 5}, parameter.HistoryFull)
	p.History.Push(field.Point{X: 10.5, Y: 10}, parameter.HistoryFull)
	return p
}

func paint(t *testing.T, level perf.AnimationLevel, blur bool, particles ...field.Particle) *image.RGBA {
	t.Helper()
	p := NewPainter()
	require.NoError(t, p.Resize(24, 20, 1))
	p.SetBlur(blur)
	require.Equal(t, len(particles), p.DrawParticles(particles, level))
	return p.Image()
}

func lit(img *image.RGBA, x, y int) bool {
	c := img.RGBAAt(x, y)
	return c.R > 0 || c.G > 0 || c.B > 0
}

func TestLeadFollowsAngle(t *testing.T) {
	from := field.Point{X: 1, Y: 2}

	down := Lead(from, 0, 8)
	assert.InDelta(t, 1, down.X, 1e-12)
	assert.InDelta(t, 2+8*parameter.HeadExtent, down.Y, 1e-12)

	right := Lead(from, math.Pi/2, 8)
	assert.InDelta(t, 1+8*parameter.HeadExtent, right.X, 1e-12)
	assert.InDelta(t, 2, right.Y, 1e-12)
}

func TestHeadFollowsCurrentAngle(t *testing.T) {
	straight := paint(t, perf.LevelFull, false, drop(field.TrailSharp, 0))
	bent := paint(t, perf.LevelFull, false, drop(field.TrailSharp, 1.2))

	assert.NotEqual(t, straight.Pix, bent.Pix)
	assert.True(t, lit(straight, 10, 12), "head extends below the newest point")
	assert.False(t, lit(bent, 10, 12), "deflected head leaves the vertical")
	assert.False(t, lit(straight, 10, 14), "head stops at its extent")
}

func TestMinimalCollapsesTrailKinds(t *testing.T) {
	want := paint(t, perf.LevelMinimal, true, drop(field.TrailSharp, 0.2))
	for _, kind := range []field.TrailKind{field.TrailTapered, field.TrailDiffuse} {
		got := paint(t, perf.LevelMinimal, true, drop(kind, 0.2))
		assert.Equal(t, want.Pix, got.Pix, kind.String())
	}

	sharp := paint(t, perf.LevelFull, false, drop(field.TrailSharp, 0.2))
	diffuse := paint(t, perf.LevelFull, false, drop(field.TrailDiffuse, 0.2))
	assert.NotEqual(t, sharp.Pix, diffuse.Pix, "kinds differ above minimal")
}

func TestBlurSoftensDiffuseOnly(t *testing.T) {
	soft := paint(t, perf.LevelReduced, true, drop(field.TrailDiffuse, 0))
	hard := paint(t, perf.LevelReduced, false, drop(field.TrailDiffuse, 0))
	assert.NotEqual(t, soft.Pix, hard.Pix)
	assert.True(t, lit(soft, 12, 7), "underlay spreads past the core")
	assert.False(t, lit(hard, 12, 7))

	assert.Equal(t,
		paint(t, perf.LevelReduced, true, drop(field.TrailSharp, 0)).Pix,
		paint(t, perf.LevelReduced, false, drop(field.TrailSharp, 0)).Pix,
	)

	st := Stroke{Color: RGB{R: 1, G: 2, B: 3}, Alpha: 0.8, Width: 2}
	assert.Equal(t, Stroke{Color: st.Color, Alpha: 0.8 * parameter.BlurAlpha, Width: 2 * parameter.BlurSpread}, Soften(st))
}
