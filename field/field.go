package field

import (
	"math"
	"math/rand/v2"

	"github.com/lixenwraith/rainfield/parameter"
)

// Option configures a Field
type Option func(*Field)

// WithSeed makes spawning deterministic
func WithSeed(seed uint64) Option {
	return func(f *Field) {
		f.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// Field owns the particle pool and advances its physics one frame at a time
// Not safe for concurrent use; the frame loop goroutine is the only caller
type Field struct {
	width, height float64
	particles     []Particle
	historyLimit  int
	rng           *rand.Rand

	pointerX, pointerY float64
	pointerLive        bool
}

// New creates a field of width x height dots filled with budget particles
func New(width, height float64, budget int, opts ...Option) *Field {
	f := &Field{
		width:        width,
		height:       height,
		historyLimit: parameter.MaxHistory,
		pointerX:     parameter.ParkedPointer,
		pointerY:     parameter.ParkedPointer,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.rng == nil {
		f.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	f.SetBudget(budget)
	return f
}

// Size returns the field dimensions in dots
func (f *Field) Size() (width, height float64) {
	return f.width, f.height
}

// Len returns the live particle count
func (f *Field) Len() int {
	return len(f.particles)
}

// Particles exposes the pool for drawing; callers must not retain or modify it
func (f *Field) Particles() []Particle {
	return f.particles
}

// HistoryLimit returns the current trail length cap
func (f *Field) HistoryLimit() int {
	return f.historyLimit
}

// Resize changes the field bounds; particles now outside recycle on their next step
func (f *Field) Resize(width, height float64) {
	f.width = width
	f.height = height
}

// SetBudget grows or shrinks the pool to exactly n particles
// Shrinking keeps the first n particles; growing reuses spare capacity before allocating
func (f *Field) SetBudget(n int) {
	if n < 0 {
		n = 0
	}
	if n <= len(f.particles) {
		f.particles = f.particles[:n]
		return
	}
	for len(f.particles) < n {
		if len(f.particles) < cap(f.particles) {
			f.particles = f.particles[:len(f.particles)+1]
		} else {
			f.particles = append(f.particles, Particle{})
		}
		f.spawn(&f.particles[len(f.particles)-1], true)
	}
}

// SetHistoryLimit caps trail length, trimming existing trails
func (f *Field) SetHistoryLimit(n int) {
	f.historyLimit = clampLimit(n)
	for i := range f.particles {
		f.particles[i].History.Trim(f.historyLimit)
	}
}

// SetPointer records the last known pointer position and marks it live
func (f *Field) SetPointer(x, y float64) {
	f.pointerX, f.pointerY = x, y
	f.pointerLive = true
}

// ParkPointer moves the pointer far off-screen after it leaves the view
func (f *Field) ParkPointer() {
	f.pointerX, f.pointerY = parameter.ParkedPointer, parameter.ParkedPointer
	f.pointerLive = false
}

// Pointer returns the pointer position and whether it is live
func (f *Field) Pointer() (x, y float64, live bool) {
	return f.pointerX, f.pointerY, f.pointerLive
}

// Step advances every particle by one frame; now is the frame time in milliseconds
func (f *Field) Step(now float64) {
	for i := range f.particles {
		p := &f.particles[i]
		p.PrevX, p.PrevY = p.X, p.Y

		f.interact(p, now)
		f.advance(p, now)

		if f.outOfBounds(p) {
			f.spawn(p, false)
			continue
		}
		p.History.Push(Point{X: p.X, Y: p.Y}, f.historyLimit)
	}
}

// interact applies pointer deflection inside the radius, otherwise springs x back to its path
func (f *Field) interact(p *Particle, now float64) {
	dx := p.X - f.pointerX
	dy := p.Y - f.pointerY
	dist := math.Hypot(dx, dy)

	if !f.pointerLive || dist >= parameter.InteractionRadius {
		p.X += (p.OriginalX - p.X) * parameter.ReturnSpring
		return
	}

	force := (parameter.InteractionRadius - dist) / parameter.InteractionRadius *
		parameter.DeflectionStrength * p.DeflectionVariance

	var nx, ny float64
	if dist > 0 {
		nx, ny = dx/dist, dy/dist
	}

	// Turbulence phase is keyed to position so neighbours react differently
	turbX := math.Sin(now*parameter.TurbulenceTimeFreq+p.Y*parameter.TurbulenceSpatialFreq) * parameter.TurbulenceAmp
	turbY := math.Cos(now*parameter.TurbulenceTimeFreq+p.X*parameter.TurbulenceSpatialFreq) * parameter.TurbulenceAmp

	p.X += (nx + turbX) * force
	p.Y += (ny + turbY) * force
}

// advance applies fall, diagonal drift and wobble, then blends the rendered angle
func (f *Field) advance(p *Particle, now float64) {
	variation := p.SpeedVariation * (1 + parameter.SpeedPulseAmp*math.Sin(now*parameter.SpeedPulseFreq+p.WobbleOffset))
	fall := p.Speed * variation
	drift := fall * math.Tan(p.BaseAngle)
	wobble := math.Sin(now*parameter.WobbleFreq+p.WobbleOffset) * parameter.WobbleAmp

	p.Y += fall
	p.X += drift + wobble
	p.OriginalX += drift

	travelX := p.X - p.PrevX
	travelY := p.Y - p.PrevY
	if travelY > 0 {
		traveled := math.Atan2(travelX, travelY)
		p.CurrentAngle = parameter.AngleBlendBase*p.BaseAngle + (1-parameter.AngleBlendBase)*traveled
	}
}

func (f *Field) outOfBounds(p *Particle) bool {
	return p.Y > f.height+p.Length ||
		p.Y < -parameter.BufferMargin ||
		p.X > f.width+parameter.BufferMargin ||
		p.X < -parameter.BufferMargin
}
