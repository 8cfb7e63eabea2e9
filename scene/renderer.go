package scene

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/rainfield/engine"
	"github.com/lixenwraith/rainfield/field"
	"github.com/lixenwraith/rainfield/parameter"
	"github.com/lixenwraith/rainfield/perf"
	"github.com/lixenwraith/rainfield/render"
	"github.com/lixenwraith/rainfield/status"
	"github.com/lixenwraith/rainfield/terminal"
)

// ErrMounted is returned by Mount on a renderer that is already mounted
var ErrMounted = errors.New("renderer already mounted")

// Ambience follows the field's activity; implemented by the audio package
type Ambience interface {
	SetIntensity(v float64)
	SetEnabled(on bool)
}

// Option configures a Renderer
type Option func(*Renderer)

// WithLogger sets the renderer logger
func WithLogger(log *zap.Logger) Option {
	return func(r *Renderer) {
		if log != nil {
			r.log = log
		}
	}
}

// WithStatus records frame telemetry into reg
func WithStatus(reg *status.Registry) Option {
	return func(r *Renderer) {
		if reg != nil {
			r.stats = reg
		}
	}
}

// WithPixelRatio sets the canvas supersampling factor
func WithPixelRatio(ratio int) Option {
	return func(r *Renderer) {
		r.ratio = ratio
	}
}

// WithSeed makes the particle field deterministic
func WithSeed(seed uint64) Option {
	return func(r *Renderer) {
		r.fieldOpts = append(r.fieldOpts, field.WithSeed(seed))
	}
}

// WithHUD shows the telemetry overlay from the first frame
func WithHUD(on bool) Option {
	return func(r *Renderer) {
		r.hud = on
	}
}

// WithAmbience attaches a sound layer driven by the particle count
func WithAmbience(a Ambience) Option {
	return func(r *Renderer) {
		r.ambience = a
	}
}

// Renderer binds the particle field, the painter and the screen to the frame loop
// Every method except Mount's returned unmount must run on the loop goroutine
type Renderer struct {
	screen  terminal.Screen
	sched   engine.Scheduler
	events  *terminal.Dispatcher
	manager *perf.Manager

	log       *zap.Logger
	stats     *status.Registry
	ratio     int
	fieldOpts []field.Option
	hud       bool
	ambience  Ambience

	field    *field.Field
	painter  *render.Painter
	halo     *render.Halo
	settings perf.Settings

	frameID   engine.FrameID
	epoch     time.Time
	lastFrame time.Time
	blanked   bool
	mounted   atomic.Bool
	teardown  []func()

	statParticles  *atomic.Int64
	statFrames     *atomic.Int64
	statFrameMs    *status.AtomicFloat
	statFPS        *status.AtomicFloat
	statDowngrades *atomic.Int64
}

// New creates an unmounted renderer
func New(screen terminal.Screen, sched engine.Scheduler, events *terminal.Dispatcher, manager *perf.Manager, opts ...Option) *Renderer {
	r := &Renderer{
		screen:  screen,
		sched:   sched,
		events:  events,
		manager: manager,
		log:     zap.NewNop(),
		stats:   status.NewRegistry(),
		ratio:   parameter.MinPixelRatio,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.statParticles = r.stats.Ints.Get(parameter.StatParticles)
	r.statFrames = r.stats.Ints.Get(parameter.StatFrames)
	r.statFrameMs = r.stats.Floats.Get(parameter.StatFrameMs)
	r.statFPS = r.stats.Floats.Get(parameter.StatFPS)
	r.statDowngrades = r.stats.Ints.Get(parameter.StatDowngrades)
	return r
}

// HistoryLimit returns the trail length for a fidelity level
func HistoryLimit(level perf.AnimationLevel) int {
	switch level {
	case perf.LevelFull:
		return parameter.HistoryFull
	case perf.LevelReduced:
		return parameter.HistoryReduced
	default:
		return parameter.HistoryMinimal
	}
}

// Mount sizes the canvas and pool, attaches every listener and requests the first frame
// With particles disabled nothing is allocated and the returned unmount is a no-op
func (r *Renderer) Mount() (unmount func(), err error) {
	if r.mounted.Load() {
		return nil, ErrMounted
	}

	r.settings = r.manager.Settings()
	if !r.settings.EnableParticles {
		r.log.Info("particles disabled, renderer not mounted",
			zap.Stringer("level", r.settings.AnimationLevel),
			zap.Bool("reduce_motion", r.settings.ReduceMotion),
		)
		return func() {}, nil
	}

	cols, rows := r.screen.Size()
	dotsW, dotsH := cols, rows*parameter.DotsPerRow

	painter := render.NewPainter()
	if err := painter.Resize(dotsW, dotsH, r.ratio); err != nil {
		return func() {}, fmt.Errorf("mount renderer: %w", err)
	}
	painter.SetBlur(r.settings.EnableBlur)
	r.painter = painter

	r.field = field.New(float64(dotsW), float64(dotsH), r.settings.ParticleBudget, r.fieldOpts...)
	r.field.SetHistoryLimit(HistoryLimit(r.settings.AnimationLevel))
	r.halo = render.NewHalo(r.settings.FrameRateTarget)

	r.teardown = []func(){
		r.events.On(terminal.EventResize, r.onResize),
		r.events.On(terminal.EventPointerMove, r.onPointerMove),
		r.events.On(terminal.EventPointerLeave, r.onPointerLeave),
		r.events.On(terminal.EventKey, r.onKey),
		r.manager.Subscribe(r.onSettings),
	}
	r.epoch = time.Time{}
	r.lastFrame = time.Time{}
	r.blanked = false
	r.frameID = r.sched.RequestFrame(r.frame)
	r.mounted.Store(true)

	if r.ambience != nil {
		r.ambience.SetEnabled(true)
	}

	r.log.Info("renderer mounted",
		zap.Int("dots_w", dotsW),
		zap.Int("dots_h", dotsH),
		zap.Int("pixel_ratio", r.ratio),
		zap.Int("budget", r.settings.ParticleBudget),
	)
	return r.unmount, nil
}

// Mounted reports whether the render loop is live
func (r *Renderer) Mounted() bool {
	return r.mounted.Load()
}

// Field exposes the particle pool; nil before a successful Mount
func (r *Renderer) Field() *field.Field {
	return r.field
}

// unmount cancels the pending frame and detaches every listener as one unit
func (r *Renderer) unmount() {
	if !r.mounted.CompareAndSwap(true, false) {
		return
	}
	r.sched.CancelFrame(r.frameID)
	for _, detach := range r.teardown {
		detach()
	}
	r.teardown = nil

	if r.ambience != nil {
		r.ambience.SetEnabled(false)
	}
	r.log.Info("renderer unmounted")
}

// frame re-requests itself, then runs at most once per target interval
func (r *Renderer) frame(now time.Time) {
	if !r.mounted.Load() {
		return
	}
	r.frameID = r.sched.RequestFrame(r.frame)

	interval := time.Second / time.Duration(max(r.settings.FrameRateTarget, 1))
	if r.epoch.IsZero() {
		r.epoch = now
	}
	elapsed := now.Sub(r.lastFrame)
	switch {
	case r.lastFrame.IsZero() || elapsed > 4*interval:
		r.lastFrame = now
	case elapsed < interval:
		return
	default:
		// Carry the remainder into the next interval
		r.lastFrame = now.Add(-(elapsed % interval))
	}

	if !r.settings.EnableParticles {
		r.blank()
		return
	}
	r.blanked = false

	start := time.Now()
	r.field.Step(float64(now.Sub(r.epoch)) / float64(time.Millisecond))

	level := r.settings.AnimationLevel
	r.painter.Fade(level)
	r.painter.DrawParticles(r.field.Particles(), level)
	if r.settings.EnableComplexAnimations {
		if x, y, ok := r.halo.Update(); ok {
			r.painter.DrawHalo(x, y)
		}
	}
	r.painter.Present(r.screen)
	if r.hud {
		r.drawHUD()
	}
	r.screen.Show()

	live := r.field.Len()
	r.statParticles.Store(int64(live))
	r.statFrames.Add(1)
	r.statFrameMs.Set(float64(time.Since(start).Microseconds()) / 1000)
	if r.ambience != nil {
		r.ambience.SetIntensity(float64(live) / parameter.BudgetHigh)
	}
}

// blank clears the screen once after particles are switched off
func (r *Renderer) blank() {
	if r.blanked {
		return
	}
	r.screen.Clear()
	if r.hud {
		r.drawHUD()
	}
	r.screen.Show()
	r.statParticles.Store(0)
	r.blanked = true
}
