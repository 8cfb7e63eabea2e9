package perf

import (
	"os"
	"runtime"

	"github.com/lixenwraith/rainfield/parameter"
)

// Environment supplies the classifier with its inputs
// Interactive reports false for headless runs (piped output, CI), where classification is skipped
type Environment interface {
	Interactive() bool
	Capabilities() Capabilities
	Viewport() Viewport
}

// ProbeOptions are user-supplied capability values and overrides
type ProbeOptions struct {
	ReduceMotion bool
	PixelRatio   float64
	Connection   string

	// Device emulation overrides; zero means "measure"
	Cores    int
	MemoryGB float64
	Mobile   *bool
}

// ScreenSource reports the host surface size in cells and, when known, in pixels
type ScreenSource interface {
	Size() (cols, rows int)
	PixelSize() (width, height int, ok bool)
}

// Probe reads capabilities from the running process and its terminal
type Probe struct {
	opts     ProbeOptions
	screen   ScreenSource
	isTTY    func() bool
	getenv   func(string) string
	memory   func() (float64, bool)
	numCPU   func() int
	platform string
}

// NewProbe creates a probe bound to a screen; screen may be nil for headless use
func NewProbe(opts ProbeOptions, screen ScreenSource) *Probe {
	return &Probe{
		opts:     opts,
		screen:   screen,
		isTTY:    stdoutIsTerminal,
		getenv:   os.Getenv,
		memory:   totalMemoryGB,
		numCPU:   runtime.NumCPU,
		platform: runtime.GOOS,
	}
}

// Interactive reports whether stdout is attached to a terminal
func (p *Probe) Interactive() bool {
	return p.isTTY()
}

// Capabilities never fails; unreadable values are left zero for Normalize
func (p *Probe) Capabilities() Capabilities {
	caps := Capabilities{
		ReduceMotion:  p.opts.ReduceMotion,
		PixelRatio:    p.opts.PixelRatio,
		EffectiveType: p.connection(),
		Mobile:        p.mobile(),
	}

	caps.HardwareConcurrency = p.opts.Cores
	if caps.HardwareConcurrency <= 0 {
		caps.HardwareConcurrency = p.numCPU()
	}

	caps.DeviceMemoryGB = p.opts.MemoryGB
	if caps.DeviceMemoryGB <= 0 {
		if gb, ok := p.memory(); ok {
			caps.DeviceMemoryGB = gb
		}
	}

	vp := p.Viewport()
	caps.ScreenWidth, caps.ScreenHeight = vp.Width, vp.Height
	return caps
}

// Viewport converts the bound screen size to pixels
func (p *Probe) Viewport() Viewport {
	return ViewportOf(p.screen)
}

// ViewportOf converts a screen size to pixels, estimating from cell count when needed
func ViewportOf(screen ScreenSource) Viewport {
	if screen == nil {
		return Viewport{}
	}
	if w, h, ok := screen.PixelSize(); ok && w > 0 && h > 0 {
		return Viewport{Width: w, Height: h}
	}
	cols, rows := screen.Size()
	return Viewport{Width: cols * parameter.CellPixelWidth, Height: rows * parameter.CellPixelHeight}
}

func (p *Probe) mobile() bool {
	if p.opts.Mobile != nil {
		return *p.opts.Mobile
	}
	switch p.platform {
	case "android", "ios":
		return true
	}
	return p.getenv("TERMUX_VERSION") != ""
}

// connection prefers the configured class; remote sessions are treated as 3g
func (p *Probe) connection() string {
	if p.opts.Connection != "" {
		return p.opts.Connection
	}
	if p.getenv("SSH_CONNECTION") != "" || p.getenv("SSH_TTY") != "" {
		return "3g"
	}
	return "4g"
}

// StaticEnvironment is an Environment with fixed values
type StaticEnvironment struct {
	Caps     Capabilities
	View     Viewport
	Headless bool
}

func (e StaticEnvironment) Interactive() bool          { return !e.Headless }
func (e StaticEnvironment) Capabilities() Capabilities { return e.Caps }
func (e StaticEnvironment) Viewport() Viewport         { return e.View }
