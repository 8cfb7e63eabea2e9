package scene

import (
	"go.uber.org/zap"

	"github.com/lixenwraith/rainfield/parameter"
	"github.com/lixenwraith/rainfield/perf"
	"github.com/lixenwraith/rainfield/terminal"
)

// onResize resizes the canvas and pool to the new screen, then re-reads the budget
func (r *Renderer) onResize(ev terminal.Event) {
	cols, rows := ev.X, ev.Y
	if cols <= 0 || rows <= 0 {
		cols, rows = r.screen.Size()
	}
	dotsW, dotsH := cols, rows*parameter.DotsPerRow

	if err := r.painter.Resize(dotsW, dotsH, r.ratio); err != nil {
		r.log.Debug("canvas resize failed", zap.Error(err))
		return
	}
	r.field.Resize(float64(dotsW), float64(dotsH))
	r.screen.Clear()

	r.manager.Resize(perf.ViewportOf(r.screen))
	r.field.SetBudget(r.manager.Settings().ParticleBudget)
}

// onPointerMove converts the cell under the mouse to the dot at its center
func (r *Renderer) onPointerMove(ev terminal.Event) {
	x := float64(ev.X) + 0.5
	y := float64(ev.Y*parameter.DotsPerRow) + 1
	r.field.SetPointer(x, y)
	r.halo.Target(x, y)
}

func (r *Renderer) onPointerLeave(terminal.Event) {
	r.field.ParkPointer()
	r.halo.Hide()
}

func (r *Renderer) onKey(ev terminal.Event) {
	if ev.Rune == 'h' || ev.Rune == 'H' {
		r.hud = !r.hud
		r.blanked = false
	}
}

// onSettings applies a broadcast without restarting the loop
func (r *Renderer) onSettings(s perf.Settings) {
	prev := r.settings
	r.settings = s

	if !s.EnableParticles {
		r.field.SetBudget(0)
	} else {
		r.field.SetBudget(s.ParticleBudget)
	}
	r.field.SetHistoryLimit(HistoryLimit(s.AnimationLevel))
	r.painter.SetBlur(s.EnableBlur)
	if s.FrameRateTarget != prev.FrameRateTarget {
		r.halo.SetFrameRate(s.FrameRateTarget)
	}
	if !s.EnableComplexAnimations {
		r.halo.Hide()
	}
	if r.ambience != nil && s.EnableParticles != prev.EnableParticles {
		r.ambience.SetEnabled(s.EnableParticles)
	}

	r.log.Debug("renderer settings applied",
		zap.Stringer("level", s.AnimationLevel),
		zap.Int("budget", s.ParticleBudget),
		zap.Int("particles", r.field.Len()),
	)
}
