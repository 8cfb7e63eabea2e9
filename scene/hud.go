package scene

import (
	"fmt"

	"github.com/lixenwraith/rainfield/parameter/visual"
)

// drawHUD writes a one-line telemetry panel over the top row
func (r *Renderer) drawHUD() {
	s := r.settings
	line := fmt.Sprintf(" tier %s  level %s  fps %.0f  particles %d/%d ",
		s.DeviceTier, s.AnimationLevel, r.statFPS.Get(), r.particleCount(), s.ParticleBudget)

	fg := visual.RgbHudText
	if r.statDowngrades.Load() > 0 {
		fg = visual.RgbHudWarn
	}

	cols, _ := r.screen.Size()
	x := 0
	for _, ch := range line {
		if x >= cols {
			break
		}
		r.screen.SetCell(x, 0, ch, fg, visual.RgbHudPanel)
		x++
	}
}

func (r *Renderer) particleCount() int {
	if r.field == nil {
		return 0
	}
	return r.field.Len()
}
