package render

import (
	"github.com/charmbracelet/harmonica"

	"github.com/lixenwraith/rainfield/parameter"
)

// Halo eases the pointer glow toward the pointer with a damped spring
type Halo struct {
	spring  harmonica.Spring
	x, y    float64
	vx, vy  float64
	tx, ty  float64
	visible bool
}

// NewHalo creates a halo stepped at fps updates per second
func NewHalo(fps int) *Halo {
	h := &Halo{}
	h.SetFrameRate(fps)
	return h
}

// SetFrameRate rebuilds the spring for a new update rate
func (h *Halo) SetFrameRate(fps int) {
	if fps <= 0 {
		fps = parameter.FrameRateDefault
	}
	h.spring = harmonica.NewSpring(harmonica.FPS(fps), parameter.HaloFrequency, parameter.HaloDamping)
}

// Target moves the spring equilibrium; the first target after hiding snaps
func (h *Halo) Target(x, y float64) {
	if !h.visible {
		h.x, h.y = x, y
		h.vx, h.vy = 0, 0
		h.visible = true
	}
	h.tx, h.ty = x, y
}

// Hide stops drawing until the next Target
func (h *Halo) Hide() {
	h.visible = false
}

// Update advances the spring one frame and returns the glow center
func (h *Halo) Update() (x, y float64, ok bool) {
	if !h.visible {
		return 0, 0, false
	}
	h.x, h.vx = h.spring.Update(h.x, h.vx, h.tx)
	h.y, h.vy = h.spring.Update(h.y, h.vy, h.ty)
	return h.x, h.y, true
}
