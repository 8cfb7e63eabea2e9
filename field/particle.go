package field

import (
	"fmt"

	"github.com/lixenwraith/rainfield/parameter"
)

// TrailKind selects one of the three stroke styles, fixed at spawn
type TrailKind uint8

const (
	TrailSharp TrailKind = iota
	TrailTapered
	TrailDiffuse
)

func (k TrailKind) String() string {
	switch k {
	case TrailSharp:
		return "sharp"
	case TrailTapered:
		return "tapered"
	case TrailDiffuse:
		return "diffuse"
	default:
		return fmt.Sprintf("trail(%d)", uint8(k))
	}
}

// Point is a position in dots
type Point struct {
	X, Y float64
}

// History is a fixed-capacity ring of recent positions, oldest first
type History struct {
	points [parameter.MaxHistory]Point
	start  int
	n      int
}

// Len returns the number of stored points
func (h *History) Len() int {
	return h.n
}

// At returns the i-th point, 0 being the oldest
func (h *History) At(i int) Point {
	return h.points[(h.start+i)%parameter.MaxHistory]
}

// Head returns the newest point; ok is false when empty
func (h *History) Head() (Point, bool) {
	if h.n == 0 {
		return Point{}, false
	}
	return h.At(h.n - 1), true
}

// Push appends p, dropping the oldest points so at most limit remain
func (h *History) Push(p Point, limit int) {
	limit = clampLimit(limit)
	h.Trim(limit - 1)
	h.points[(h.start+h.n)%parameter.MaxHistory] = p
	h.n++
}

// Trim drops the oldest points until at most limit remain
func (h *History) Trim(limit int) {
	if limit < 0 {
		limit = 0
	}
	for h.n > limit {
		h.start = (h.start + 1) % parameter.MaxHistory
		h.n--
	}
}

// Reset empties the ring
func (h *History) Reset() {
	h.start = 0
	h.n = 0
}

func clampLimit(limit int) int {
	if limit < 1 {
		return 1
	}
	if limit > parameter.MaxHistory {
		return parameter.MaxHistory
	}
	return limit
}

// Particle is one raindrop; pooled by value and respawned in place
type Particle struct {
	X, Y         float64
	PrevX, PrevY float64
	OriginalX    float64

	Speed          float64
	SpeedVariation float64
	BaseAngle      float64
	CurrentAngle   float64

	Length    float64
	Opacity   float64
	Trail     TrailKind
	Taperness float64

	DeflectionVariance float64
	WobbleOffset       float64

	History History
}
