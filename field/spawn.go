package field

import (
	"math"

	"github.com/lixenwraith/rainfield/parameter"
)

// spawn re-rolls every attribute of p in place
// initial spreads particles over the whole height; respawns enter just above the top edge
func (f *Field) spawn(p *Particle, initial bool) {
	// Squaring the roll biases spawns toward the left edge
	r := f.rng.Float64()
	p.X = r * r * (f.width + parameter.SpawnMargin)

	if initial {
		p.Y = f.rng.Float64()*(f.height+parameter.BufferMargin) - parameter.BufferMargin
	} else {
		p.Y = -f.rng.Float64() * parameter.SpawnHeadroom
	}
	p.PrevX, p.PrevY = p.X, p.Y
	p.OriginalX = p.X

	p.Speed = f.between(parameter.SpeedMin, parameter.SpeedMax)
	p.SpeedVariation = f.between(parameter.SpeedVariationMin, parameter.SpeedVariationMax)
	p.BaseAngle = f.between(parameter.BaseAngleMin, parameter.BaseAngleMax)
	p.CurrentAngle = p.BaseAngle

	p.Length = f.between(parameter.LengthMin, parameter.LengthMax)
	p.Opacity = f.opacityAt(p.X)
	p.Trail = f.rollTrail()
	p.Taperness = f.between(parameter.TaperMin, parameter.TaperMax)

	p.DeflectionVariance = f.between(parameter.DeflectionVarianceMin, parameter.DeflectionVarianceMax)
	p.WobbleOffset = f.rng.Float64() * 2 * math.Pi

	p.History.Reset()
}

// opacityAt is highest on the dense left edge and fades toward the right
func (f *Field) opacityAt(x float64) float64 {
	span := f.width + parameter.SpawnMargin
	if span <= 0 {
		return parameter.OpacityMin + parameter.OpacityRange
	}
	t := math.Max(0, math.Min(1, x/span))
	return parameter.OpacityMin + parameter.OpacityRange*(1-t)
}

func (f *Field) rollTrail() TrailKind {
	r := f.rng.Float64()
	switch {
	case r < parameter.TrailSharpWeight:
		return TrailSharp
	case r < parameter.TrailSharpWeight+parameter.TrailTaperedWeight:
		return TrailTapered
	default:
		return TrailDiffuse
	}
}

func (f *Field) between(lo, hi float64) float64 {
	return lo + f.rng.Float64()*(hi-lo)
}
