package perf

import (
	"fmt"

	"github.com/lixenwraith/rainfield/parameter"
)

// DeviceTier is the coarse hardware classification computed once at startup
type DeviceTier uint8

const (
	TierLow DeviceTier = iota
	TierMedium
	TierHigh
)

func (t DeviceTier) String() string {
	switch t {
	case TierLow:
		return "low"
	case TierMedium:
		return "medium"
	case TierHigh:
		return "high"
	default:
		return fmt.Sprintf("tier(%d)", uint8(t))
	}
}

// MarshalText encodes the tier by name for YAML and log output
func (t DeviceTier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// AnimationLevel is the active fidelity mode, ordered from least to most expensive
type AnimationLevel uint8

const (
	LevelMinimal AnimationLevel = iota
	LevelReduced
	LevelFull
)

func (l AnimationLevel) String() string {
	switch l {
	case LevelMinimal:
		return "minimal"
	case LevelReduced:
		return "reduced"
	case LevelFull:
		return "full"
	default:
		return fmt.Sprintf("level(%d)", uint8(l))
	}
}

// MarshalText encodes the level by name for YAML and log output
func (l AnimationLevel) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// Settings is the process-wide animation budget
// Values are passed by copy; a Settings value is an immutable snapshot
type Settings struct {
	ReduceMotion            bool           `yaml:"reduce_motion"`
	DeviceTier              DeviceTier     `yaml:"device_tier"`
	AnimationLevel          AnimationLevel `yaml:"animation_level"`
	ParticleBudget          int            `yaml:"particle_budget"`
	EnableParticles         bool           `yaml:"enable_particles"`
	EnableBlur              bool           `yaml:"enable_blur"`
	EnableComplexAnimations bool           `yaml:"enable_complex_animations"`
	FrameRateTarget         int            `yaml:"frame_rate_target_hz"`
}

// DefaultSettings are used before any detection runs and whenever detection cannot run
func DefaultSettings() Settings {
	s := Settings{
		DeviceTier:      TierMedium,
		AnimationLevel:  LevelReduced,
		ParticleBudget:  parameter.BudgetMedium,
		FrameRateTarget: parameter.FrameRateDefault,
	}
	s.applyLevelFlags()
	return s
}

// applyLevelFlags derives the gating flags from the animation level
func (s *Settings) applyLevelFlags() {
	switch s.AnimationLevel {
	case LevelFull:
		s.EnableParticles = true
		s.EnableBlur = true
		s.EnableComplexAnimations = true
	case LevelReduced:
		s.EnableParticles = true
		s.EnableBlur = true
		s.EnableComplexAnimations = false
	default:
		s.EnableParticles = false
		s.EnableBlur = false
		s.EnableComplexAnimations = false
		s.ParticleBudget = 0
	}
}

// frameRateFor returns the render loop target for a tier
func frameRateFor(t DeviceTier) int {
	if t == TierLow {
		return parameter.FrameRateLow
	}
	return parameter.FrameRateDefault
}
