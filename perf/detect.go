package perf

import (
	"math"

	"github.com/lixenwraith/rainfield/parameter"
)

// Score sums the weighted capability points
func Score(caps Capabilities) int {
	caps = caps.Normalize()
	score := 0

	switch {
	case caps.HardwareConcurrency >= parameter.CoresHigh:
		score += 3
	case caps.HardwareConcurrency >= parameter.CoresMid:
		score += 2
	default:
		score++
	}

	switch {
	case caps.DeviceMemoryGB >= parameter.MemoryHighGB:
		score += 3
	case caps.DeviceMemoryGB >= parameter.MemoryMidGB:
		score += 2
	default:
		score++
	}

	area := float64(caps.ScreenWidth) * float64(caps.ScreenHeight) * caps.PixelRatio
	switch {
	case area > parameter.ScreenAreaHigh:
		score += 2
	case area > parameter.ScreenAreaMid:
		score++
	}

	if caps.Mobile {
		score -= parameter.MobilePenalty
	}
	if caps.SlowConnection() {
		score -= parameter.SlowNetworkPenalty
	}
	return score
}

// TierForScore maps a capability score onto a device tier
func TierForScore(score int) DeviceTier {
	switch {
	case score >= parameter.TierHighScore:
		return TierHigh
	case score >= parameter.TierMediumScore:
		return TierMedium
	default:
		return TierLow
	}
}

// LevelForTier is the natural animation level of a tier
func LevelForTier(t DeviceTier) AnimationLevel {
	switch t {
	case TierHigh:
		return LevelFull
	case TierMedium:
		return LevelReduced
	default:
		return LevelMinimal
	}
}

// baseBudget is the unscaled particle count of a tier
func baseBudget(t DeviceTier) int {
	switch t {
	case TierHigh:
		return parameter.BudgetHigh
	case TierMedium:
		return parameter.BudgetMedium
	default:
		return parameter.BudgetLow
	}
}

// viewportScale scales the base count by viewport width, capped
func viewportScale(width int) float64 {
	if width <= 0 {
		return 0
	}
	return math.Min(float64(width)/parameter.BudgetReferenceWidth, parameter.BudgetMaxScale)
}

// levelFactor keeps the budget consistent with a level below the tier's natural one
func levelFactor(t DeviceTier, l AnimationLevel) float64 {
	if l == LevelMinimal {
		return 0
	}
	natural := LevelForTier(t)
	if l >= natural {
		return 1
	}
	return parameter.DowngradeBudgetFactor
}

// Budget computes the particle budget for a tier/level pair at a viewport width
func Budget(t DeviceTier, l AnimationLevel, width int) int {
	return int(math.Floor(float64(baseBudget(t)) * viewportScale(width) * levelFactor(t, l)))
}

// Detect classifies capabilities into a full settings value
func Detect(caps Capabilities, vp Viewport) Settings {
	caps = caps.Normalize()
	tier := TierForScore(Score(caps))

	level := LevelForTier(tier)
	if caps.ReduceMotion {
		level = LevelMinimal
	}

	s := Settings{
		ReduceMotion:    caps.ReduceMotion,
		DeviceTier:      tier,
		AnimationLevel:  level,
		FrameRateTarget: frameRateFor(tier),
	}
	s.ParticleBudget = Budget(tier, level, vp.Width)
	s.applyLevelFlags()
	return s
}
