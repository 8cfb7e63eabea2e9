package parameter

import "time"

// Device Classification Thresholds
const (
	// CoresHigh/CoresMid score +3/+2 for logical CPU count, anything less scores +1
	CoresHigh = 8
	CoresMid  = 4

	// MemoryHighGB/MemoryMidGB score +3/+2 for device memory, anything less scores +1
	MemoryHighGB = 8.0
	MemoryMidGB  = 4.0

	// ScreenAreaHigh/ScreenAreaMid are area-with-DPI thresholds scoring +2/+1
	ScreenAreaHigh = 1920 * 1080
	ScreenAreaMid  = 1280 * 720

	// MobilePenalty and SlowNetworkPenalty are subtracted from the score
	MobilePenalty      = 1
	SlowNetworkPenalty = 2

	// TierHighScore/TierMediumScore are the minimum scores per tier
	TierHighScore   = 7
	TierMediumScore = 4
)

// Capability defaults used when a probe cannot read a value
const (
	DefaultCores        = 4
	DefaultMemoryGB     = 4.0
	DefaultScreenWidth  = 1280
	DefaultScreenHeight = 720
	DefaultPixelRatio   = 1.0

	// CellPixelWidth/CellPixelHeight estimate pixel size per terminal cell when the terminal
	// does not report its pixel dimensions
	CellPixelWidth  = 8
	CellPixelHeight = 16
)

// Particle Budget
const (
	// BudgetLow/BudgetMedium/BudgetHigh are base particle counts per device tier
	BudgetLow    = 30
	BudgetMedium = 80
	BudgetHigh   = 150

	// BudgetReferenceWidth is the viewport width (px) at which the base count applies unscaled
	BudgetReferenceWidth = 1920.0

	// BudgetMaxScale caps viewport scaling of the base count
	BudgetMaxScale = 1.5
)

// Frame Rate Targets
const (
	FrameRateLow     = 30
	FrameRateDefault = 60
)

// Runtime Monitoring
const (
	// SampleInterval is the FPS recomputation window
	SampleInterval = time.Second

	// MinAcceptableFPS triggers a one-step fidelity downgrade when a sample falls below it
	MinAcceptableFPS = 30

	// DowngradeBudgetFactor shrinks the budget on full -> reduced
	DowngradeBudgetFactor = 0.6

	// LongTaskBudgetFloor is the budget above which a long task cuts particles
	LongTaskBudgetFloor = 50

	// LongTaskBudgetFactor is applied to the budget on each long task
	LongTaskBudgetFactor = 0.7
)
