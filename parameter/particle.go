package parameter

// Field geometry is expressed in dots: one terminal column wide, half a row tall

// Particle Pool
const (
	// MaxHistory is the ring capacity of a particle trail
	MaxHistory = 10

	// HistoryFull/HistoryReduced/HistoryMinimal are trail lengths per animation level
	HistoryFull    = 10
	HistoryReduced = 6
	HistoryMinimal = 3

	// BufferMargin is how far outside the viewport a particle may travel before it is recycled
	BufferMargin = 20.0

	// SpawnMargin widens the spawn band past the right edge
	SpawnMargin = 20.0

	// SpawnHeadroom is the maximum distance above the top edge for respawned particles
	SpawnHeadroom = 20.0
)

// Raindrop Kinematics (per frame)
const (
	// SpeedMin/SpeedMax bound the base fall speed (dots/frame)
	SpeedMin = 0.6
	SpeedMax = 1.4

	// SpeedVariationMin/SpeedVariationMax bound the per-particle speed multiplier
	SpeedVariationMin = 0.8
	SpeedVariationMax = 1.2

	// SpeedPulseAmp/SpeedPulseFreq modulate the multiplier over time (freq per ms)
	SpeedPulseAmp  = 0.1
	SpeedPulseFreq = 0.002

	// BaseAngleMin/BaseAngleMax bound the diagonal fall direction (radians from vertical)
	BaseAngleMin = 0.12
	BaseAngleMax = 0.32

	// WobbleAmp/WobbleFreq drive the sinusoidal horizontal jitter
	WobbleAmp  = 0.12
	WobbleFreq = 0.003

	// AngleBlendBase is the weight of baseAngle when blending with the traveled angle
	AngleBlendBase = 0.7
)

// Raindrop Appearance
const (
	LengthMin = 4.0
	LengthMax = 12.0

	// OpacityMin/OpacityRange map horizontal position to opacity (dense left edge is brightest)
	OpacityMin   = 0.25
	OpacityRange = 0.65

	TaperMin = 0.5
	TaperMax = 1.0

	// TrailSharpWeight/TrailTaperedWeight split the [0,1) roll into trail kinds, remainder is diffuse
	TrailSharpWeight   = 0.3
	TrailTaperedWeight = 0.4
)

// Pointer Interaction
const (
	// InteractionRadius is the pointer influence radius (dots)
	InteractionRadius = 16.0

	// DeflectionStrength is the push at zero distance before variance (dots/frame)
	DeflectionStrength = 1.6

	// DeflectionVarianceMin/DeflectionVarianceMax bound the per-particle response
	DeflectionVarianceMin = 0.6
	DeflectionVarianceMax = 1.4

	// TurbulenceAmp/TurbulenceSpatialFreq/TurbulenceTimeFreq shape the organic deflection jitter
	TurbulenceAmp         = 0.35
	TurbulenceSpatialFreq = 0.08
	TurbulenceTimeFreq    = 0.004

	// ReturnSpring is the fraction of the anchor offset recovered per frame outside the radius
	ReturnSpring = 0.08

	// ParkedPointer is where the pointer rests after leaving the view
	ParkedPointer = -1000.0
)
