package parameter

// Compositing
const (
	// FadeAlphaFull/FadeAlphaReduced/FadeAlphaMinimal are the per-frame black overlay alphas
	FadeAlphaFull    = 0.18
	FadeAlphaReduced = 0.24
	FadeAlphaMinimal = 0.3

	// MinPixelRatio/MaxPixelRatio bound the canvas supersampling factor
	MinPixelRatio = 1
	MaxPixelRatio = 4

	// DotsPerRow is the vertical dot count packed into one terminal cell
	DotsPerRow = 2
)

// Pointer Halo
const (
	HaloRadius    = 10.0
	HaloAlpha     = 0.12
	HaloFrequency = 6.0
	HaloDamping   = 0.8
)

// Telemetry keys shared by producers and the HUD
const (
	StatFPS        = "perf.fps"
	StatTier       = "perf.tier"
	StatLevel      = "perf.level"
	StatBudget     = "perf.budget"
	StatDowngrades = "perf.downgrades"
	StatLongTasks  = "perf.longtasks"
	StatParticles  = "field.particles"
	StatFrameMs    = "render.frame_ms"
	StatFrames     = "render.frames"
)

// Trail stroke shaping, widths in dots
const (
	SharpAlphaBase   = 0.35
	SharpWidthBase   = 0.6
	SharpWidthGain   = 0.6
	TaperAlphaScale  = 0.85
	TaperWidthBase   = 0.4
	TaperWidthGain   = 1.1
	DiffuseAlphaBase = 0.45
	DiffuseWidthBase = 1.4
	DiffuseWidthGain = 1.0
	SimpleAlpha      = 0.5
	SimpleWidth      = 0.8

	// BlurSpread/BlurAlpha shape the soft underlay beneath diffuse trails
	BlurSpread = 2.4
	BlurAlpha  = 0.35

	// HeadExtent is the fraction of a drop's length drawn ahead of its newest point
	HeadExtent = 0.25

	// HaloRings is the number of concentric fills approximating the radial glow
	HaloRings = 4
)
