package audio

import (
	"math"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/rainfield/status"
)

const (
	// hissCutoff is the one-pole low-pass coefficient shaping white noise into rain hiss
	hissCutoff = 0.08
	hissGain   = 0.5

	// dropRate is the droplet tick rate per second at full intensity
	dropRate    = 40.0
	dropGain    = 0.18
	dropDecay   = 0.9991
	dropFreqMin = 1400.0
	dropFreqMax = 4200.0
)

// RainGenerator streams low-passed noise with sparse droplet ticks
// Intensity may be changed from any goroutine while the speaker streams
type RainGenerator struct {
	sr        beep.SampleRate
	pos       int
	seed      uint32
	lp        float64
	intensity status.AtomicFloat

	dropEnv   float64
	dropFreq  float64
	dropStart int
}

// NewRainGenerator creates a silent generator; raise intensity to hear it
func NewRainGenerator(sr beep.SampleRate, seed uint32) *RainGenerator {
	if seed == 0 {
		seed = 1
	}
	return &RainGenerator{sr: sr, seed: seed}
}

// SetIntensity sets loudness and droplet density, clamped to 0..1
func (g *RainGenerator) SetIntensity(v float64) {
	g.intensity.Set(math.Max(0, math.Min(1, v)))
}

// Intensity returns the current intensity
func (g *RainGenerator) Intensity() float64 {
	return g.intensity.Get()
}

// next returns a uniform value in [0, 1)
func (g *RainGenerator) next() float64 {
	// xorshift32
	g.seed ^= g.seed << 13
	g.seed ^= g.seed >> 17
	g.seed ^= g.seed << 5
	return float64(g.seed) / float64(math.MaxUint32+1)
}

func (g *RainGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	level := g.intensity.Get()
	dropChance := level * dropRate / float64(g.sr)

	for i := range samples {
		noise := g.next()*2 - 1
		g.lp += hissCutoff * (noise - g.lp)
		sample := g.lp * hissGain * level

		if g.dropEnv < 1e-3 && g.next() < dropChance {
			g.dropEnv = 1
			g.dropFreq = dropFreqMin + g.next()*(dropFreqMax-dropFreqMin)
			g.dropStart = g.pos
		}
		if g.dropEnv >= 1e-3 {
			t := float64(g.pos-g.dropStart) / float64(g.sr)
			sample += dropGain * g.dropEnv * math.Sin(2*math.Pi*g.dropFreq*t)
			g.dropEnv *= dropDecay
		}

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *RainGenerator) Err() error {
	return nil
}
