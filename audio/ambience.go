package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"
)

const (
	sampleRate = beep.SampleRate(48000)
)

// Ambience plays a rain loop whose intensity follows the particle field
type Ambience struct {
	mu          sync.Mutex
	log         *zap.Logger
	rain        *RainGenerator
	ctrl        *beep.Ctrl
	mixer       *beep.Mixer
	initialized bool
}

// NewAmbience creates a paused ambience; nothing is audible until Initialize and SetEnabled
func NewAmbience(log *zap.Logger) *Ambience {
	if log == nil {
		log = zap.NewNop()
	}
	rain := NewRainGenerator(sampleRate, uint32(time.Now().UnixNano()))
	ctrl := &beep.Ctrl{Streamer: rain, Paused: true}
	mixer := &beep.Mixer{}
	mixer.Add(ctrl)
	return &Ambience{
		log:   log,
		rain:  rain,
		ctrl:  ctrl,
		mixer: mixer,
	}
}

// Initialize opens the audio device and starts streaming the mixer
func (a *Ambience) Initialize() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return fmt.Errorf("audio init: %w", err)
	}

	speaker.Play(a.mixer)
	a.initialized = true
	a.log.Info("audio ambience started", zap.Int("sample_rate", int(sampleRate)))
	return nil
}

// SetEnabled pauses or resumes the rain loop
func (a *Ambience) SetEnabled(on bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.withSpeaker(func() { a.ctrl.Paused = !on })
}

// Enabled reports whether the loop is playing
func (a *Ambience) Enabled() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	var on bool
	a.withSpeaker(func() { on = !a.ctrl.Paused })
	return on
}

// SetIntensity scales loudness and droplet density, 0..1
func (a *Ambience) SetIntensity(v float64) {
	a.rain.SetIntensity(v)
}

// Close pauses and drops every streamer
func (a *Ambience) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.initialized {
		return
	}

	a.withSpeaker(func() {
		a.ctrl.Paused = true
		a.mixer.Clear()
	})
	// Note: beep doesn't provide a Close() method for speaker,
	// but clearing all streamers ensures no audio artifacts
	a.initialized = false
}

// withSpeaker guards streamer state against the speaker goroutine once it is running
func (a *Ambience) withSpeaker(fn func()) {
	if a.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	fn()
}
