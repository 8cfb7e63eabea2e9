package perf

import (
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/rainfield/engine"
	"github.com/lixenwraith/rainfield/parameter"
)

// frameSampler counts frames on its own frame callback chain and reports FPS once per window
type frameSampler struct {
	m     *Manager
	sched engine.Scheduler

	mu      sync.Mutex
	id      engine.FrameID
	stopped bool

	frames      int
	windowStart time.Time
}

func (fs *frameSampler) tick(now time.Time) {
	fs.mu.Lock()
	if fs.stopped {
		fs.mu.Unlock()
		return
	}

	fps := -1
	if fs.windowStart.IsZero() {
		fs.windowStart = now
	} else {
		fs.frames++
		if elapsed := now.Sub(fs.windowStart); elapsed >= parameter.SampleInterval {
			fps = int(math.Round(float64(fs.frames) * float64(time.Second) / float64(elapsed)))
			fs.frames = 0
			fs.windowStart = now
		}
	}
	fs.id = fs.sched.RequestFrame(fs.tick)
	fs.mu.Unlock()

	if fps >= 0 {
		fs.m.ReportFrameRate(fps)
	}
}

func (fs *frameSampler) stop() {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if fs.stopped {
		return
	}
	fs.stopped = true
	fs.sched.CancelFrame(fs.id)
}

// StartMonitoring runs the frame rate sampler on sched and, when sched can time its tasks,
// observes long tasks. The returned stop detaches both
func (m *Manager) StartMonitoring(sched engine.Scheduler) (stop func()) {
	fs := &frameSampler{m: m, sched: sched}
	fs.mu.Lock()
	fs.id = sched.RequestFrame(fs.tick)
	fs.mu.Unlock()

	cancelLongTasks := func() {}
	if src, ok := sched.(engine.LongTaskSource); ok {
		cancelLongTasks = src.ObserveLongTasks(m.ReportLongTask)
	} else {
		m.log.Debug("long task observation unavailable")
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			fs.stop()
			cancelLongTasks()
		})
	}
}

// ReportFrameRate feeds one FPS sample into the degradation state machine
// A sample under the floor drops exactly one level; there is no promotion back up
func (m *Manager) ReportFrameRate(fps int) {
	m.statFPS.Set(float64(fps))

	m.mu.Lock()
	if fps >= parameter.MinAcceptableFPS || m.settings.AnimationLevel == LevelMinimal {
		m.mu.Unlock()
		return
	}

	from := m.settings.AnimationLevel
	switch from {
	case LevelFull:
		m.settings.AnimationLevel = LevelReduced
		m.settings.ParticleBudget = int(math.Floor(float64(m.settings.ParticleBudget) * parameter.DowngradeBudgetFactor))
		m.settings.EnableComplexAnimations = false
	default:
		m.settings.AnimationLevel = LevelMinimal
		m.settings.ParticleBudget = 0
		m.settings.EnableParticles = false
		m.settings.EnableBlur = false
		m.settings.EnableComplexAnimations = false
	}
	s := m.settings
	m.mu.Unlock()

	m.statDowngrades.Add(1)
	m.log.Info("animation level downgraded",
		zap.Int("fps", fps),
		zap.Stringer("from", from),
		zap.Stringer("to", s.AnimationLevel),
		zap.Int("budget", s.ParticleBudget),
	)
	m.broadcast(s)
}

// ReportLongTask trims the particle budget after a main-loop stall
// It is not coordinated with the FPS check; both may cut within the same window
func (m *Manager) ReportLongTask(d time.Duration) {
	if d <= parameter.LongTaskThreshold {
		return
	}
	m.statLongTasks.Add(1)

	m.mu.Lock()
	if m.settings.ParticleBudget <= parameter.LongTaskBudgetFloor {
		m.mu.Unlock()
		return
	}
	m.settings.ParticleBudget = int(math.Floor(float64(m.settings.ParticleBudget) * parameter.LongTaskBudgetFactor))
	s := m.settings
	m.mu.Unlock()

	m.log.Debug("long task budget cut", zap.Duration("task", d), zap.Int("budget", s.ParticleBudget))
	m.broadcast(s)
}
