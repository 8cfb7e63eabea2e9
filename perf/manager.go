package perf

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/lixenwraith/rainfield/parameter"
	"github.com/lixenwraith/rainfield/status"
)

// Listener receives the full settings value after every change
type Listener func(Settings)

type subscriber struct {
	id uint64
	fn Listener
}

// Option configures a Manager
type Option func(*Manager)

// WithLogger sets the manager logger
func WithLogger(log *zap.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// WithStatus publishes settings and monitor readings into reg
func WithStatus(reg *status.Registry) Option {
	return func(m *Manager) {
		if reg != nil {
			m.stats = reg
		}
	}
}

// Manager owns the settings value, classifies the environment and degrades fidelity at runtime
// It is constructed explicitly and handed to consumers; there is no package-level instance
type Manager struct {
	env   Environment
	log   *zap.Logger
	stats *status.Registry

	mu          sync.Mutex
	settings    Settings
	viewport    Viewport
	initialized bool
	subs        []subscriber
	nextSub     uint64

	statFPS        *status.AtomicFloat
	statTier       *status.AtomicString
	statLevel      *status.AtomicString
	statBudget     *atomic.Int64
	statDowngrades *atomic.Int64
	statLongTasks  *atomic.Int64
}

// NewManager creates a manager holding DefaultSettings until Initialize runs
func NewManager(env Environment, opts ...Option) *Manager {
	m := &Manager{
		env:      env,
		log:      zap.NewNop(),
		stats:    status.NewRegistry(),
		settings: DefaultSettings(),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.statFPS = m.stats.Floats.Get(parameter.StatFPS)
	m.statTier = m.stats.Strings.Get(parameter.StatTier)
	m.statLevel = m.stats.Strings.Get(parameter.StatLevel)
	m.statBudget = m.stats.Ints.Get(parameter.StatBudget)
	m.statDowngrades = m.stats.Ints.Get(parameter.StatDowngrades)
	m.statLongTasks = m.stats.Ints.Get(parameter.StatLongTasks)
	m.publish(m.settings)
	return m
}

// Initialize classifies the environment once
// Headless environments keep the defaults and stay uninitialized so a later interactive call can run
func (m *Manager) Initialize() {
	m.mu.Lock()
	if m.initialized || m.env == nil || !m.env.Interactive() {
		m.mu.Unlock()
		return
	}

	caps := m.env.Capabilities()
	vp := m.env.Viewport()
	m.settings = Detect(caps, vp)
	m.viewport = vp
	m.initialized = true
	s := m.settings
	m.mu.Unlock()

	m.log.Info("performance settings detected",
		zap.Int("score", Score(caps)),
		zap.Stringer("tier", s.DeviceTier),
		zap.Stringer("level", s.AnimationLevel),
		zap.Int("budget", s.ParticleBudget),
		zap.Bool("reduce_motion", s.ReduceMotion),
	)
	m.broadcast(s)
}

// Initialized reports whether classification has run
func (m *Manager) Initialized() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initialized
}

// Settings returns a snapshot of the current settings
func (m *Manager) Settings() Settings {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.settings
}

// UpdateSettings applies patch to the settings and broadcasts the result
func (m *Manager) UpdateSettings(patch func(*Settings)) {
	m.mu.Lock()
	patch(&m.settings)
	s := m.settings
	m.mu.Unlock()

	m.broadcast(s)
}

// Subscribe registers fn for every settings change
// Listeners run synchronously on the goroutine that caused the change, in subscription order
func (m *Manager) Subscribe(fn Listener) (unsubscribe func()) {
	m.mu.Lock()
	m.nextSub++
	id := m.nextSub
	m.subs = append(m.subs, subscriber{id: id, fn: fn})
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		for i := range m.subs {
			if m.subs[i].id == id {
				m.subs = append(m.subs[:i], m.subs[i+1:]...)
				return
			}
		}
	}
}

// Resize recomputes the budget for the current tier and level at the new viewport width
func (m *Manager) Resize(vp Viewport) {
	m.mu.Lock()
	m.viewport = vp
	budget := Budget(m.settings.DeviceTier, m.settings.AnimationLevel, vp.Width)
	if budget == m.settings.ParticleBudget {
		m.mu.Unlock()
		return
	}
	m.settings.ParticleBudget = budget
	s := m.settings
	m.mu.Unlock()

	m.log.Debug("particle budget resized", zap.Int("width", vp.Width), zap.Int("budget", budget))
	m.broadcast(s)
}

// Viewport returns the last viewport seen by Initialize or Resize
func (m *Manager) Viewport() Viewport {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.viewport
}

// broadcast publishes telemetry and notifies listeners outside the lock
func (m *Manager) broadcast(s Settings) {
	m.publish(s)

	m.mu.Lock()
	subs := make([]subscriber, len(m.subs))
	copy(subs, m.subs)
	m.mu.Unlock()

	for _, sub := range subs {
		sub.fn(s)
	}
}

func (m *Manager) publish(s Settings) {
	m.statTier.Store(s.DeviceTier.String())
	m.statLevel.Store(s.AnimationLevel.String())
	m.statBudget.Store(int64(s.ParticleBudget))
}
