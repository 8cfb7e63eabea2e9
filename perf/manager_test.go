package perf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/rainfield/parameter"
	"github.com/lixenwraith/rainfield/status"
)

var highEnd = StaticEnvironment{
	Caps: Capabilities{HardwareConcurrency: 8, DeviceMemoryGB: 16, ScreenWidth: 2560, ScreenHeight: 1440},
	View: Viewport{Width: 1920, Height: 1080},
}

func TestManagerStartsWithDefaults(t *testing.T) {
	m := NewManager(highEnd)
	assert.Equal(t, DefaultSettings(), m.Settings())
	assert.False(t, m.Initialized())
}

func TestInitializeIsIdempotent(t *testing.T) {
	m := NewManager(highEnd)
	var got []Settings
	m.Subscribe(func(s Settings) { got = append(got, s) })

	m.Initialize()
	m.Initialize()

	require.Len(t, got, 1)
	assert.Equal(t, LevelFull, got[0].AnimationLevel)
	assert.True(t, m.Initialized())
}

func TestInitializeHeadlessKeepsDefaults(t *testing.T) {
	env := highEnd
	env.Headless = true
	m := NewManager(env)
	calls := 0
	m.Subscribe(func(Settings) { calls++ })

	m.Initialize()

	assert.False(t, m.Initialized())
	assert.Equal(t, DefaultSettings(), m.Settings())
	assert.Zero(t, calls)

	assert.NotPanics(t, func() { NewManager(nil).Initialize() })
}

func TestUpdateSettingsMergesAndBroadcasts(t *testing.T) {
	m := NewManager(highEnd)
	m.Initialize()

	var got Settings
	unsubscribe := m.Subscribe(func(s Settings) { got = s })
	m.UpdateSettings(func(s *Settings) { s.EnableBlur = false })

	assert.False(t, got.EnableBlur)
	assert.Equal(t, LevelFull, got.AnimationLevel, "untouched fields are preserved")
	assert.Equal(t, got, m.Settings())

	unsubscribe()
	m.UpdateSettings(func(s *Settings) { s.EnableBlur = true })
	assert.False(t, got.EnableBlur, "unsubscribed listener is not called")
}

func TestSettingsSnapshotIsACopy(t *testing.T) {
	m := NewManager(highEnd)
	m.Initialize()
	s := m.Settings()
	s.ParticleBudget = 1
	assert.Equal(t, 150, m.Settings().ParticleBudget)
}

func TestSubscribersRunInOrder(t *testing.T) {
	m := NewManager(highEnd)
	var order []int
	m.Subscribe(func(Settings) { order = append(order, 1) })
	m.Subscribe(func(Settings) { order = append(order, 2) })
	m.UpdateSettings(func(*Settings) {})
	assert.Equal(t, []int{1, 2}, order)
}

func TestResizeRecomputesBudget(t *testing.T) {
	m := NewManager(highEnd)
	m.Initialize()
	calls := 0
	m.Subscribe(func(Settings) { calls++ })

	m.Resize(Viewport{Width: 960, Height: 540})
	assert.Equal(t, 75, m.Settings().ParticleBudget)
	assert.Equal(t, 1, calls)

	m.Resize(Viewport{Width: 960, Height: 800})
	assert.Equal(t, 1, calls, "unchanged budget does not broadcast")
	assert.Equal(t, Viewport{Width: 960, Height: 800}, m.Viewport())
}

func TestManagerPublishesStatus(t *testing.T) {
	reg := status.NewRegistry()
	m := NewManager(highEnd, WithStatus(reg))
	m.Initialize()

	assert.Equal(t, "high", reg.Strings.Get(parameter.StatTier).Load())
	assert.Equal(t, "full", reg.Strings.Get(parameter.StatLevel).Load())
	assert.Equal(t, int64(150), reg.Ints.Get(parameter.StatBudget).Load())
}
