package field

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/rainfield/parameter"
)

const frameMs = 16.0

func assertInBounds(t *testing.T, f *Field) {
	t.Helper()
	w, h := f.Size()
	for i, p := range f.Particles() {
		require.GreaterOrEqualf(t, p.X, -parameter.BufferMargin, "particle %d x", i)
		require.LessOrEqualf(t, p.X, w+parameter.BufferMargin, "particle %d x", i)
		require.GreaterOrEqualf(t, p.Y, -parameter.BufferMargin, "particle %d y", i)
		require.LessOrEqualf(t, p.Y, h+parameter.BufferMargin, "particle %d y", i)
		require.LessOrEqualf(t, p.History.Len(), f.HistoryLimit(), "particle %d history", i)
	}
}

func TestNewFillsBudget(t *testing.T) {
	f := New(200, 100, 50, WithSeed(1))

	require.Equal(t, 50, f.Len())
	assertInBounds(t, f)
	for _, p := range f.Particles() {
		assert.Zero(t, p.History.Len())
		assert.Equal(t, p.X, p.OriginalX)
		assert.InDelta(t, p.BaseAngle, p.CurrentAngle, 1e-12)
	}
}

func TestStepKeepsParticlesInBounds(t *testing.T) {
	f := New(160, 90, 80, WithSeed(7))
	f.SetPointer(60, 40)

	now := 0.0
	for range 2000 {
		now += frameMs
		f.Step(now)
		assertInBounds(t, f)
	}
}

func TestRespawnClearsHistory(t *testing.T) {
	f := New(100, 100, 1, WithSeed(3))
	for i := 1; i <= 5; i++ {
		f.Step(float64(i) * frameMs)
	}
	p := &f.Particles()[0]
	if p.History.Len() == 0 {
		// respawned during warm-up; one more step gives it a point
		f.Step(6 * frameMs)
	}
	require.NotZero(t, p.History.Len())

	p.Y = 100 + parameter.LengthMax + 50
	f.Step(7 * frameMs)

	assert.Zero(t, p.History.Len())
	assert.LessOrEqual(t, p.Y, 0.0)
	assert.Greater(t, p.Y, -parameter.SpawnHeadroom-1e-9)
	assert.Equal(t, p.X, p.OriginalX)
}

func TestSetHistoryLimitTrims(t *testing.T) {
	f := New(300, 300, 20, WithSeed(11))
	for i := 1; i <= 30; i++ {
		f.Step(float64(i) * frameMs)
	}

	f.SetHistoryLimit(parameter.HistoryMinimal)
	assert.Equal(t, parameter.HistoryMinimal, f.HistoryLimit())
	for _, p := range f.Particles() {
		assert.LessOrEqual(t, p.History.Len(), parameter.HistoryMinimal)
	}

	f.SetHistoryLimit(99)
	assert.Equal(t, parameter.MaxHistory, f.HistoryLimit())
	f.SetHistoryLimit(0)
	assert.Equal(t, 1, f.HistoryLimit())
}

func TestSetBudgetShrinkKeepsPrefix(t *testing.T) {
	f := New(400, 200, 50, WithSeed(5))
	for i := 1; i <= 10; i++ {
		f.Step(float64(i) * frameMs)
	}
	before := make([]Particle, 10)
	copy(before, f.Particles()[:10])

	f.SetBudget(10)
	require.Equal(t, 10, f.Len())
	assert.Equal(t, before, f.Particles())

	f.SetBudget(40)
	require.Equal(t, 40, f.Len())
	assert.Equal(t, before, f.Particles()[:10])
	for _, p := range f.Particles()[10:] {
		assert.Zero(t, p.History.Len(), "grown slots start fresh")
	}
	assertInBounds(t, f)

	f.SetBudget(-3)
	assert.Zero(t, f.Len())
	f.Step(frameMs)
}

func TestSeedIsDeterministic(t *testing.T) {
	a := New(320, 180, 30, WithSeed(42))
	b := New(320, 180, 30, WithSeed(42))
	for i := 1; i <= 50; i++ {
		a.Step(float64(i) * frameMs)
		b.Step(float64(i) * frameMs)
	}
	assert.Equal(t, a.Particles(), b.Particles())
}

func TestSpawnDistribution(t *testing.T) {
	f := New(1000, 500, 4000, WithSeed(9))
	span := 1000 + parameter.SpawnMargin

	left := 0
	kinds := map[TrailKind]int{}
	for _, p := range f.Particles() {
		if p.X < span/2 {
			left++
		}
		kinds[p.Trail]++
		assert.GreaterOrEqual(t, p.Opacity, parameter.OpacityMin)
		assert.LessOrEqual(t, p.Opacity, parameter.OpacityMin+parameter.OpacityRange)
		assert.GreaterOrEqual(t, p.Length, parameter.LengthMin)
		assert.LessOrEqual(t, p.Length, parameter.LengthMax)
	}

	assert.Greater(t, float64(left)/4000, 0.6, "spawns should cluster on the left")
	assert.Len(t, kinds, 3)
	assert.Greater(t, kinds[TrailTapered], kinds[TrailSharp])
}

func TestOpacityFadesRightward(t *testing.T) {
	f := New(1000, 500, 0, WithSeed(1))
	assert.Greater(t, f.opacityAt(0), f.opacityAt(500))
	assert.Greater(t, f.opacityAt(500), f.opacityAt(1000))
	assert.InDelta(t, parameter.OpacityMin+parameter.OpacityRange, f.opacityAt(-10), 1e-12)
}

func TestPointerDeflectsThenParticleReturns(t *testing.T) {
	f := New(1000, 1000, 1, WithSeed(21))
	p := &f.Particles()[0]
	p.X, p.Y, p.OriginalX = 100, 50, 100

	now := 0.0
	for range 10 {
		now += frameMs
		f.SetPointer(p.X-5, p.Y)
		f.Step(now)
	}
	require.Greater(t, p.X-p.OriginalX, 2.5, "pointer on the left pushes the drop right")

	f.ParkPointer()
	x, y, live := f.Pointer()
	assert.False(t, live)
	assert.Equal(t, parameter.ParkedPointer, x)
	assert.Equal(t, parameter.ParkedPointer, y)

	for range 100 {
		now += frameMs
		f.Step(now)
	}
	assert.Less(t, math.Abs(p.X-p.OriginalX), 2.0, "spring pulls the drop back to its path")
}

func TestPointerOnParticleStaysFinite(t *testing.T) {
	f := New(200, 200, 1, WithSeed(2))
	p := &f.Particles()[0]
	p.X, p.Y, p.OriginalX = 50, 50, 50

	f.SetPointer(50, 50)
	f.Step(frameMs)

	assert.False(t, math.IsNaN(p.X))
	assert.False(t, math.IsNaN(p.Y))
	assert.False(t, math.IsNaN(p.CurrentAngle))
}

func TestResizeRecyclesOutsiders(t *testing.T) {
	f := New(800, 400, 60, WithSeed(13))
	f.Resize(100, 50)
	f.Step(frameMs)
	assertInBounds(t, f)
}

func TestHistoryRing(t *testing.T) {
	var h History
	for i := range 15 {
		h.Push(Point{X: float64(i)}, parameter.MaxHistory)
	}
	require.Equal(t, parameter.MaxHistory, h.Len())
	assert.Equal(t, 5.0, h.At(0).X)
	head, ok := h.Head()
	require.True(t, ok)
	assert.Equal(t, 14.0, head.X)

	h.Push(Point{X: 15}, 4)
	require.Equal(t, 4, h.Len())
	assert.Equal(t, 12.0, h.At(0).X)
	assert.Equal(t, 15.0, h.At(3).X)

	h.Reset()
	_, ok = h.Head()
	assert.False(t, ok)
}

func TestTrailKindString(t *testing.T) {
	assert.Equal(t, "sharp", TrailSharp.String())
	assert.Equal(t, "tapered", TrailTapered.String())
	assert.Equal(t, "diffuse", TrailDiffuse.String())
	assert.Equal(t, "trail(9)", TrailKind(9).String())
}
