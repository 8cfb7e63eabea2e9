package status

import (
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricMapReturnsCachedPointer(t *testing.T) {
	reg := NewRegistry()
	a := reg.Ints.Get("field.particles")
	a.Store(42)

	b := reg.Ints.Get("field.particles")
	assert.Same(t, a, b)
	assert.Equal(t, int64(42), b.Load())
	assert.True(t, reg.Ints.Has("field.particles"))
	assert.Equal(t, 1, reg.TotalCount())
}

func TestAtomicFloatAdd(t *testing.T) {
	var f AtomicFloat
	f.Set(1.5)
	assert.InDelta(t, 4.0, f.Add(2.5), 1e-9)
	assert.InDelta(t, 4.0, f.Get(), 1e-9)
}

func TestAtomicStringZeroValue(t *testing.T) {
	var s AtomicString
	assert.Equal(t, "", s.Load())
	s.Store("reduced")
	assert.Equal(t, "reduced", s.Load())
}

func TestMetricMapRangeSorted(t *testing.T) {
	m := NewMetricMap[atomic.Int64]()
	for _, k := range []string{"render.frames", "field.particles", "perf.fps", "field.particles"} {
		m.Get(k).Add(1)
	}

	var keys []string
	m.Range(func(key string, v *atomic.Int64) { keys = append(keys, key) })
	assert.Equal(t, []string{"field.particles", "perf.fps", "render.frames"}, keys)
	assert.Equal(t, int64(2), m.Get("field.particles").Load())
	assert.Equal(t, 3, m.Count())
}

func TestSnapshotOrder(t *testing.T) {
	reg := NewRegistry()
	reg.Strings.Get("perf.level").Store("full")
	reg.Floats.Get("perf.fps").Set(59.5)
	reg.Ints.Get("b").Store(2)
	reg.Ints.Get("a").Store(1)
	reg.Bools.Get("audio").Store(true)

	snap := reg.Snapshot()
	require.Len(t, snap, 5)
	keys := make([]string, len(snap))
	for i, s := range snap {
		keys[i] = s.Key
	}
	assert.Equal(t, []string{"audio", "a", "b", "perf.fps", "perf.level"}, keys)
	assert.Equal(t, 1.0, snap[0].Value)
	assert.True(t, snap[4].IsText)
	assert.Equal(t, "full", snap[4].Text)
}

func TestCollectorExportsEveryMetric(t *testing.T) {
	reg := NewRegistry()
	reg.Ints.Get("field.particles").Store(120)
	reg.Floats.Get("perf.fps").Set(60)
	reg.Strings.Get("perf.tier").Store("high")

	c := NewCollector(reg, "rainfield")
	assert.Equal(t, 3, testutil.CollectAndCount(c))
}

func TestHandlerServesExposition(t *testing.T) {
	reg := NewRegistry()
	reg.Ints.Get("field.particles").Store(7)
	reg.Strings.Get("perf.level").Store("reduced")

	rec := httptest.NewRecorder()
	Handler(reg, "rainfield").ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body := rec.Body.String()
	assert.Contains(t, body, "rainfield_field_particles 7")
	assert.Contains(t, body, `rainfield_perf_level_info{value="reduced"} 1`)
}
