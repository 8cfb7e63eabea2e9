package status

import (
	"sync/atomic"
)

// Registry is the central metrics facade
// Producers cache pointers at construction; frame loops write directly to atomics
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Sample is a point-in-time copy of one metric
type Sample struct {
	Key    string
	Value  float64
	Text   string
	IsText bool
}

// Snapshot reads every metric in key order: bools, ints, floats, then strings
func (r *Registry) Snapshot() []Sample {
	out := make([]Sample, 0, r.TotalCount())
	r.Bools.Range(func(key string, b *atomic.Bool) {
		v := 0.0
		if b.Load() {
			v = 1
		}
		out = append(out, Sample{Key: key, Value: v})
	})
	r.Ints.Range(func(key string, i *atomic.Int64) {
		out = append(out, Sample{Key: key, Value: float64(i.Load())})
	})
	r.Floats.Range(func(key string, f *AtomicFloat) {
		out = append(out, Sample{Key: key, Value: f.Get()})
	})
	r.Strings.Range(func(key string, s *AtomicString) {
		out = append(out, Sample{Key: key, Text: s.Load(), IsText: true})
	})
	return out
}
