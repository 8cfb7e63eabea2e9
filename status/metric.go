package status

import (
	"math"
	"slices"
	"sync"
	"sync/atomic"
)

// AtomicFloat is a float64 stored as its IEEE bits; the zero value reads 0
type AtomicFloat struct {
	bits atomic.Uint64
}

func (f *AtomicFloat) Set(v float64) { f.bits.Store(math.Float64bits(v)) }

func (f *AtomicFloat) Get() float64 { return math.Float64frombits(f.bits.Load()) }

// Add applies delta with a CAS loop and returns the result
func (f *AtomicFloat) Add(delta float64) float64 {
	for {
		old := f.bits.Load()
		next := math.Float64frombits(old) + delta
		if f.bits.CompareAndSwap(old, math.Float64bits(next)) {
			return next
		}
	}
}

// AtomicString holds a short label such as a tier or level name
type AtomicString struct {
	v atomic.Pointer[string]
}

func (s *AtomicString) Store(v string) { s.v.Store(&v) }

func (s *AtomicString) Load() string {
	if p := s.v.Load(); p != nil {
		return *p
	}
	return ""
}

// MetricMap hands out one stable *T per key
// Producers look a pointer up once and then write it without touching the map
type MetricMap[T any] struct {
	mu    sync.RWMutex
	items map[string]*T
	keys  []string // sorted
}

func NewMetricMap[T any]() *MetricMap[T] {
	return &MetricMap[T]{items: make(map[string]*T)}
}

// Get returns the pointer for key, allocating it on first use
func (m *MetricMap[T]) Get(key string) *T {
	m.mu.RLock()
	ptr, ok := m.items[key]
	m.mu.RUnlock()
	if ok {
		return ptr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if ptr, ok := m.items[key]; ok {
		return ptr
	}
	ptr = new(T)
	m.items[key] = ptr
	i, _ := slices.BinarySearch(m.keys, key)
	m.keys = slices.Insert(m.keys, i, key)
	return ptr
}

func (m *MetricMap[T]) Has(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.items[key]
	return ok
}

// Range visits metrics in key order
func (m *MetricMap[T]) Range(fn func(key string, ptr *T)) {
	m.mu.RLock()
	keys := slices.Clone(m.keys)
	items := make([]*T, len(keys))
	for i, k := range keys {
		items[i] = m.items[k]
	}
	m.mu.RUnlock()

	for i, k := range keys {
		fn(k, items[i])
	}
}

func (m *MetricMap[T]) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.keys)
}
