package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/rainfield/parameter"
)

// FrameID identifies a pending frame callback
type FrameID uint64

// FrameCallback receives the timestamp of the frame it runs in
type FrameCallback func(now time.Time)

// Scheduler is the frame request surface used by animation consumers
type Scheduler interface {
	RequestFrame(cb FrameCallback) FrameID
	CancelFrame(id FrameID)
}

// LongTaskSource is implemented by schedulers that can time their own tasks
type LongTaskSource interface {
	ObserveLongTasks(fn func(d time.Duration)) (cancel func())
}

type frameEntry struct {
	id FrameID
	cb FrameCallback
}

// FrameLoop is a single-goroutine cooperative scheduler
// Posted tasks and frame callbacks all execute on the goroutine running Run (or the caller of Step),
// so consumers never share state across goroutines
type FrameLoop struct {
	clock     Clock
	interval  time.Duration
	threshold time.Duration

	mu        sync.Mutex
	nextID    FrameID
	pending   []frameEntry
	tasks     []func()
	observers map[uint64]func(time.Duration)
	nextObs   uint64

	wake    chan struct{}
	running atomic.Bool
	frames  atomic.Uint64
}

// NewFrameLoop creates a loop ticking at interval; zero interval uses the display default
func NewFrameLoop(clock Clock, interval time.Duration) *FrameLoop {
	if clock == nil {
		clock = WallClock{}
	}
	if interval <= 0 {
		interval = parameter.FrameUpdateInterval
	}
	return &FrameLoop{
		clock:     clock,
		interval:  interval,
		threshold: parameter.LongTaskThreshold,
		tasks:     make([]func(), 0, parameter.TaskQueueSize),
		observers: make(map[uint64]func(time.Duration)),
		wake:      make(chan struct{}, 1),
	}
}

// Now returns the loop clock time
func (l *FrameLoop) Now() time.Time {
	return l.clock.Now()
}

// RequestFrame schedules cb to run once on the next frame
func (l *FrameLoop) RequestFrame(cb FrameCallback) FrameID {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextID++
	l.pending = append(l.pending, frameEntry{id: l.nextID, cb: cb})
	return l.nextID
}

// CancelFrame drops a pending callback; unknown or already-run ids are ignored
func (l *FrameLoop) CancelFrame(id FrameID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.pending {
		if l.pending[i].id == id {
			l.pending = append(l.pending[:i], l.pending[i+1:]...)
			return
		}
	}
}

// Pending returns the number of frame callbacks waiting for the next frame
func (l *FrameLoop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending)
}

// Post queues a task for the loop goroutine, ahead of the next frame
// Safe to call from any goroutine
func (l *FrameLoop) Post(task func()) {
	l.mu.Lock()
	l.tasks = append(l.tasks, task)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// ObserveLongTasks registers fn for every task or frame callback exceeding the long-task threshold
func (l *FrameLoop) ObserveLongTasks(fn func(d time.Duration)) (cancel func()) {
	l.mu.Lock()
	l.nextObs++
	id := l.nextObs
	l.observers[id] = fn
	l.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.observers, id)
			l.mu.Unlock()
		})
	}
}

// Frames returns the number of completed frame steps
func (l *FrameLoop) Frames() uint64 {
	return l.frames.Load()
}

// Step drains posted tasks, then runs every frame callback requested before the step
// Callbacks requested while the step runs are deferred to the next step
func (l *FrameLoop) Step() {
	l.drainTasks()

	l.mu.Lock()
	batch := l.pending
	l.pending = nil
	l.mu.Unlock()

	if len(batch) > 0 {
		now := l.clock.Now()
		for _, e := range batch {
			l.timed(func() { e.cb(now) })
		}
	}
	l.frames.Add(1)
}

// Run ticks the loop until ctx is done
// A slow frame makes the ticker drop ticks, which is what the frame rate sampler measures
func (l *FrameLoop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return nil
	}
	defer l.running.Store(false)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-l.wake:
			l.drainTasks()
		case <-ticker.C:
			l.Step()
		}
	}
}

func (l *FrameLoop) drainTasks() {
	l.mu.Lock()
	if len(l.tasks) == 0 {
		l.mu.Unlock()
		return
	}
	tasks := l.tasks
	l.tasks = make([]func(), 0, parameter.TaskQueueSize)
	l.mu.Unlock()

	for _, task := range tasks {
		l.timed(task)
	}
}

// timed runs fn and reports it to long-task observers when it overruns the threshold
func (l *FrameLoop) timed(fn func()) {
	start := l.clock.Now()
	fn()
	d := l.clock.Now().Sub(start)
	if d <= l.threshold {
		return
	}

	l.mu.Lock()
	observers := make([]func(time.Duration), 0, len(l.observers))
	for _, obs := range l.observers {
		observers = append(observers, obs)
	}
	l.mu.Unlock()

	for _, obs := range observers {
		obs(d)
	}
}
