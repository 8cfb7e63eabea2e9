package engine

import (
	"sync"
	"time"
)

// Clock is the time source consumed by the frame loop and its callbacks
type Clock interface {
	Now() time.Time
}

// WallClock reads the system monotonic clock
type WallClock struct{}

func (WallClock) Now() time.Time { return time.Now() }

// ManualClock only moves when told to; frame loop tests and headless replays drive it
type ManualClock struct {
	mu  sync.RWMutex
	now time.Time
}

// NewManualClock creates a clock stopped at start
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

// Advance moves the clock forward by d; negative durations are ignored
func (c *ManualClock) Advance(d time.Duration) {
	if d <= 0 {
		return
	}
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}
