package parameter

import "time"

// Frame Loop & Engine Timing
const (
	// FrameUpdateInterval is the display refresh interval driving the frame loop (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// LongTaskThreshold is the task duration above which the frame loop reports a long task
	LongTaskThreshold = 50 * time.Millisecond

	// TaskQueueSize is the initial capacity of the posted task queue
	TaskQueueSize = 64
)
