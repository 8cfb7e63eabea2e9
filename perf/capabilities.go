package perf

import (
	"strings"

	"github.com/lixenwraith/rainfield/parameter"
)

// Capabilities are the raw runtime measurements feeding the classifier
// Zero values mean "unknown" and are replaced by defaults in Normalize
type Capabilities struct {
	ReduceMotion        bool    `yaml:"reduce_motion"`
	HardwareConcurrency int     `yaml:"hardware_concurrency"`
	DeviceMemoryGB      float64 `yaml:"device_memory_gb"`
	ScreenWidth         int     `yaml:"screen_width"`
	ScreenHeight        int     `yaml:"screen_height"`
	PixelRatio          float64 `yaml:"pixel_ratio"`
	Mobile              bool    `yaml:"mobile"`
	EffectiveType       string  `yaml:"effective_type,omitempty"`
}

// Normalize substitutes documented defaults for unknown values
func (c Capabilities) Normalize() Capabilities {
	if c.HardwareConcurrency <= 0 {
		c.HardwareConcurrency = parameter.DefaultCores
	}
	if c.DeviceMemoryGB <= 0 {
		c.DeviceMemoryGB = parameter.DefaultMemoryGB
	}
	if c.ScreenWidth <= 0 || c.ScreenHeight <= 0 {
		c.ScreenWidth = parameter.DefaultScreenWidth
		c.ScreenHeight = parameter.DefaultScreenHeight
	}
	if c.PixelRatio <= 0 {
		c.PixelRatio = parameter.DefaultPixelRatio
	}
	c.EffectiveType = strings.ToLower(strings.TrimSpace(c.EffectiveType))
	return c
}

// SlowConnection reports a 2G-class link
func (c Capabilities) SlowConnection() bool {
	switch strings.ToLower(c.EffectiveType) {
	case "slow-2g", "2g":
		return true
	}
	return false
}

// Viewport is the logical drawing area in pixels
type Viewport struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// ConnectionClasses lists the accepted effective connection types
var ConnectionClasses = []string{"slow-2g", "2g", "3g", "4g"}
