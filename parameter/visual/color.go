package visual

import (
	"github.com/lixenwraith/rainfield/terminal"
)

// terminal.RGB color definitions for the rain field and its overlays
var (
	RgbBlack = terminal.RGB{R: 0, G: 0, B: 0}

	// Sharp trail: bright, high contrast
	RgbSharpTail = terminal.RGB{R: 110, G: 140, B: 185}
	RgbSharpHead = terminal.RGB{R: 235, G: 245, B: 255}

	// Tapered trail: cool blue fading to transparent
	RgbTaperTail = terminal.RGB{R: 60, G: 90, B: 140}
	RgbTaperHead = terminal.RGB{R: 175, G: 200, B: 240}

	// Diffuse trail: soft and dim
	RgbDiffuseTail = terminal.RGB{R: 50, G: 70, B: 110}
	RgbDiffuseHead = terminal.RGB{R: 140, G: 160, B: 205}

	// Minimal fidelity single stroke
	RgbSimpleStroke = terminal.RGB{R: 130, G: 150, B: 190}

	// Pointer halo
	RgbHalo = terminal.RGB{R: 120, G: 170, B: 255}

	// HUD overlay
	RgbHudText  = terminal.RGB{R: 200, G: 210, B: 230}
	RgbHudWarn  = terminal.RGB{R: 255, G: 170, B: 60}
	RgbHudPanel = terminal.RGB{R: 20, G: 24, B: 36}
)
