package terminal

import (
	"fmt"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// ColorMode indicates terminal color capability
type ColorMode uint8

const (
	ColorMode256       ColorMode = iota // xterm-256 palette
	ColorModeTrueColor                  // 24-bit RGB
)

func (m ColorMode) String() string {
	if m == ColorModeTrueColor {
		return "truecolor"
	}
	return "256"
}

// trueColorHints are environment variables set only by terminals with 24-bit support
var trueColorHints = []string{
	"KITTY_WINDOW_ID",
	"KONSOLE_VERSION",
	"ITERM_SESSION_ID",
	"ALACRITTY_WINDOW_ID",
	"WEZTERM_PANE",
}

// DetectColorMode reads COLORTERM, terminal-specific variables and TERM
func DetectColorMode() ColorMode {
	switch strings.ToLower(os.Getenv("COLORTERM")) {
	case "truecolor", "24bit":
		return ColorModeTrueColor
	}
	for _, name := range trueColorHints {
		if os.Getenv(name) != "" {
			return ColorModeTrueColor
		}
	}
	termName := strings.ToLower(os.Getenv("TERM"))
	for _, hint := range []string{"truecolor", "24bit", "direct"} {
		if strings.Contains(termName, hint) {
			return ColorModeTrueColor
		}
	}
	return ColorMode256
}

// ParseColorMode accepts "auto", "truecolor" or "256"; auto probes the environment
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return DetectColorMode(), nil
	case "truecolor", "24bit":
		return ColorModeTrueColor, nil
	case "256":
		return ColorMode256, nil
	default:
		return ColorMode256, fmt.Errorf("unknown color mode %q", s)
	}
}

// RGB represents a 24-bit color
type RGB struct {
	R, G, B uint8
}

// RGBBlack is the zero value black color
var RGBBlack = RGB{0, 0, 0}

// cubeLevels are the channel intensities of the 6x6x6 palette cube (indices 16-231)
var cubeLevels = [6]int{0, 95, 135, 175, 215, 255}

// cubeStep returns the cube level nearest to v; levels past 95 are 40 apart
func cubeStep(v uint8) int {
	switch {
	case v < 48:
		return 0
	case v < 115:
		return 1
	default:
		return (int(v) - 35) / 40
	}
}

func sqDist(c RGB, r, g, b int) int {
	dr, dg, db := int(c.R)-r, int(c.G)-g, int(c.B)-b
	return dr*dr + dg*dg + db*db
}

// RGBTo256 returns the nearest xterm palette index from the cube or the gray ramp (232-255)
func RGBTo256(c RGB) uint8 {
	ri, gi, bi := cubeStep(c.R), cubeStep(c.G), cubeStep(c.B)
	cube := 16 + 36*ri + 6*gi + bi
	cubeDist := sqDist(c, cubeLevels[ri], cubeLevels[gi], cubeLevels[bi])

	avg := (int(c.R) + int(c.G) + int(c.B)) / 3
	step := min(max((avg-3)/10, 0), 23)
	level := 8 + 10*step
	if sqDist(c, level, level, level) < cubeDist {
		return uint8(232 + step)
	}
	return uint8(cube)
}

// tcellColor maps c to a tcell color for the given mode
func tcellColor(c RGB, mode ColorMode) tcell.Color {
	if mode == ColorModeTrueColor {
		return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	}
	return tcell.PaletteColor(int(RGBTo256(c)))
}
