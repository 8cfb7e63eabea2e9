package terminal

import (
	"os"

	"golang.org/x/term"
)

// Stdout reports the size of the terminal behind stdout without taking it over
type Stdout struct{}

// Size returns cols and rows, or 0,0 when stdout is not a terminal
func (Stdout) Size() (cols, rows int) {
	cols, rows, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0, 0
	}
	return cols, rows
}

// PixelSize returns the text area in pixels when the terminal reports it
func (Stdout) PixelSize() (width, height int, ok bool) {
	return pixelSize(int(os.Stdout.Fd()))
}
