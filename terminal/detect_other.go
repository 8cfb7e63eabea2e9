//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package terminal

import "os"

// IsInteractive assumes a console when stdout is a character device
func IsInteractive() bool {
	fi, err := os.Stdout.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}

func pixelSize(int) (width, height int, ok bool) {
	return 0, 0, false
}

// EmergencyReset is a no-op without termios
func EmergencyReset() {}
