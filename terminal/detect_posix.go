//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package terminal

import (
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// IsInteractive reports whether stdout is attached to a terminal
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// pixelSize reads the window size in pixels; many terminals report zero
func pixelSize(fd int) (width, height int, ok bool) {
	if fd < 0 {
		return 0, 0, false
	}
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil || ws.Xpixel == 0 || ws.Ypixel == 0 {
		return 0, 0, false
	}
	return int(ws.Xpixel), int(ws.Ypixel), true
}

// EmergencyReset attempts to restore cooked mode after a crash
// Best-effort; errors ignored
func EmergencyReset() {
	// /dev/tty works even if stdin is redirected
	if tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0); err == nil {
		defer tty.Close()
		fd := int(tty.Fd())
		if termios, err := unix.IoctlGetTermios(fd, ioctlGetTermios); err == nil {
			termios.Lflag |= unix.ECHO | unix.ICANON | unix.ISIG | unix.IEXTEN
			termios.Iflag |= unix.ICRNL
			_ = unix.IoctlSetTermios(fd, ioctlSetTermios, termios)
		}
		_, _ = tty.WriteString("\x1b[?1049l\x1b[?25h\x1b[0m")
	}
}
