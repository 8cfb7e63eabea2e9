//go:build linux

package perf

import (
	"math"
	"os"

	"golang.org/x/sys/unix"
)

// totalMemoryGB reads installed RAM, rounded down to a power of two like navigator.deviceMemory
func totalMemoryGB() (float64, bool) {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return 0, false
	}
	bytes := float64(info.Totalram) * float64(info.Unit)
	if bytes <= 0 {
		return 0, false
	}
	gb := bytes / (1 << 30)
	if gb < 0.25 {
		return 0.25, true
	}
	return math.Exp2(math.Floor(math.Log2(gb))), true
}

func stdoutIsTerminal() bool {
	_, err := unix.IoctlGetTermios(int(os.Stdout.Fd()), unix.TCGETS)
	return err == nil
}
