//go:build !linux

package perf

import "os"

// totalMemoryGB is unavailable off linux; the classifier falls back to its default
func totalMemoryGB() (float64, bool) {
	return 0, false
}

func stdoutIsTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
