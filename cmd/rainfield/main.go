package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/lixenwraith/rainfield/terminal"
)

// exit is swapped in tests
var exit = os.Exit

func main() {
	// Restore the terminal before printing if anything below panics
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mRAINFIELD CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	if err := newRootCmd().Execute(); err != nil {
		exit(1)
	}
}
