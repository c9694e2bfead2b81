//go:build !windows

package main

import (
	"os"
	"syscall"
)

// soundToggleSignals flip the button sound preference at runtime.
var soundToggleSignals = []os.Signal{syscall.SIGUSR1}
