package main

import "os"

var soundToggleSignals []os.Signal
