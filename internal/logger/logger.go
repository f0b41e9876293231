// Package logger provides process-wide logging for pagescan.
// Debug, Info and Section output appears only in verbose mode (--verbose)
// and traces the search pipeline. Warnings are always written.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Debug prints pipeline detail in verbose mode.
func Debug(format string, args ...any) {
	write(false, "[DEBUG] "+format+"\n", args...)
}

// Info prints a summary line in verbose mode.
func Info(format string, args ...any) {
	write(false, "[INFO] "+format+"\n", args...)
}

// Section prints a section header in verbose mode.
func Section(name string) {
	write(false, "\n=== %s ===\n", name)
}

// Warn prints a warning regardless of verbose mode.
func Warn(format string, args ...any) {
	write(true, "[WARN] "+format+"\n", args...)
}

func write(always bool, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if always || verbose {
		fmt.Fprintf(output, format, args...)
	}
}
