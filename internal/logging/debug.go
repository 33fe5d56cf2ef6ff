package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
)

var (
	mu      sync.Mutex
	output  io.Writer = os.Stderr
	verbose atomic.Bool
)

// SetOutput redirects log output and returns the previous writer.
// The full-screen page points this at a log file so messages cannot
// corrupt the terminal.
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := output
	output = w
	return prev
}

// SetVerbose turns debug output on regardless of TB_DEBUG
func SetVerbose(v bool) {
	verbose.Store(v)
}

// DebugEnabled returns true if debug mode is enabled via TB_DEBUG environment
// variable or SetVerbose
func DebugEnabled() bool {
	return verbose.Load() || os.Getenv("TB_DEBUG") != ""
}

// Debugf prints a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		write("debug: " + fmt.Sprintf(format, args...))
	}
}

// Debugln prints a debug message followed by a newline only if debug mode is enabled
func Debugln(args ...interface{}) {
	if DebugEnabled() {
		write("debug: " + fmt.Sprintln(args...))
	}
}

// Warnf prints a formatted warning regardless of debug mode.
func Warnf(format string, args ...interface{}) {
	write("warning: " + fmt.Sprintf(format, args...))
}

func write(msg string) {
	if len(msg) == 0 || msg[len(msg)-1] != '\n' {
		msg += "\n"
	}
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprint(output, msg)
}
