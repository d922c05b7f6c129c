// Package logger is a thin leveled wrapper around the standard log package.
// All output goes to stderr so that command stdout stays machine-readable.
//
// Verbosity levels, in increasing order: Error < Info < Debug < Trace.
package logger

import (
	"log"
	"os"
)

// Level is a logging verbosity level; higher values log more.
type Level int

const (
	Error Level = iota
	Info
	Debug
	Trace
)

var current Level = Info

func init() {
	log.SetOutput(os.Stderr)
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}

// SetVerbosity sets the global verbosity. Typically called once after flag
// parsing.
func SetVerbosity(v int) {
	current = Level(v)
}

func logf(l Level, prefix, format string, args ...any) {
	if current >= l {
		log.Printf(prefix+format, args...)
	}
}

// Errorf logs failures that require attention.
func Errorf(format string, args ...any) {
	logf(Error, "[ERROR] ", format, args...)
}

// Infof logs major lifecycle events.
func Infof(format string, args ...any) {
	logf(Info, "[INFO]  ", format, args...)
}

// Debugf logs diagnostic detail.
func Debugf(format string, args ...any) {
	logf(Debug, "[DEBUG] ", format, args...)
}

// Tracef logs fine-grained execution traces.
func Tracef(format string, args ...any) {
	logf(Trace, "[TRACE] ", format, args...)
}
