package logger

import "github.com/philipp01105/gatelog/core"

// Level Re-export type and constants for convenience
type Level = core.Level

const (
	ExceptionLevel  = core.ExceptionLevel
	ErrorLevel      = core.ErrorLevel
	WarningLevel    = core.WarningLevel
	CheckpointLevel = core.CheckpointLevel
	InfoLevel       = core.InfoLevel
	TraceLevel      = core.TraceLevel
)

// ParseLevel converts a string to a Level, falling back to InfoLevel for
// unknown names.
func ParseLevel(s string) Level {
	l, _ := core.ParseLevel(s)
	return l
}
