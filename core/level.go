package core

import "strings"

// Level represents the severity of a log call, from most to least severe.
// The order is only meaningful to sinks; the facade gates each level
// independently.
type Level uint8

const (
	// ExceptionLevel reports error values. It is gated separately from the
	// message levels.
	ExceptionLevel Level = iota
	// ErrorLevel for failures the application recovered from
	ErrorLevel
	// WarningLevel for suspicious but tolerated conditions
	WarningLevel
	// CheckpointLevel marks milestones in a process (startup done, job finished)
	CheckpointLevel
	// InfoLevel for general informational messages
	InfoLevel
	// TraceLevel for detailed diagnostics
	TraceLevel
)

// NumLevels is the number of defined severities.
const NumLevels = int(TraceLevel) + 1

var levelNames = [NumLevels]string{
	ExceptionLevel:  "EXCEPTION",
	ErrorLevel:      "ERROR",
	WarningLevel:    "WARNING",
	CheckpointLevel: "CHECKPOINT",
	InfoLevel:       "INFO",
	TraceLevel:      "TRACE",
}

// String returns the string representation of the level
func (l Level) String() string {
	if l.Valid() {
		return levelNames[l]
	}
	return "UNKNOWN"
}

// Valid reports whether l is one of the defined severities.
func (l Level) Valid() bool {
	return int(l) < NumLevels
}

// MoreSevereThan reports whether l ranks above other.
func (l Level) MoreSevereThan(other Level) bool {
	return l < other
}

// Levels returns every severity, most severe first.
func Levels() []Level {
	return []Level{ExceptionLevel, ErrorLevel, WarningLevel, CheckpointLevel, InfoLevel, TraceLevel}
}

// ParseLevel converts a level name to a Level. The second return value is
// false when the name is not recognized.
func ParseLevel(s string) (Level, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "EXCEPTION", "EXC":
		return ExceptionLevel, true
	case "ERROR":
		return ErrorLevel, true
	case "WARNING", "WARN":
		return WarningLevel, true
	case "CHECKPOINT":
		return CheckpointLevel, true
	case "INFO":
		return InfoLevel, true
	case "TRACE":
		return TraceLevel, true
	default:
		return InfoLevel, false
	}
}
