package logger

import (
	"github.com/philipp01105/gatelog/core"
	"github.com/philipp01105/gatelog/sink"
)

// Logger is the facade bound to one sink (immutable).
//
// Each accessor asks the sink whether its level is available and returns
// a handle, or nil when the level is disabled. Guard the call so the
// message is only built when it will be emitted:
//
//	if h := log.Info(); h != nil {
//	    h.Msg(expensiveDescription())
//	}
type Logger struct {
	sink      sink.Sink
	levels    [core.NumLevels]LevelHandle
	exception ExceptionHandle
}

// New creates a Logger that forwards to s. The sink is shared, not owned:
// the Logger never closes or mutates it.
func New(s sink.Sink) *Logger {
	if s == nil {
		s = sink.Nop{}
	}
	l := &Logger{sink: s}
	for _, lvl := range core.Levels() {
		l.levels[lvl] = LevelHandle{logger: l, level: lvl}
	}
	l.exception = ExceptionHandle{logger: l}
	return l
}

// Sink returns the sink the logger forwards to.
func (l *Logger) Sink() sink.Sink {
	return l.sink
}

// Exception returns the exception handle, or nil if exceptions are disabled.
func (l *Logger) Exception() *ExceptionHandle {
	if !l.sink.IsLevelAvailable(core.ExceptionLevel) {
		return nil
	}
	return &l.exception
}

// Error returns the error level handle, or nil if the level is disabled.
func (l *Logger) Error() *LevelHandle {
	return l.level(core.ErrorLevel)
}

// Warning returns the warning level handle, or nil if the level is disabled.
func (l *Logger) Warning() *LevelHandle {
	return l.level(core.WarningLevel)
}

// Checkpoint returns the checkpoint level handle, or nil if the level is disabled.
func (l *Logger) Checkpoint() *LevelHandle {
	return l.level(core.CheckpointLevel)
}

// Info returns the info level handle, or nil if the level is disabled.
func (l *Logger) Info() *LevelHandle {
	return l.level(core.InfoLevel)
}

// Trace returns the trace level handle, or nil if the level is disabled.
func (l *Logger) Trace() *LevelHandle {
	return l.level(core.TraceLevel)
}

// Level returns the handle for a message level chosen at runtime. It
// returns nil for ExceptionLevel, for unknown levels, and for disabled
// levels.
func (l *Logger) Level(level core.Level) *LevelHandle {
	if level == core.ExceptionLevel || !level.Valid() {
		return nil
	}
	return l.level(level)
}

func (l *Logger) level(level core.Level) *LevelHandle {
	if !l.sink.IsLevelAvailable(level) {
		return nil
	}
	return &l.levels[level]
}
