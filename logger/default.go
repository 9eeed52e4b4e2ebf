package logger

import (
	"os"
	"sync/atomic"

	"github.com/philipp01105/gatelog/core"
	"github.com/philipp01105/gatelog/formatter"
	"github.com/philipp01105/gatelog/sink"
	"github.com/philipp01105/gatelog/sink/consolesink"
)

var defaultLogger atomic.Pointer[Logger]

func init() {
	// Synchronous text output to stderr, Info and everything more severe
	s := consolesink.New(consolesink.Config{
		Writer:    os.Stderr,
		Formatter: formatter.NewTextFormatter(formatter.Config{}),
		Filter:    sink.NewFilter(sink.UpTo(core.InfoLevel)),
	})
	defaultLogger.Store(New(s))
}

// Default returns the default logger
func Default() *Logger {
	return defaultLogger.Load()
}

// SetDefault sets the default logger. A nil logger is ignored.
func SetDefault(l *Logger) {
	if l == nil {
		return
	}
	defaultLogger.Store(l)
}

// Package-level accessors using the default logger

// Exception returns the default logger's exception handle, or nil.
func Exception() *ExceptionHandle {
	return Default().Exception()
}

// Error returns the default logger's error handle, or nil.
func Error() *LevelHandle {
	return Default().Error()
}

// Warning returns the default logger's warning handle, or nil.
func Warning() *LevelHandle {
	return Default().Warning()
}

// Checkpoint returns the default logger's checkpoint handle, or nil.
func Checkpoint() *LevelHandle {
	return Default().Checkpoint()
}

// Info returns the default logger's info handle, or nil.
func Info() *LevelHandle {
	return Default().Info()
}

// Trace returns the default logger's trace handle, or nil.
func Trace() *LevelHandle {
	return Default().Trace()
}

// Tagged narrows the default logger to tag.
func Tagged(tag any) (TaggedLogger, bool) {
	return Default().Tagged(tag)
}
