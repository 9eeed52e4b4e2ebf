package logger

import "github.com/philipp01105/gatelog/core"

// TaggedLogger is a Logger narrowed to one tag up front, for code that
// logs everything under the same subsystem. The tag gate was checked when
// it was created; each accessor still checks its level.
type TaggedLogger struct {
	logger *Logger
	tag    any
}

// Tagged narrows the logger to tag. ok is false when the sink reports the
// tag as unavailable.
func (l *Logger) Tagged(tag any) (tl TaggedLogger, ok bool) {
	if !l.sink.IsTagAvailable(tag) {
		return TaggedLogger{}, false
	}
	return TaggedLogger{logger: l, tag: tag}, true
}

// Tag returns the tag the logger is scoped to.
func (t TaggedLogger) Tag() any {
	return t.tag
}

// Exception returns a tagged exception handle if exceptions are enabled.
func (t TaggedLogger) Exception() (TaggedExceptionHandle, bool) {
	if t.logger == nil || !t.logger.sink.IsLevelAvailable(core.ExceptionLevel) {
		return TaggedExceptionHandle{}, false
	}
	return TaggedExceptionHandle{logger: t.logger, tag: t.tag}, true
}

// Error returns a tagged handle if the error level is enabled.
func (t TaggedLogger) Error() (TaggedHandle, bool) {
	return t.level(core.ErrorLevel)
}

// Warning returns a tagged handle if the warning level is enabled.
func (t TaggedLogger) Warning() (TaggedHandle, bool) {
	return t.level(core.WarningLevel)
}

// Checkpoint returns a tagged handle if the checkpoint level is enabled.
func (t TaggedLogger) Checkpoint() (TaggedHandle, bool) {
	return t.level(core.CheckpointLevel)
}

// Info returns a tagged handle if the info level is enabled.
func (t TaggedLogger) Info() (TaggedHandle, bool) {
	return t.level(core.InfoLevel)
}

// Trace returns a tagged handle if the trace level is enabled.
func (t TaggedLogger) Trace() (TaggedHandle, bool) {
	return t.level(core.TraceLevel)
}

func (t TaggedLogger) level(level core.Level) (TaggedHandle, bool) {
	if t.logger == nil || !t.logger.sink.IsLevelAvailable(level) {
		return TaggedHandle{}, false
	}
	return TaggedHandle{logger: t.logger, level: level, tag: t.tag}, true
}
