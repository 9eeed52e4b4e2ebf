package logger

import "github.com/philipp01105/gatelog/core"

// LevelHandle emits messages at one severity. Holding a non-nil handle
// means the level gate has already passed; Msg does not check it again.
//
// Methods on a nil *LevelHandle do nothing, so chains like
// log.Error().Tag("db") are safe when the level is off.
type LevelHandle struct {
	logger *Logger
	level  core.Level
}

// Level returns the severity the handle emits at. A nil handle reports a
// level for which Valid is false.
func (h *LevelHandle) Level() core.Level {
	if h == nil {
		return core.Level(core.NumLevels)
	}
	return h.level
}

// Msg forwards msg to the sink without a tag.
func (h *LevelHandle) Msg(msg string) {
	if h == nil {
		return
	}
	h.logger.sink.Msg(nil, h.level, msg)
}

// Tag narrows the handle to tag. ok is false when the handle is nil or the
// sink reports the tag as unavailable.
func (h *LevelHandle) Tag(tag any) (th TaggedHandle, ok bool) {
	if h == nil || !h.logger.sink.IsTagAvailable(tag) {
		return TaggedHandle{}, false
	}
	return TaggedHandle{logger: h.logger, level: h.level, tag: tag}, true
}

// TaggedHandle emits messages for one (severity, tag) pair. It is a small
// value meant to be used at the call site, not stored.
//
// The zero TaggedHandle is inert: Msg does nothing.
type TaggedHandle struct {
	logger *Logger
	level  core.Level
	tag    any
}

// Level returns the severity the handle emits at.
func (h TaggedHandle) Level() core.Level {
	return h.level
}

// Tag returns the tag the handle is scoped to.
func (h TaggedHandle) Tag() any {
	return h.tag
}

// Msg forwards msg to the sink with the bound tag.
func (h TaggedHandle) Msg(msg string) {
	if h.logger == nil {
		return
	}
	h.logger.sink.Msg(h.tag, h.level, msg)
}

// ExceptionHandle emits error values. It is gated by ExceptionLevel only,
// independently of the message levels.
type ExceptionHandle struct {
	logger *Logger
}

// Exc forwards err to the sink without a tag.
func (h *ExceptionHandle) Exc(err error) {
	if h == nil {
		return
	}
	h.logger.sink.Exception(nil, err)
}

// Tag narrows the handle to tag. ok is false when the handle is nil or the
// sink reports the tag as unavailable.
func (h *ExceptionHandle) Tag(tag any) (th TaggedExceptionHandle, ok bool) {
	if h == nil || !h.logger.sink.IsTagAvailable(tag) {
		return TaggedExceptionHandle{}, false
	}
	return TaggedExceptionHandle{logger: h.logger, tag: tag}, true
}

// TaggedExceptionHandle emits error values for one tag. The zero value is
// inert.
type TaggedExceptionHandle struct {
	logger *Logger
	tag    any
}

// Tag returns the tag the handle is scoped to.
func (h TaggedExceptionHandle) Tag() any {
	return h.tag
}

// Exc forwards err to the sink with the bound tag.
func (h TaggedExceptionHandle) Exc(err error) {
	if h.logger == nil {
		return
	}
	h.logger.sink.Exception(h.tag, err)
}
