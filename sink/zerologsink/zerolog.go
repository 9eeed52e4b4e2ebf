// Package zerologsink adapts a zerolog.Logger to the sink contract.
//
// Level availability follows the logger's own level and zerolog's global
// level. An optional *sink.Filter adds tag filtering.
package zerologsink

import (
	"github.com/rs/zerolog"

	"github.com/philipp01105/gatelog/core"
	"github.com/philipp01105/gatelog/sink"
)

// Field keys added to every event.
const (
	TagKey      = "tag"
	SeverityKey = "severity"
)

var levelMap = [core.NumLevels]zerolog.Level{
	core.ExceptionLevel:  zerolog.ErrorLevel,
	core.ErrorLevel:      zerolog.ErrorLevel,
	core.WarningLevel:    zerolog.WarnLevel,
	core.CheckpointLevel: zerolog.InfoLevel,
	core.InfoLevel:       zerolog.InfoLevel,
	core.TraceLevel:      zerolog.TraceLevel,
}

// ZerologLevel returns the zerolog level used for a severity.
func ZerologLevel(level core.Level) zerolog.Level {
	if !level.Valid() {
		return zerolog.InfoLevel
	}
	return levelMap[level]
}

// Sink forwards to a zerolog logger.
type Sink struct {
	logger zerolog.Logger
	filter *sink.Filter
}

var _ sink.Sink = (*Sink)(nil)

// New creates a sink writing to l. filter may be nil.
func New(l zerolog.Logger, filter *sink.Filter) *Sink {
	return &Sink{logger: l, filter: filter}
}

// IsLevelAvailable reports whether the filter and zerolog both enable
// level.
func (s *Sink) IsLevelAvailable(level core.Level) bool {
	if !s.filter.IsLevelAvailable(level) {
		return false
	}
	zl := ZerologLevel(level)
	return zl >= s.logger.GetLevel() && zl >= zerolog.GlobalLevel()
}

// IsTagAvailable consults the filter.
func (s *Sink) IsTagAvailable(tag any) bool {
	return s.filter.IsTagAvailable(tag)
}

// Msg writes a message at the mapped zerolog level.
func (s *Sink) Msg(tag any, level core.Level, msg string) {
	e := s.logger.WithLevel(ZerologLevel(level))
	if e == nil {
		return
	}
	e = e.Str(SeverityKey, level.String())
	if tag != nil {
		e = e.Str(TagKey, core.TagString(tag))
	}
	e.Msg(msg)
}

// Exception writes err at zerolog's error level.
func (s *Sink) Exception(tag any, err error) {
	e := s.logger.Error()
	if e == nil {
		return
	}
	e = e.Str(SeverityKey, core.ExceptionLevel.String()).Err(err)
	if tag != nil {
		e = e.Str(TagKey, core.TagString(tag))
	}
	e.Msg(core.ErrorMessage(err))
}
