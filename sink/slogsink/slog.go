// Package slogsink connects log/slog and gatelog in both directions.
//
// Sink adapts a *slog.Logger to the sink contract, so any slog.Handler can
// serve as a gatelog backend. Handler goes the other way and lets slog
// callers write into a gatelog sink.
package slogsink

import (
	"context"
	"log/slog"

	"github.com/philipp01105/gatelog/core"
	"github.com/philipp01105/gatelog/sink"
)

// slog levels for the severities slog does not define.
const (
	LevelTrace      = slog.Level(-8)
	LevelCheckpoint = slog.Level(2)
	LevelException  = slog.Level(12)
)

// Attribute keys added to every record.
const (
	TagKey   = "tag"
	ErrorKey = "error"
)

var levelMap = [core.NumLevels]slog.Level{
	core.ExceptionLevel:  LevelException,
	core.ErrorLevel:      slog.LevelError,
	core.WarningLevel:    slog.LevelWarn,
	core.CheckpointLevel: LevelCheckpoint,
	core.InfoLevel:       slog.LevelInfo,
	core.TraceLevel:      LevelTrace,
}

// SlogLevel returns the slog level used for a severity.
func SlogLevel(level core.Level) slog.Level {
	if !level.Valid() {
		return slog.LevelInfo
	}
	return levelMap[level]
}

// ReplaceLevelNames is a slog.HandlerOptions.ReplaceAttr function that
// prints the custom levels by their severity names instead of "DEBUG-4"
// and the like.
func ReplaceLevelNames(_ []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey {
		return a
	}
	lvl, ok := a.Value.Any().(slog.Level)
	if !ok {
		return a
	}
	switch lvl {
	case LevelTrace:
		a.Value = slog.StringValue(core.TraceLevel.String())
	case LevelCheckpoint:
		a.Value = slog.StringValue(core.CheckpointLevel.String())
	case LevelException:
		a.Value = slog.StringValue(core.ExceptionLevel.String())
	}
	return a
}

// Sink forwards to a slog logger.
type Sink struct {
	logger *slog.Logger
	filter *sink.Filter
}

var _ sink.Sink = (*Sink)(nil)

// New creates a sink writing to l (slog.Default() when nil). filter may be
// nil.
func New(l *slog.Logger, filter *sink.Filter) *Sink {
	if l == nil {
		l = slog.Default()
	}
	return &Sink{logger: l, filter: filter}
}

// IsLevelAvailable reports whether the filter and the slog handler both
// enable level.
func (s *Sink) IsLevelAvailable(level core.Level) bool {
	return s.filter.IsLevelAvailable(level) && s.logger.Enabled(context.Background(), SlogLevel(level))
}

// IsTagAvailable consults the filter.
func (s *Sink) IsTagAvailable(tag any) bool {
	return s.filter.IsTagAvailable(tag)
}

// Msg writes a message at the mapped slog level.
func (s *Sink) Msg(tag any, level core.Level, msg string) {
	if tag != nil {
		s.logger.LogAttrs(context.Background(), SlogLevel(level), msg, slog.Any(TagKey, tag))
		return
	}
	s.logger.LogAttrs(context.Background(), SlogLevel(level), msg)
}

// Exception writes err at LevelException.
func (s *Sink) Exception(tag any, err error) {
	msg := core.ErrorMessage(err)
	if tag != nil {
		s.logger.LogAttrs(context.Background(), LevelException, msg, slog.Any(TagKey, tag), slog.Any(ErrorKey, err))
		return
	}
	s.logger.LogAttrs(context.Background(), LevelException, msg, slog.Any(ErrorKey, err))
}
