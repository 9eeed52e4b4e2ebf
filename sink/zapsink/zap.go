// Package zapsink adapts a *zap.Logger to the sink contract.
//
// Level availability is decided by the zap core, so the zap
// configuration (including an AtomicLevel changed at runtime) stays the
// single source of truth. An optional *sink.Filter adds tag filtering
// and can mask levels further.
package zapsink

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/gatelog/core"
	"github.com/philipp01105/gatelog/sink"
)

// Field keys added to every record.
const (
	TagKey      = "tag"
	SeverityKey = "severity"
)

// levelMap translates severities to zap levels. Checkpoint and Info share
// zap's info level; the severity field tells them apart.
var levelMap = [core.NumLevels]zapcore.Level{
	core.ExceptionLevel:  zapcore.ErrorLevel,
	core.ErrorLevel:      zapcore.ErrorLevel,
	core.WarningLevel:    zapcore.WarnLevel,
	core.CheckpointLevel: zapcore.InfoLevel,
	core.InfoLevel:       zapcore.InfoLevel,
	core.TraceLevel:      zapcore.DebugLevel,
}

// ZapLevel returns the zap level used for a severity.
func ZapLevel(level core.Level) zapcore.Level {
	if !level.Valid() {
		return zapcore.InfoLevel
	}
	return levelMap[level]
}

// Sink forwards to a zap logger.
type Sink struct {
	logger *zap.Logger
	filter *sink.Filter
}

var _ sink.Closer = (*Sink)(nil)

// New creates a sink writing to l. filter may be nil.
func New(l *zap.Logger, filter *sink.Filter) *Sink {
	if l == nil {
		l = zap.NewNop()
	}
	// Skip the facade frames so zap reports the application's call site.
	return &Sink{logger: l.WithOptions(zap.AddCallerSkip(2)), filter: filter}
}

// IsLevelAvailable reports whether the filter and the zap core both
// enable level.
func (s *Sink) IsLevelAvailable(level core.Level) bool {
	return s.filter.IsLevelAvailable(level) && s.logger.Core().Enabled(ZapLevel(level))
}

// IsTagAvailable consults the filter.
func (s *Sink) IsTagAvailable(tag any) bool {
	return s.filter.IsTagAvailable(tag)
}

// Msg writes a message at the mapped zap level.
func (s *Sink) Msg(tag any, level core.Level, msg string) {
	ce := s.logger.Check(ZapLevel(level), msg)
	if ce == nil {
		return
	}
	if tag != nil {
		ce.Write(zap.String(SeverityKey, level.String()), zap.Any(TagKey, tag))
		return
	}
	ce.Write(zap.String(SeverityKey, level.String()))
}

// Exception writes err at zap's error level. zap.Error adds the verbose
// form, including stack traces of github.com/pkg/errors values.
func (s *Sink) Exception(tag any, err error) {
	ce := s.logger.Check(zapcore.ErrorLevel, core.ErrorMessage(err))
	if ce == nil {
		return
	}
	if tag != nil {
		ce.Write(zap.String(SeverityKey, core.ExceptionLevel.String()), zap.Any(TagKey, tag), zap.Error(err))
		return
	}
	ce.Write(zap.String(SeverityKey, core.ExceptionLevel.String()), zap.Error(err))
}

// Close flushes the zap logger.
func (s *Sink) Close() error {
	return s.logger.Sync()
}
