// Package logrussink adapts a *logrus.Logger to the sink contract.
package logrussink

import (
	"github.com/sirupsen/logrus"

	"github.com/philipp01105/gatelog/core"
	"github.com/philipp01105/gatelog/sink"
)

// Field keys added to every entry.
const (
	TagKey      = "tag"
	SeverityKey = "severity"
)

var levelMap = [core.NumLevels]logrus.Level{
	core.ExceptionLevel:  logrus.ErrorLevel,
	core.ErrorLevel:      logrus.ErrorLevel,
	core.WarningLevel:    logrus.WarnLevel,
	core.CheckpointLevel: logrus.InfoLevel,
	core.InfoLevel:       logrus.InfoLevel,
	core.TraceLevel:      logrus.TraceLevel,
}

// LogrusLevel returns the logrus level used for a severity.
func LogrusLevel(level core.Level) logrus.Level {
	if !level.Valid() {
		return logrus.InfoLevel
	}
	return levelMap[level]
}

// Sink forwards to a logrus logger.
type Sink struct {
	logger *logrus.Logger
	filter *sink.Filter
}

var _ sink.Sink = (*Sink)(nil)

// New creates a sink writing to l (logrus.StandardLogger() when nil).
// filter may be nil.
func New(l *logrus.Logger, filter *sink.Filter) *Sink {
	if l == nil {
		l = logrus.StandardLogger()
	}
	return &Sink{logger: l, filter: filter}
}

// IsLevelAvailable reports whether the filter and logrus both enable level.
func (s *Sink) IsLevelAvailable(level core.Level) bool {
	return s.filter.IsLevelAvailable(level) && s.logger.IsLevelEnabled(LogrusLevel(level))
}

// IsTagAvailable consults the filter.
func (s *Sink) IsTagAvailable(tag any) bool {
	return s.filter.IsTagAvailable(tag)
}

func (s *Sink) fields(tag any, level core.Level) logrus.Fields {
	f := logrus.Fields{SeverityKey: level.String()}
	if tag != nil {
		f[TagKey] = tag
	}
	return f
}

// Msg writes a message at the mapped logrus level.
func (s *Sink) Msg(tag any, level core.Level, msg string) {
	s.logger.WithFields(s.fields(tag, level)).Log(LogrusLevel(level), msg)
}

// Exception writes err at logrus' error level under logrus.ErrorKey.
func (s *Sink) Exception(tag any, err error) {
	s.logger.WithFields(s.fields(tag, core.ExceptionLevel)).
		WithError(err).
		Log(logrus.ErrorLevel, core.ErrorMessage(err))
}
