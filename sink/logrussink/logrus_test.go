package logrussink

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipp01105/gatelog/core"
	"github.com/philipp01105/gatelog/logger"
	"github.com/philipp01105/gatelog/sink"
)

func TestSink_Levels(t *testing.T) {
	l, _ := test.NewNullLogger()
	l.SetLevel(logrus.WarnLevel)
	s := New(l, nil)

	assert.True(t, s.IsLevelAvailable(core.ExceptionLevel))
	assert.True(t, s.IsLevelAvailable(core.WarningLevel))
	assert.False(t, s.IsLevelAvailable(core.CheckpointLevel))
	assert.False(t, s.IsLevelAvailable(core.TraceLevel))

	l.SetLevel(logrus.TraceLevel)
	assert.True(t, s.IsLevelAvailable(core.TraceLevel))
}

func TestSink_Tags(t *testing.T) {
	l, _ := test.NewNullLogger()
	f := sink.NewFilter(sink.AllLevels)
	f.SetTagDefault(false)
	f.EnableTag("db")
	s := New(l, f)

	assert.True(t, s.IsTagAvailable("db"))
	assert.False(t, s.IsTagAvailable("ui"))
}

func TestSink_MsgAndException(t *testing.T) {
	l, hook := test.NewNullLogger()
	l.SetLevel(logrus.TraceLevel)
	s := New(l, nil)

	s.Msg("db", core.CheckpointLevel, "migrated")
	s.Exception(nil, errors.New("deadlock"))

	entries := hook.AllEntries()
	require.Len(t, entries, 2)

	assert.Equal(t, logrus.InfoLevel, entries[0].Level)
	assert.Equal(t, "migrated", entries[0].Message)
	assert.Equal(t, "db", entries[0].Data[TagKey])
	assert.Equal(t, "CHECKPOINT", entries[0].Data[SeverityKey])

	assert.Equal(t, logrus.ErrorLevel, entries[1].Level)
	assert.Equal(t, "deadlock", entries[1].Message)
	assert.EqualError(t, entries[1].Data[logrus.ErrorKey].(error), "deadlock")
	assert.NotContains(t, entries[1].Data, TagKey)
}

func TestSink_ThroughLogger(t *testing.T) {
	l, hook := test.NewNullLogger()
	l.SetLevel(logrus.InfoLevel)
	log := logger.New(New(l, nil))

	if h := log.Trace(); h != nil {
		h.Msg("filtered")
	}
	log.Warning().Msg("kept")

	require.Len(t, hook.AllEntries(), 1)
	assert.Equal(t, "kept", hook.LastEntry().Message)
}

func TestNew_NilUsesStandardLogger(t *testing.T) {
	s := New(nil, nil)
	assert.Same(t, logrus.StandardLogger(), s.logger)
}

func TestLogrusLevel(t *testing.T) {
	assert.Equal(t, logrus.InfoLevel, LogrusLevel(core.Level(99)))
	assert.Equal(t, logrus.TraceLevel, LogrusLevel(core.TraceLevel))
}
