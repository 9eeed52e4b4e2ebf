package sink

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/philipp01105/gatelog/core"
)

func TestOverflowPolicy_String(t *testing.T) {
	assert.Equal(t, "DropNewest", DropNewest.String())
	assert.Equal(t, "DropOldest", DropOldest.String())
	assert.Equal(t, "Block", Block.String())
	assert.Equal(t, "Unknown", OverflowPolicy(9).String())
}

func TestDefaultLevelPolicy(t *testing.T) {
	p := DefaultLevelPolicy()
	assert.Len(t, p, core.NumLevels)
	assert.Equal(t, Block, p[core.ExceptionLevel])
	assert.Equal(t, Block, p[core.ErrorLevel])
	assert.Equal(t, DropNewest, p[core.TraceLevel])
}

func TestStats(t *testing.T) {
	s := NewStats()

	s.IncrementDropped(core.InfoLevel)
	s.IncrementDropped(core.InfoLevel)
	s.IncrementDropped(core.TraceLevel)
	s.IncrementDropped(core.Level(50))
	s.IncrementBlocked()
	s.Record(nil)
	s.Record(errors.New("disk full"))

	assert.Equal(t, uint64(2), s.GetDropped(core.InfoLevel))
	assert.Equal(t, uint64(0), s.GetDropped(core.Level(50)))
	assert.Equal(t, uint64(3), s.GetTotalDropped())

	snap := s.GetSnapshot()
	assert.Equal(t, uint64(1), snap.Blocked)
	assert.Equal(t, uint64(1), snap.Processed)
	assert.Equal(t, uint64(1), snap.WriteErrors)
	assert.Equal(t, uint64(1), snap.Dropped[core.TraceLevel])

	s.Reset()
	assert.Equal(t, uint64(0), s.GetTotalDropped())
	assert.Equal(t, Snapshot{Dropped: map[core.Level]uint64{
		core.ExceptionLevel:  0,
		core.ErrorLevel:      0,
		core.WarningLevel:    0,
		core.CheckpointLevel: 0,
		core.InfoLevel:       0,
		core.TraceLevel:      0,
	}}, s.GetSnapshot())
}

func TestNop(t *testing.T) {
	var s Closer = Nop{}
	for _, l := range core.Levels() {
		assert.False(t, s.IsLevelAvailable(l))
	}
	assert.False(t, s.IsTagAvailable("db"))
	s.Msg(nil, core.InfoLevel, "ignored")
	s.Exception("db", errors.New("ignored"))
	assert.NoError(t, s.Close())
}
