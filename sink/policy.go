package sink

import (
	"sync/atomic"

	"github.com/philipp01105/gatelog/core"
)

// OverflowPolicy defines how to handle full async queues
type OverflowPolicy int

const (
	// DropNewest drops the newest log entry when queue is full
	DropNewest OverflowPolicy = iota
	// DropOldest drops the oldest log entry when queue is full
	DropOldest
	// Block blocks the caller until space is available (with timeout)
	Block
)

// String returns the string representation of the policy
func (p OverflowPolicy) String() string {
	switch p {
	case DropNewest:
		return "DropNewest"
	case DropOldest:
		return "DropOldest"
	case Block:
		return "Block"
	default:
		return "Unknown"
	}
}

// DefaultLevelPolicy returns the default level-based overflow policies.
// Exceptions and errors wait for queue space; everything else is dropped.
func DefaultLevelPolicy() map[core.Level]OverflowPolicy {
	return map[core.Level]OverflowPolicy{
		core.ExceptionLevel:  Block,
		core.ErrorLevel:      Block,
		core.WarningLevel:    DropNewest,
		core.CheckpointLevel: DropNewest,
		core.InfoLevel:       DropNewest,
		core.TraceLevel:      DropNewest,
	}
}

// Stats tracks sink statistics
type Stats struct {
	dropped   [core.NumLevels]atomic.Uint64
	blocked   atomic.Uint64
	processed atomic.Uint64
	errors    atomic.Uint64
}

// NewStats creates a new Stats instance
func NewStats() *Stats {
	return &Stats{}
}

// IncrementDropped atomically increments the dropped counter for a level
func (s *Stats) IncrementDropped(level core.Level) {
	if level.Valid() {
		s.dropped[level].Add(1)
	}
}

// IncrementBlocked atomically increments the blocked counter
func (s *Stats) IncrementBlocked() {
	s.blocked.Add(1)
}

// IncrementProcessed atomically increments the processed counter
func (s *Stats) IncrementProcessed() {
	s.processed.Add(1)
}

// IncrementErrors atomically increments the write error counter
func (s *Stats) IncrementErrors() {
	s.errors.Add(1)
}

// Record counts the outcome of a single write.
func (s *Stats) Record(err error) {
	if err != nil {
		s.errors.Add(1)
		return
	}
	s.processed.Add(1)
}

// GetDropped returns the dropped count for a level
func (s *Stats) GetDropped(level core.Level) uint64 {
	if !level.Valid() {
		return 0
	}
	return s.dropped[level].Load()
}

// GetTotalDropped returns the total dropped across all levels
func (s *Stats) GetTotalDropped() uint64 {
	var total uint64
	for i := range s.dropped {
		total += s.dropped[i].Load()
	}
	return total
}

// Reset resets all counters to zero
func (s *Stats) Reset() {
	for i := range s.dropped {
		s.dropped[i].Store(0)
	}
	s.blocked.Store(0)
	s.processed.Store(0)
	s.errors.Store(0)
}

// Snapshot is a point-in-time copy of Stats
type Snapshot struct {
	Dropped     map[core.Level]uint64
	Blocked     uint64
	Processed   uint64
	WriteErrors uint64
}

// GetSnapshot returns a snapshot of current statistics
func (s *Stats) GetSnapshot() Snapshot {
	snap := Snapshot{
		Dropped:     make(map[core.Level]uint64, core.NumLevels),
		Blocked:     s.blocked.Load(),
		Processed:   s.processed.Load(),
		WriteErrors: s.errors.Load(),
	}
	for _, l := range core.Levels() {
		snap.Dropped[l] = s.dropped[l].Load()
	}
	return snap
}

// StatsProvider is implemented by sinks that track Stats.
type StatsProvider interface {
	Stats() Snapshot
}
