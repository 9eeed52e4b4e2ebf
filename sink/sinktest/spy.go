// Package sinktest provides a recording sink for tests.
package sinktest

import (
	"sync"

	"github.com/philipp01105/gatelog/core"
	"github.com/philipp01105/gatelog/sink"
)

// Call is one recorded emission.
type Call struct {
	Tag   any
	Level core.Level
	Msg   string
	Err   error
}

// Spy is a sink that records every call it receives. Availability is
// decided by an embedded sink.Filter, so tests can flip levels and tags
// between calls.
type Spy struct {
	*sink.Filter

	mu          sync.Mutex
	calls       []Call
	levelChecks [core.NumLevels]int
	tagChecks   []any
}

var _ sink.Sink = (*Spy)(nil)

// New creates a Spy with the given levels enabled and every tag enabled.
func New(levels ...core.Level) *Spy {
	return &Spy{Filter: sink.NewFilter(sink.MaskOf(levels...))}
}

// IsLevelAvailable records the query and consults the filter.
func (s *Spy) IsLevelAvailable(level core.Level) bool {
	s.mu.Lock()
	if level.Valid() {
		s.levelChecks[level]++
	}
	s.mu.Unlock()
	return s.Filter.IsLevelAvailable(level)
}

// IsTagAvailable records the query and consults the filter.
func (s *Spy) IsTagAvailable(tag any) bool {
	s.mu.Lock()
	s.tagChecks = append(s.tagChecks, tag)
	s.mu.Unlock()
	return s.Filter.IsTagAvailable(tag)
}

// Msg records a message call.
func (s *Spy) Msg(tag any, level core.Level, msg string) {
	s.mu.Lock()
	s.calls = append(s.calls, Call{Tag: tag, Level: level, Msg: msg})
	s.mu.Unlock()
}

// Exception records an exception call.
func (s *Spy) Exception(tag any, err error) {
	s.mu.Lock()
	s.calls = append(s.calls, Call{Tag: tag, Level: core.ExceptionLevel, Err: err})
	s.mu.Unlock()
}

// Calls returns a copy of the recorded emissions in order.
func (s *Spy) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}

// LevelChecks returns how many times level was queried.
func (s *Spy) LevelChecks(level core.Level) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !level.Valid() {
		return 0
	}
	return s.levelChecks[level]
}

// TagChecks returns the tags queried, in order.
func (s *Spy) TagChecks() []any {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]any, len(s.tagChecks))
	copy(out, s.tagChecks)
	return out
}

// Reset forgets every recorded call and query.
func (s *Spy) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
	s.levelChecks = [core.NumLevels]int{}
	s.tagChecks = nil
}
