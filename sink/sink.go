package sink

import (
	"io"

	"github.com/philipp01105/gatelog/core"
)

// Sink is the backend the logger facade forwards to.
//
// Implementations must be safe for concurrent use. None of the methods
// report errors: a sink absorbs its own failures, since the call sites
// that log have no way to recover from a failed write.
type Sink interface {
	// IsLevelAvailable reports whether calls at level should be emitted.
	// It is queried on every accessor call and must be cheap.
	IsLevelAvailable(level core.Level) bool

	// IsTagAvailable reports whether calls scoped to tag should be emitted.
	// A nil tag means "no tag".
	IsTagAvailable(tag any) bool

	// Msg emits a message. tag is nil for untagged calls.
	Msg(tag any, level core.Level, msg string)

	// Exception emits an error value. tag is nil for untagged calls.
	Exception(tag any, err error)
}

// Closer is a Sink that holds resources.
type Closer interface {
	Sink
	io.Closer
}

// Nop is a sink that disables every level and discards everything.
type Nop struct{}

var _ Closer = Nop{}

// IsLevelAvailable always returns false.
func (Nop) IsLevelAvailable(core.Level) bool { return false }

// IsTagAvailable always returns false.
func (Nop) IsTagAvailable(any) bool { return false }

// Msg discards the message.
func (Nop) Msg(any, core.Level, string) {}

// Exception discards the error.
func (Nop) Exception(any, error) {}

// Close does nothing.
func (Nop) Close() error { return nil }
