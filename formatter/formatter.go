package formatter

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/pkg/errors"

	"github.com/philipp01105/gatelog/core"
)

// Formatter defines the interface for log formatters
type Formatter interface {
	// Format formats a log entry into bytes
	Format(entry *core.Entry) ([]byte, error)
}

// BufferFormatter is an optional interface that formatters can implement
// to format directly into a caller-provided buffer, avoiding internal
// buffer pool overhead.
type BufferFormatter interface {
	// FormatEntry formats a log entry into the given buffer.
	FormatEntry(entry *core.Entry, buf *bytes.Buffer)
}

// Config holds common formatter configuration
type Config struct {
	// TimestampFormat specifies the time format (empty for RFC3339)
	TimestampFormat string
	// OmitTime drops the timestamp, for deterministic output
	OmitTime bool
	// ErrorStack renders exceptions with %+v, which includes the stack
	// trace of errors created by github.com/pkg/errors
	ErrorStack bool
}

// bufferPool is a pool of bytes.Buffer to reduce allocations
var bufferPool = &sync.Pool{
	New: func() interface{} {
		b := new(bytes.Buffer)
		b.Grow(256)
		return b
	},
}

func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 64*1024 { // Don't keep very large buffers
		return
	}
	bufferPool.Put(buf)
}

// formatWith runs a BufferFormatter against a pooled buffer and returns a
// copy of the result.
func formatWith(f BufferFormatter, entry *core.Entry) []byte {
	buf := getBuffer()
	f.FormatEntry(entry, buf)
	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	putBuffer(buf)
	return result
}

// rootCause returns the innermost cause of err when it differs from err.
func rootCause(err error) (string, bool) {
	if err == nil {
		return "", false
	}
	cause := errors.Cause(err)
	if cause == nil || cause == err {
		return "", false
	}
	return cause.Error(), true
}

// verbose renders err with %+v, keeping pkg/errors stack traces.
func verbose(err error) string {
	return fmt.Sprintf("%+v", err)
}
