package consolesink

import (
	"bytes"
	"io"
	"os"
	"sync"
	"time"

	"github.com/philipp01105/gatelog/core"
	"github.com/philipp01105/gatelog/formatter"
	"github.com/philipp01105/gatelog/sink"
)

// consoleBase contains shared fields and methods for console sinks.
type consoleBase struct {
	writer          io.Writer
	formatter       formatter.Formatter
	bufferFormatter formatter.BufferFormatter
	filter          *sink.Filter
	stats           *sink.Stats
	mu              sync.Mutex // protects buf, entry and writer
	buf             bytes.Buffer
	entry           core.Entry
	closed          chan struct{}
	now             func() time.Time
}

func (b *consoleBase) init(cfg Config) {
	b.writer = cfg.Writer
	b.formatter = cfg.Formatter
	b.filter = cfg.Filter
	b.stats = sink.NewStats()
	b.closed = make(chan struct{})
	b.now = time.Now
	if cfg.CoarseClock {
		core.StartCoarseClock()
		b.now = core.CoarseNow
	}

	// Cache BufferFormatter for the sink-owned buffer path
	b.bufferFormatter, _ = cfg.Formatter.(formatter.BufferFormatter)
	b.buf.Grow(256)
}

// IsLevelAvailable consults the sink's filter.
func (b *consoleBase) IsLevelAvailable(level core.Level) bool {
	return b.filter.IsLevelAvailable(level)
}

// IsTagAvailable consults the sink's filter.
func (b *consoleBase) IsTagAvailable(tag any) bool {
	return b.filter.IsTagAvailable(tag)
}

// Filter returns the filter deciding availability. Changes to it apply
// immediately.
func (b *consoleBase) Filter() *sink.Filter {
	return b.filter
}

// Stats returns a snapshot of the current statistics
func (b *consoleBase) Stats() sink.Snapshot {
	return b.stats.GetSnapshot()
}

// writeLocked formats and writes an entry. b.mu must be held.
func (b *consoleBase) writeLocked(entry *core.Entry) error {
	if b.bufferFormatter != nil {
		b.buf.Reset()
		b.bufferFormatter.FormatEntry(entry, &b.buf)
		_, err := b.writer.Write(b.buf.Bytes())
		return err
	}

	data, err := b.formatter.Format(entry)
	if err != nil {
		return err
	}
	_, err = b.writer.Write(data)
	return err
}

// write formats and writes an entry, recording the outcome.
func (b *consoleBase) write(entry *core.Entry) {
	b.mu.Lock()
	err := b.writeLocked(entry)
	b.mu.Unlock()
	b.stats.Record(err)
}

// Config holds configuration for console sinks
type Config struct {
	// Writer to write to (default: os.Stderr)
	Writer io.Writer
	// Formatter to use (default: TextFormatter)
	Formatter formatter.Formatter
	// Filter decides level and tag availability (default: everything enabled)
	Filter *sink.Filter
	// Async enables asynchronous logging (default: false)
	Async bool
	// BufferSize is the size of the async queue (default: 1000)
	BufferSize int
	// OverflowPolicy defines per-level overflow behavior (default: sink.DefaultLevelPolicy)
	OverflowPolicy map[core.Level]sink.OverflowPolicy
	// BlockTimeout is the timeout for the Block overflow policy (default: 100ms)
	BlockTimeout time.Duration
	// DrainTimeout is the timeout for draining the queue on Close (default: 5s)
	DrainTimeout time.Duration
	// CoarseClock timestamps entries from a clock cached every 500µs
	// instead of calling time.Now per entry
	CoarseClock bool
}

// applyDefaults fills in zero-value fields with defaults.
func applyDefaults(cfg *Config) {
	if cfg.Writer == nil {
		cfg.Writer = os.Stderr
	}
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewTextFormatter(formatter.Config{})
	}
	if cfg.Filter == nil {
		cfg.Filter = sink.NewFilter(sink.AllLevels)
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 1000
	}
	if cfg.OverflowPolicy == nil {
		cfg.OverflowPolicy = sink.DefaultLevelPolicy()
	}
	if cfg.BlockTimeout == 0 {
		cfg.BlockTimeout = 100 * time.Millisecond
	}
	if cfg.DrainTimeout == 0 {
		cfg.DrainTimeout = 5 * time.Second
	}
}

// New creates a console sink.
// Returns a *SyncSink when Async is false, or an *AsyncSink when Async is
// true.
func New(cfg Config) sink.Closer {
	applyDefaults(&cfg)
	if cfg.Async {
		return newAsyncSink(cfg)
	}
	return newSyncSink(cfg)
}
