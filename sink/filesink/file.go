package filesink

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/philipp01105/gatelog/core"
	"github.com/philipp01105/gatelog/formatter"
	"github.com/philipp01105/gatelog/sink"
)

// Config holds configuration for the file sink
type Config struct {
	// Filename is the path of the log file (required)
	Filename string
	// Formatter to use (default: TextFormatter)
	Formatter formatter.Formatter
	// Filter decides level and tag availability (default: everything enabled)
	Filter *sink.Filter
	// BufferSize is the size of the write buffer in bytes (default: 32KiB)
	BufferSize int
	// FlushLevel flushes the buffer after writing an entry at this level
	// or a more severe one (default: ErrorLevel)
	FlushLevel *core.Level
	// FlushInterval flushes the buffer periodically; zero disables it
	FlushInterval time.Duration
	// Perm is the mode used when creating the file (default: 0644)
	Perm os.FileMode
}

// FileSink appends formatted entries to a file through a buffered writer.
// It never rotates or truncates the file.
type FileSink struct {
	filename        string
	file            *os.File
	bufWriter       *bufio.Writer
	formatter       formatter.Formatter
	bufferFormatter formatter.BufferFormatter
	filter          *sink.Filter
	flushLevel      core.Level
	stats           *sink.Stats
	mu              sync.Mutex // protects everything below and the writers above
	buf             bytes.Buffer
	entry           core.Entry
	closed          bool
	stop            chan struct{}
	wg              sync.WaitGroup
}

var (
	_ sink.Closer        = (*FileSink)(nil)
	_ sink.StatsProvider = (*FileSink)(nil)
)

func applyDefaults(cfg *Config) {
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewTextFormatter(formatter.Config{})
	}
	if cfg.Filter == nil {
		cfg.Filter = sink.NewFilter(sink.AllLevels)
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 32 * 1024
	}
	if cfg.FlushLevel == nil {
		l := core.ErrorLevel
		cfg.FlushLevel = &l
	}
	if cfg.Perm == 0 {
		cfg.Perm = 0644
	}
}

// New opens (or creates) the file and returns a sink appending to it.
func New(cfg Config) (*FileSink, error) {
	if cfg.Filename == "" {
		return nil, errors.New("filesink: filename is required")
	}
	applyDefaults(&cfg)

	if err := os.MkdirAll(filepath.Dir(cfg.Filename), 0755); err != nil {
		return nil, errors.Wrapf(err, "filesink: create directory for %s", cfg.Filename)
	}
	f, err := os.OpenFile(cfg.Filename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, cfg.Perm)
	if err != nil {
		return nil, errors.Wrapf(err, "filesink: open %s", cfg.Filename)
	}

	h := &FileSink{
		filename:   cfg.Filename,
		file:       f,
		bufWriter:  bufio.NewWriterSize(f, cfg.BufferSize),
		formatter:  cfg.Formatter,
		filter:     cfg.Filter,
		flushLevel: *cfg.FlushLevel,
		stats:      sink.NewStats(),
		stop:       make(chan struct{}),
	}
	h.bufferFormatter, _ = cfg.Formatter.(formatter.BufferFormatter)
	h.buf.Grow(256)

	if cfg.FlushInterval > 0 {
		h.wg.Add(1)
		go h.flushLoop(cfg.FlushInterval)
	}
	return h, nil
}

// Filename returns the path of the log file.
func (h *FileSink) Filename() string {
	return h.filename
}

// Filter returns the filter deciding availability.
func (h *FileSink) Filter() *sink.Filter {
	return h.filter
}

// IsLevelAvailable consults the sink's filter.
func (h *FileSink) IsLevelAvailable(level core.Level) bool {
	return h.filter.IsLevelAvailable(level)
}

// IsTagAvailable consults the sink's filter.
func (h *FileSink) IsTagAvailable(tag any) bool {
	return h.filter.IsTagAvailable(tag)
}

// Msg appends a message.
func (h *FileSink) Msg(tag any, level core.Level, msg string) {
	h.mu.Lock()
	h.entry = core.Entry{Time: time.Now(), Level: level, Tag: tag, Message: msg}
	err := h.writeLocked(&h.entry)
	h.entry = core.Entry{}
	h.mu.Unlock()
	h.stats.Record(err)
}

// Exception appends an error value.
func (h *FileSink) Exception(tag any, err error) {
	h.mu.Lock()
	h.entry = core.Entry{
		Time:    time.Now(),
		Level:   core.ExceptionLevel,
		Tag:     tag,
		Message: core.ErrorMessage(err),
		Err:     err,
	}
	werr := h.writeLocked(&h.entry)
	h.entry = core.Entry{}
	h.mu.Unlock()
	h.stats.Record(werr)
}

// writeLocked formats and buffers an entry. h.mu must be held.
func (h *FileSink) writeLocked(entry *core.Entry) error {
	if h.closed {
		return os.ErrClosed
	}

	var err error
	if h.bufferFormatter != nil {
		h.buf.Reset()
		h.bufferFormatter.FormatEntry(entry, &h.buf)
		_, err = h.bufWriter.Write(h.buf.Bytes())
	} else {
		var data []byte
		data, err = h.formatter.Format(entry)
		if err == nil {
			_, err = h.bufWriter.Write(data)
		}
	}
	if err != nil {
		return err
	}

	if entry.Level > h.flushLevel {
		return nil
	}
	return h.bufWriter.Flush()
}

func (h *FileSink) flushLoop(interval time.Duration) {
	defer h.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := h.Sync(); err != nil && !errors.Is(err, os.ErrClosed) {
				h.stats.IncrementErrors()
			}
		case <-h.stop:
			return
		}
	}
}

// Sync flushes buffered entries and commits the file to stable storage.
func (h *FileSink) Sync() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return os.ErrClosed
	}
	if err := h.bufWriter.Flush(); err != nil {
		return errors.Wrap(err, "filesink: flush")
	}
	return errors.Wrap(h.file.Sync(), "filesink: sync")
}

// Stats returns a snapshot of the current statistics
func (h *FileSink) Stats() sink.Snapshot {
	return h.stats.GetSnapshot()
}

// Close flushes and closes the file. It is safe to call more than once;
// calls after Close are counted as write errors.
func (h *FileSink) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	close(h.stop)
	err := multierr.Combine(
		errors.Wrap(h.bufWriter.Flush(), "filesink: flush"),
		errors.Wrap(h.file.Close(), "filesink: close"),
	)
	h.mu.Unlock()

	h.wg.Wait()
	return err
}
