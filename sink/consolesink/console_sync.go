package consolesink

import (
	"sync"

	"github.com/philipp01105/gatelog/core"
	"github.com/philipp01105/gatelog/sink"
)

// SyncSink writes each call on the caller's goroutine. It reuses one
// entry and one buffer under its lock, so an enabled call does not
// allocate.
type SyncSink struct {
	consoleBase
	closeOnce sync.Once
}

var (
	_ sink.Closer        = (*SyncSink)(nil)
	_ sink.StatsProvider = (*SyncSink)(nil)
)

func newSyncSink(cfg Config) *SyncSink {
	h := &SyncSink{}
	h.init(cfg)
	return h
}

// Msg writes a message.
func (h *SyncSink) Msg(tag any, level core.Level, msg string) {
	h.mu.Lock()
	h.entry = core.Entry{Time: h.now(), Level: level, Tag: tag, Message: msg}
	err := h.writeLocked(&h.entry)
	h.entry = core.Entry{}
	h.mu.Unlock()
	h.stats.Record(err)
}

// Exception writes an error value.
func (h *SyncSink) Exception(tag any, err error) {
	h.mu.Lock()
	h.entry = core.Entry{
		Time:    h.now(),
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

// Close closes the sink. The writer is not closed; it belongs to the caller.
func (h *SyncSink) Close() error {
	h.closeOnce.Do(func() { close(h.closed) })
	return nil
}
