package consolesink

import (
	"sync"
	"time"

	"github.com/philipp01105/gatelog/core"
	"github.com/philipp01105/gatelog/sink"
)

// AsyncSink queues entries to a background goroutine. When the queue is
// full, each level's OverflowPolicy decides whether to drop or wait.
type AsyncSink struct {
	consoleBase
	queue          chan *core.Entry
	sendMu         sync.RWMutex // read by senders, written by Close
	wg             sync.WaitGroup
	closeOnce      sync.Once
	overflowPolicy map[core.Level]sink.OverflowPolicy
	blockTimeout   time.Duration
	drainTimeout   time.Duration
}

var (
	_ sink.Closer        = (*AsyncSink)(nil)
	_ sink.StatsProvider = (*AsyncSink)(nil)
)

func newAsyncSink(cfg Config) *AsyncSink {
	h := &AsyncSink{
		overflowPolicy: cfg.OverflowPolicy,
		blockTimeout:   cfg.BlockTimeout,
		drainTimeout:   cfg.DrainTimeout,
	}
	h.init(cfg)

	h.queue = make(chan *core.Entry, cfg.BufferSize)
	h.wg.Add(1)
	go h.process()

	return h
}

// Msg queues a message.
func (h *AsyncSink) Msg(tag any, level core.Level, msg string) {
	h.enqueue(core.NewMessageEntry(h.now(), tag, level, msg))
}

// Exception queues an error value.
func (h *AsyncSink) Exception(tag any, err error) {
	h.enqueue(core.NewExceptionEntry(h.now(), tag, err))
}

// enqueue sends an entry to the queue, applying the overflow policy.
func (h *AsyncSink) enqueue(entry *core.Entry) {
	h.sendMu.RLock()
	defer h.sendMu.RUnlock()

	// After Close there is no consumer; write on the caller's goroutine.
	select {
	case <-h.closed:
		h.writeAndRecycle(entry)
		return
	default:
	}

	policy, ok := h.overflowPolicy[entry.Level]
	if !ok {
		policy = sink.DropNewest
	}

	select {
	case h.queue <- entry:
		return
	default:
	}

	switch policy {
	case sink.Block:
		timer := time.NewTimer(h.blockTimeout)
		defer timer.Stop()
		select {
		case h.queue <- entry:
		case <-timer.C:
			// Timeout - fall back to synchronous write
			h.stats.IncrementBlocked()
			h.writeAndRecycle(entry)
		}

	case sink.DropOldest:
		select {
		case old := <-h.queue:
			h.stats.IncrementDropped(old.Level)
			core.PutEntry(old)
		default:
		}
		select {
		case h.queue <- entry:
		default:
			h.stats.IncrementDropped(entry.Level)
			core.PutEntry(entry)
		}

	default:
		h.stats.IncrementDropped(entry.Level)
		core.PutEntry(entry)
	}
}

func (h *AsyncSink) writeAndRecycle(entry *core.Entry) {
	h.write(entry)
	core.PutEntry(entry)
}

// process handles async log processing
func (h *AsyncSink) process() {
	defer h.wg.Done()

	for {
		select {
		case entry := <-h.queue:
			h.writeAndRecycle(entry)
		case <-h.closed:
			// Drain remaining entries with timeout
			deadline := time.NewTimer(h.drainTimeout)
			defer deadline.Stop()
			for {
				select {
				case entry := <-h.queue:
					h.writeAndRecycle(entry)
				case <-deadline.C:
					return
				default:
					return
				}
			}
		}
	}
}

// Close stops the background goroutine after draining the queue (bounded
// by the drain timeout). Entries still queued when the timeout expires are
// counted as dropped. Calls made after Close are written synchronously.
func (h *AsyncSink) Close() error {
	h.closeOnce.Do(func() {
		// No enqueue is mid-send once the write lock is held, so nothing
		// reaches the queue after closed is observed.
		h.sendMu.Lock()
		close(h.closed)
		h.sendMu.Unlock()
		h.wg.Wait()

		for {
			select {
			case entry := <-h.queue:
				h.stats.IncrementDropped(entry.Level)
				core.PutEntry(entry)
			default:
				return
			}
		}
	})
	return nil
}
