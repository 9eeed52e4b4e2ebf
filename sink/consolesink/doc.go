// Package consolesink provides sinks that write formatted entries to any
// io.Writer (default: os.Stderr).
//
// Sinks are split into specialized sync and async variants:
//
//   - SyncSink formats and writes on the caller's goroutine, reusing one
//     entry and one buffer under its lock.
//   - AsyncSink queues pooled entries to a background goroutine and
//     applies a per-level OverflowPolicy when the queue is full.
//
// The factory function New chooses the variant based on the Async field
// in Config. Both decide availability with a *sink.Filter, which can be
// changed at runtime through Filter().
package consolesink
