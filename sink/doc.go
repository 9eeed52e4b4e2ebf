// Package sink defines the contract between the logger facade and the
// backends that actually record log output.
//
// A Sink answers two cheap questions, IsLevelAvailable and
// IsTagAvailable, and accepts two emissions, Msg and Exception. The
// facade asks the questions; the sink owns every answer, including
// threshold semantics such as "Info and everything more severe".
//
// Filter is the shared building block for sinks that decide availability
// themselves. It holds a LevelMask and a tag policy that can be changed
// at runtime without locking readers:
//
//	f := sink.NewFilter(sink.UpTo(core.InfoLevel))
//	f.DisableTag("ui")
//
// Sinks that queue work report Stats: per-level dropped counts, blocked
// sends, processed entries and absorbed write errors. Async queues apply
// a per-level OverflowPolicy (DropNewest, DropOldest or Block).
//
// Built-in sinks live in subpackages:
//
//   - consolesink writes formatted entries to any io.Writer.
//   - filesink appends formatted entries to a file.
//   - zapsink, zerologsink, logrussink and slogsink hand entries to an
//     existing logging library and let it decide level availability.
//   - metricsink wraps another sink and counts traffic with Prometheus.
//   - sinktest records calls for tests.
package sink
