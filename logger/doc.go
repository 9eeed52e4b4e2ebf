// Package logger is the public API of gatelog. Most application code
// only needs to import this package.
//
// A Logger is bound to one sink.Sink and is immutable after New. It
// exposes one accessor per severity. Each accessor asks the sink whether
// its level is available and returns a handle, or nil when it is not:
//
//	if h := log.Info(); h != nil {
//	    h.Msg("cache warmed: " + stats.String())
//	}
//
// Guarding on the handle is what keeps disabled logging free: the
// message expression is never evaluated, and the disabled path does no
// allocation. Handles never re-check the gate when emitting.
//
// Handles can be narrowed to a tag, an opaque comparable value the sink
// uses for per-subsystem filtering. Tagging uses the comma-ok form:
//
//	if h, ok := log.Error().Tag("db"); ok {
//	    h.Msg("connection lost")
//	}
//
// Calling Tag or Msg on a nil handle is a no-op, so the chain above is
// safe when Error is disabled.
//
// Exceptions go through their own gate, independent of the message
// levels:
//
//	if h := log.Exception(); h != nil {
//	    h.Exc(err)
//	}
//
// The package initializes a default Logger (sync, text format to
// stderr, Info and more severe) in init(). The package-level accessors
// Info, Error, Exception, etc. delegate to this default instance.
//
// Logger holds no locks. It is safe for concurrent use whenever its sink
// is; every sink shipped with gatelog is.
package logger
