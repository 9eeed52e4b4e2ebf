// Package core defines the shared types used across gatelog.
//
// It provides the Level type, the six fixed severities the facade gates
// on, and the Entry type that sinks build from a Msg or Exception call.
//
// Entry objects are pooled via sync.Pool so that sinks which queue
// entries (the async console sink) do not allocate per call. Callers get
// an Entry with GetEntry or one of the New*Entry helpers and must return
// it with PutEntry once it has been written.
//
// Tags are opaque: core never compares them, it only renders them for
// output through TagString.
package core
