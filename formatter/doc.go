// Package formatter defines how sinks serialize entries into bytes.
//
// Formatter returns a []byte; BufferFormatter writes into a
// caller-provided bytes.Buffer. Sinks check for BufferFormatter at
// construction time and prefer it, so the write path reuses one buffer
// instead of allocating.
//
// TextFormatter and JSONFormatter build their output by hand with
// Append-style functions. The TextFormatter pre-computes level bracket
// strings ("[INFO] ", etc.). CBORFormatter encodes integer-keyed
// records with github.com/fxamacker/cbor/v2 for machine-read files;
// DecodeRecord and NewRecordDecoder read them back.
//
// Exceptions are rendered from their error value. When the error wraps a
// different root cause (github.com/pkg/errors Cause), the cause is
// added. With ErrorStack set the full %+v rendering, including pkg/errors
// stack traces, is included too.
//
// Buffers larger than 64 KiB are not returned to the pool to prevent
// a single large log line from permanently inflating memory usage.
package formatter
