// Package filesink provides a sink that appends formatted entries to a
// file.
//
// Writes go through a bufio.Writer. The buffer is flushed after every
// entry at FlushLevel or above (ErrorLevel by default, so exceptions and
// errors reach the disk immediately), on an optional FlushInterval, and
// on Sync and Close.
//
// The sink never rotates, truncates or deletes files; pair it with an
// external tool such as logrotate using copytruncate if rotation is
// needed.
package filesink
