package formatter

import (
	"bytes"
	"strconv"
	"time"

	"github.com/philipp01105/gatelog/core"
)

// TextFormatter formats log entries as human-readable text:
//
//	2026-01-02T15:04:05Z [WARNING] [db] slow query
type TextFormatter struct {
	Config
}

// NewTextFormatter creates a new text formatter
func NewTextFormatter(cfg Config) *TextFormatter {
	if cfg.TimestampFormat == "" {
		cfg.TimestampFormat = time.RFC3339
	}
	return &TextFormatter{Config: cfg}
}

// Format formats an entry as text
func (f *TextFormatter) Format(entry *core.Entry) ([]byte, error) {
	return formatWith(f, entry), nil
}

// pre-formatted level strings to avoid multiple WriteString calls
var levelBrackets = [core.NumLevels]string{
	core.ExceptionLevel:  "[EXCEPTION] ",
	core.ErrorLevel:      "[ERROR] ",
	core.WarningLevel:    "[WARNING] ",
	core.CheckpointLevel: "[CHECKPOINT] ",
	core.InfoLevel:       "[INFO] ",
	core.TraceLevel:      "[TRACE] ",
}

// FormatEntry writes the formatted entry into the given buffer
func (f *TextFormatter) FormatEntry(entry *core.Entry, buf *bytes.Buffer) {
	if !f.OmitTime {
		buf.Write(entry.Time.AppendFormat(buf.AvailableBuffer(), f.TimestampFormat))
		buf.WriteByte(' ')
	}

	if entry.Level.Valid() {
		buf.WriteString(levelBrackets[entry.Level])
	} else {
		buf.WriteString("[UNKNOWN] ")
	}

	if entry.HasTag() {
		buf.WriteByte('[')
		buf.WriteString(core.TagString(entry.Tag))
		buf.WriteString("] ")
	}

	buf.WriteString(entry.Message)

	if entry.Err != nil {
		if cause, ok := rootCause(entry.Err); ok {
			buf.WriteString(" cause=")
			buf.WriteString(strconv.Quote(cause))
		}
		if f.ErrorStack {
			buf.WriteByte('\n')
			buf.WriteString(verbose(entry.Err))
		}
	}

	buf.WriteByte('\n')
}
