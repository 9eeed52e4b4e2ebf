package core

import (
	"fmt"
	"sync"
	"time"
)

// Entry is the record a sink builds from a single Msg or Exception call.
type Entry struct {
	Time    time.Time
	Level   Level
	Tag     any
	Message string
	Err     error
}

// HasTag reports whether the entry carries a tag.
func (e *Entry) HasTag() bool {
	return e.Tag != nil
}

// entryPool is a pool of Entry objects to reduce allocations
var entryPool = sync.Pool{
	New: func() interface{} {
		return &Entry{}
	},
}

// GetEntry retrieves a zeroed Entry from the pool
func GetEntry() *Entry {
	return entryPool.Get().(*Entry)
}

// PutEntry returns an Entry to the pool
func PutEntry(e *Entry) {
	if e == nil {
		return
	}
	*e = Entry{}
	entryPool.Put(e)
}

// NewMessageEntry fills a pooled entry for a message call made at t.
func NewMessageEntry(t time.Time, tag any, level Level, msg string) *Entry {
	e := GetEntry()
	e.Time = t
	e.Level = level
	e.Tag = tag
	e.Message = msg
	return e
}

// NewExceptionEntry fills a pooled entry for an exception call made at t.
// A nil error still produces an entry so the call is never silently lost.
func NewExceptionEntry(t time.Time, tag any, err error) *Entry {
	e := GetEntry()
	e.Time = t
	e.Level = ExceptionLevel
	e.Tag = tag
	e.Err = err
	e.Message = ErrorMessage(err)
	return e
}

// ErrorMessage returns err.Error(), or "<nil>" for a nil error.
func ErrorMessage(err error) string {
	if err == nil {
		return "<nil>"
	}
	return err.Error()
}

// TagString renders an opaque tag for output. Strings and Stringers avoid
// fmt; the empty string means no tag.
func TagString(tag any) string {
	switch t := tag.(type) {
	case nil:
		return ""
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(tag)
	}
}
