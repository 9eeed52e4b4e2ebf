package slogsink

import (
	"context"
	"log/slog"
	"strings"

	"github.com/pkg/errors"

	"github.com/philipp01105/gatelog/core"
	"github.com/philipp01105/gatelog/sink"
)

// Handler is a slog.Handler that forwards records to a sink, so code
// written against log/slog can share the sink and filter of a gatelog
// Logger.
//
// An attribute named TagKey at the top level becomes the call's tag; a
// value that cannot be a map key (a slice, say) is passed as its string
// form. An error attribute named ErrorKey on a record at LevelException or
// above is sent through Sink.Exception. Every other attribute is appended
// to the message as key=value.
//
// Sink.Exception carries only the error, so for such records the message
// and the remaining attributes are folded into it with errors.WithMessage.
// errors.Cause still returns the original error.
type Handler struct {
	sink  sink.Sink
	tag   any
	attrs string
	group string
}

var _ slog.Handler = (*Handler)(nil)

// NewHandler creates a Handler that forwards to s.
func NewHandler(s sink.Sink) *Handler {
	if s == nil {
		s = sink.Nop{}
	}
	return &Handler{sink: s}
}

// CoreLevel maps a slog level to the nearest severity at or below it.
func CoreLevel(level slog.Level) core.Level {
	switch {
	case level >= LevelException:
		return core.ExceptionLevel
	case level >= slog.LevelError:
		return core.ErrorLevel
	case level >= slog.LevelWarn:
		return core.WarningLevel
	case level >= LevelCheckpoint:
		return core.CheckpointLevel
	case level >= slog.LevelInfo:
		return core.InfoLevel
	default:
		return core.TraceLevel
	}
}

// Enabled asks the sink whether the mapped level is available.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return h.sink.IsLevelAvailable(CoreLevel(level))
}

// Handle forwards one record.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	level := CoreLevel(r.Level)
	tag := h.tag

	var (
		b   strings.Builder
		err error
	)
	b.WriteString(r.Message)
	b.WriteString(h.attrs)
	r.Attrs(func(a slog.Attr) bool {
		if h.group == "" {
			switch a.Key {
			case TagKey:
				tag = tagValue(a.Value)
				return true
			case ErrorKey:
				if e, ok := a.Value.Resolve().Any().(error); ok && level == core.ExceptionLevel {
					err = e
					return true
				}
			}
		}
		appendAttr(&b, h.group, a)
		return true
	})

	if tag != nil && !h.sink.IsTagAvailable(tag) {
		return nil
	}
	if err != nil {
		if b.Len() > 0 {
			err = errors.WithMessage(err, b.String())
		}
		h.sink.Exception(tag, err)
		return nil
	}
	h.sink.Msg(tag, level, b.String())
	return nil
}

// WithAttrs returns a Handler that adds attrs to every record.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	h2 := *h
	var b strings.Builder
	b.WriteString(h.attrs)
	for _, a := range attrs {
		if h.group == "" && a.Key == TagKey {
			h2.tag = tagValue(a.Value)
			continue
		}
		appendAttr(&b, h.group, a)
	}
	h2.attrs = b.String()
	return &h2
}

// WithGroup returns a Handler that qualifies later attribute keys with
// name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	if h.group != "" {
		h2.group = h.group + "." + name
	} else {
		h2.group = name
	}
	return &h2
}

func tagValue(v slog.Value) any {
	v = v.Resolve()
	tag := v.Any()
	if !sink.ComparableTag(tag) {
		return v.String()
	}
	return tag
}

// appendAttr writes " key=value", flattening groups into dotted keys.
func appendAttr(b *strings.Builder, group string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	key := a.Key
	if group != "" && key != "" {
		key = group + "." + key
	} else if key == "" {
		key = group
	}
	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			appendAttr(b, key, ga)
		}
		return
	}
	b.WriteByte(' ')
	b.WriteString(key)
	b.WriteByte('=')
	b.WriteString(a.Value.String())
}
