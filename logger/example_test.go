package logger_test

import (
	"errors"
	"os"

	"github.com/philipp01105/gatelog/core"
	"github.com/philipp01105/gatelog/formatter"
	"github.com/philipp01105/gatelog/logger"
	"github.com/philipp01105/gatelog/sink"
	"github.com/philipp01105/gatelog/sink/consolesink"
)

func newExampleLogger(levels sink.LevelMask) (*logger.Logger, *sink.Filter) {
	f := sink.NewFilter(levels)
	s := consolesink.New(consolesink.Config{
		Writer:    os.Stdout,
		Formatter: formatter.NewTextFormatter(formatter.Config{OmitTime: true}),
		Filter:    f,
	})
	return logger.New(s), f
}

// Guard on the handle so disabled messages are never built.
func Example() {
	log, _ := newExampleLogger(sink.UpTo(core.InfoLevel))

	if h := log.Info(); h != nil {
		h.Msg("server started")
	}
	if h := log.Trace(); h != nil {
		h.Msg("never printed")
	}
	// Output:
	// [INFO] server started
}

// Narrow a level to a tag; the sink decides which tags are on.
func ExampleLevelHandle_Tag() {
	log, f := newExampleLogger(sink.AllLevels)
	f.DisableTag("ui")

	if h, ok := log.Warning().Tag("db"); ok {
		h.Msg("slow query")
	}
	if h, ok := log.Warning().Tag("ui"); ok {
		h.Msg("never printed")
	}
	// Output:
	// [WARNING] [db] slow query
}

func ExampleLogger_Exception() {
	log, _ := newExampleLogger(sink.MaskOf(core.ExceptionLevel))

	if h := log.Exception(); h != nil {
		h.Exc(errors.New("connection reset"))
	}
	// Output:
	// [EXCEPTION] connection reset
}

func ExampleLogger_Tagged() {
	log, _ := newExampleLogger(sink.AllLevels)

	if db, ok := log.Tagged("db"); ok {
		if h, ok := db.Checkpoint(); ok {
			h.Msg("migrations applied")
		}
	}
	// Output:
	// [CHECKPOINT] [db] migrations applied
}
