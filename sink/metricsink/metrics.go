// Package metricsink wraps a sink and exports Prometheus counters for the
// gate decisions and emissions that pass through it.
package metricsink

import (
	"io"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/philipp01105/gatelog/core"
	"github.com/philipp01105/gatelog/sink"
)

// DefaultNamespace prefixes every metric name when Config.Namespace is empty.
const DefaultNamespace = "gatelog"

// Config configures the metric names and registry.
type Config struct {
	// Namespace prefixes metric names. Defaults to DefaultNamespace.
	Namespace string
	// Subsystem is an optional second name component.
	Subsystem string
	// Registerer receives the collectors. Defaults to
	// prometheus.DefaultRegisterer.
	Registerer prometheus.Registerer
}

func (c *Config) applyDefaults() {
	if c.Namespace == "" {
		c.Namespace = DefaultNamespace
	}
	if c.Registerer == nil {
		c.Registerer = prometheus.DefaultRegisterer
	}
}

type levelCounters struct {
	available   prometheus.Counter
	unavailable prometheus.Counter
	messages    prometheus.Counter
}

// Sink forwards every call to an inner sink and counts it.
type Sink struct {
	inner sink.Sink

	levels       [core.NumLevels]levelCounters
	tagAvailable prometheus.Counter
	tagFiltered  prometheus.Counter
	exceptions   prometheus.Counter
	collectors   []prometheus.Collector
	registerer   prometheus.Registerer
}

var _ sink.Closer = (*Sink)(nil)

// New wraps inner and registers its collectors with cfg.Registerer.
// When inner implements sink.StatsProvider its counters are exported too.
func New(inner sink.Sink, cfg Config) (*Sink, error) {
	if inner == nil {
		return nil, errors.New("metricsink: nil inner sink")
	}
	cfg.applyDefaults()

	s := &Sink{inner: inner, registerer: cfg.Registerer}

	checks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: cfg.Namespace,
		Subsystem: cfg.Subsystem,
		Name:      "level_checks_total",
		Help:      "Level availability checks by level and outcome.",
	}, []string{"level", "available"})
	messages := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: cfg.Namespace,
		Subsystem: cfg.Subsystem,
		Name:      "messages_total",
		Help:      "Messages forwarded to the sink by level.",
	}, []string{"level"})
	tags := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: cfg.Namespace,
		Subsystem: cfg.Subsystem,
		Name:      "tag_checks_total",
		Help:      "Tag availability checks by outcome.",
	}, []string{"available"})
	s.exceptions = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: cfg.Namespace,
		Subsystem: cfg.Subsystem,
		Name:      "exceptions_total",
		Help:      "Exceptions forwarded to the sink.",
	})

	// Children are resolved once so the hot path never hashes labels.
	for _, l := range core.Levels() {
		name := l.String()
		s.levels[l] = levelCounters{
			available:   checks.WithLabelValues(name, "true"),
			unavailable: checks.WithLabelValues(name, "false"),
			messages:    messages.WithLabelValues(name),
		}
	}
	s.tagAvailable = tags.WithLabelValues("true")
	s.tagFiltered = tags.WithLabelValues("false")

	s.collectors = []prometheus.Collector{checks, messages, tags, s.exceptions}
	if sp, ok := inner.(sink.StatsProvider); ok {
		s.collectors = append(s.collectors, statsCollectors(cfg, sp)...)
	}

	var (
		err        error
		registered []prometheus.Collector
	)
	for _, c := range s.collectors {
		if rerr := cfg.Registerer.Register(c); rerr != nil {
			err = multierr.Append(err, rerr)
			continue
		}
		registered = append(registered, c)
	}
	if err != nil {
		s.unregister(registered)
		return nil, errors.Wrap(err, "metricsink: register collectors")
	}
	return s, nil
}

func statsCollectors(cfg Config, sp sink.StatsProvider) []prometheus.Collector {
	counter := func(name, help string, fn func(sink.Snapshot) uint64) prometheus.Collector {
		return prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      name,
			Help:      help,
		}, func() float64 { return float64(fn(sp.Stats())) })
	}
	return []prometheus.Collector{
		counter("sink_processed_total", "Entries written by the inner sink.",
			func(s sink.Snapshot) uint64 { return s.Processed }),
		counter("sink_write_errors_total", "Failed writes in the inner sink.",
			func(s sink.Snapshot) uint64 { return s.WriteErrors }),
		counter("sink_blocked_total", "Callers that waited on a full queue.",
			func(s sink.Snapshot) uint64 { return s.Blocked }),
		counter("sink_dropped_total", "Entries dropped on queue overflow.",
			func(s sink.Snapshot) uint64 {
				var total uint64
				for _, n := range s.Dropped {
					total += n
				}
				return total
			}),
	}
}

func (s *Sink) unregister(cs []prometheus.Collector) {
	for _, c := range cs {
		s.registerer.Unregister(c)
	}
}

// Inner returns the wrapped sink.
func (s *Sink) Inner() sink.Sink { return s.inner }

// IsLevelAvailable forwards to the inner sink and counts the outcome.
func (s *Sink) IsLevelAvailable(level core.Level) bool {
	ok := s.inner.IsLevelAvailable(level)
	if level.Valid() {
		if ok {
			s.levels[level].available.Inc()
		} else {
			s.levels[level].unavailable.Inc()
		}
	}
	return ok
}

// IsTagAvailable forwards to the inner sink and counts the outcome.
func (s *Sink) IsTagAvailable(tag any) bool {
	ok := s.inner.IsTagAvailable(tag)
	if ok {
		s.tagAvailable.Inc()
	} else {
		s.tagFiltered.Inc()
	}
	return ok
}

// Msg counts and forwards a message.
func (s *Sink) Msg(tag any, level core.Level, msg string) {
	if level.Valid() {
		s.levels[level].messages.Inc()
	}
	s.inner.Msg(tag, level, msg)
}

// Exception counts and forwards an error.
func (s *Sink) Exception(tag any, err error) {
	s.exceptions.Inc()
	s.inner.Exception(tag, err)
}

// Close unregisters the collectors and closes the inner sink when it
// holds resources.
func (s *Sink) Close() error {
	s.unregister(s.collectors)
	if c, ok := s.inner.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
