// Package config builds sinks from a declarative YAML description.
//
// A minimal file:
//
//	threshold: info
//	tags:
//	  disabled: [ui]
//	output:
//	  kind: file
//	  path: /var/log/app.log
//	  format: json
//
// JSON is accepted too, since every JSON document is valid YAML.
package config

import (
	"bytes"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/philipp01105/gatelog/core"
	"github.com/philipp01105/gatelog/formatter"
	"github.com/philipp01105/gatelog/logger"
	"github.com/philipp01105/gatelog/sink"
	"github.com/philipp01105/gatelog/sink/consolesink"
	"github.com/philipp01105/gatelog/sink/filesink"
	"github.com/philipp01105/gatelog/sink/metricsink"
)

// Output kinds.
const (
	KindConsole = "console"
	KindFile    = "file"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatCBOR = "cbor"
)

// Config is the top-level configuration.
type Config struct {
	// Threshold enables every level up to and including this one.
	// Mutually exclusive with Levels.
	Threshold string `yaml:"threshold"`
	// Levels lists the enabled levels explicitly.
	Levels  []string      `yaml:"levels"`
	Tags    TagsConfig    `yaml:"tags"`
	Output  OutputConfig  `yaml:"output"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// TagsConfig is the tag policy.
type TagsConfig struct {
	// Default is the availability of tags not listed below (default true).
	Default  *bool    `yaml:"default"`
	Enabled  []string `yaml:"enabled"`
	Disabled []string `yaml:"disabled"`
}

// OutputConfig selects and configures the sink.
type OutputConfig struct {
	Kind string `yaml:"kind"`
	// Path is the file for kind "file", or "stdout"/"stderr" for kind
	// "console".
	Path            string        `yaml:"path"`
	Format          string        `yaml:"format"`
	TimestampFormat string        `yaml:"timestamp_format"`
	OmitTime        bool          `yaml:"omit_time"`
	ErrorStack      bool          `yaml:"error_stack"`
	Async           bool          `yaml:"async"`
	BufferSize      int           `yaml:"buffer_size"`
	BlockTimeout    time.Duration `yaml:"block_timeout"`
	DrainTimeout    time.Duration `yaml:"drain_timeout"`
	FlushInterval   time.Duration `yaml:"flush_interval"`
}

// MetricsConfig wraps the sink with Prometheus counters when enabled.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
	Subsystem string `yaml:"subsystem"`
}

// Default returns the built-in configuration: text to stderr, levels up to
// Info, every tag enabled.
func Default() Config {
	return Config{
		Threshold: core.InfoLevel.String(),
		Output: OutputConfig{
			Kind:   KindConsole,
			Path:   "stderr",
			Format: FormatText,
		},
	}
}

// Load reads and parses a configuration file. An empty path yields Default.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config: read %s", path)
	}
	cfg, err := Parse(b)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config: %s", path)
	}
	return cfg, nil
}

// Parse decodes YAML over Default and validates the result. Unknown keys
// are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	var raw Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, errors.Wrap(err, "config: decode")
	}
	cfg.merge(raw)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) merge(o Config) {
	if o.Threshold != "" || len(o.Levels) > 0 {
		c.Threshold = o.Threshold
		c.Levels = o.Levels
	}
	c.Tags = o.Tags
	c.Metrics = o.Metrics

	def := c.Output
	c.Output = o.Output
	if c.Output.Kind == "" {
		c.Output.Kind = def.Kind
	}
	if c.Output.Format == "" {
		c.Output.Format = def.Format
	}
	if c.Output.Path == "" && c.Output.Kind == KindConsole {
		c.Output.Path = def.Path
	}
}

// Validate reports every problem in the configuration at once.
func (c Config) Validate() error {
	var err error
	if c.Threshold != "" && len(c.Levels) > 0 {
		err = multierr.Append(err, errors.New("threshold and levels are mutually exclusive"))
	}
	if c.Threshold != "" {
		if _, ok := core.ParseLevel(c.Threshold); !ok {
			err = multierr.Append(err, errors.Errorf("unknown threshold level %q", c.Threshold))
		}
	}
	for _, name := range c.Levels {
		if _, ok := core.ParseLevel(name); !ok {
			err = multierr.Append(err, errors.Errorf("unknown level %q", name))
		}
	}

	out := c.Output
	switch out.Kind {
	case KindConsole:
		switch strings.ToLower(out.Path) {
		case "", "stderr", "stdout":
		default:
			err = multierr.Append(err, errors.Errorf("console path must be stdout or stderr, got %q", out.Path))
		}
		if out.Format == FormatCBOR {
			err = multierr.Append(err, errors.New("cbor format needs a file output"))
		}
	case KindFile:
		if out.Path == "" {
			err = multierr.Append(err, errors.New("file output needs a path"))
		}
		if out.Async {
			err = multierr.Append(err, errors.New("async is only supported for console output"))
		}
	default:
		err = multierr.Append(err, errors.Errorf("unknown output kind %q", out.Kind))
	}
	switch out.Format {
	case FormatText, FormatJSON, FormatCBOR:
	default:
		err = multierr.Append(err, errors.Errorf("unknown output format %q", out.Format))
	}
	if out.BufferSize < 0 {
		err = multierr.Append(err, errors.New("buffer_size must not be negative"))
	}

	if err != nil {
		return errors.Wrap(err, "config: invalid")
	}
	return nil
}

// LevelMask returns the enabled levels.
func (c Config) LevelMask() sink.LevelMask {
	if len(c.Levels) > 0 {
		levels := make([]core.Level, 0, len(c.Levels))
		for _, name := range c.Levels {
			if l, ok := core.ParseLevel(name); ok {
				levels = append(levels, l)
			}
		}
		return sink.MaskOf(levels...)
	}
	if l, ok := core.ParseLevel(c.Threshold); ok {
		return sink.UpTo(l)
	}
	return sink.UpTo(core.InfoLevel)
}

// Filter builds the level and tag filter.
func (c Config) Filter() *sink.Filter {
	f := sink.NewFilter(c.LevelMask())
	if c.Tags.Default != nil {
		f.SetTagDefault(*c.Tags.Default)
	}
	for _, t := range c.Tags.Enabled {
		f.EnableTag(t)
	}
	for _, t := range c.Tags.Disabled {
		f.DisableTag(t)
	}
	return f
}

func (c Config) formatter() formatter.Formatter {
	fc := formatter.Config{
		TimestampFormat: c.Output.TimestampFormat,
		OmitTime:        c.Output.OmitTime,
		ErrorStack:      c.Output.ErrorStack,
	}
	switch c.Output.Format {
	case FormatJSON:
		return formatter.NewJSONFormatter(fc)
	case FormatCBOR:
		return formatter.NewCBORFormatter(fc)
	default:
		return formatter.NewTextFormatter(fc)
	}
}

// Build validates the configuration and creates the sink it describes.
// Metrics, when enabled, register on prometheus.DefaultRegisterer.
func (c Config) Build() (sink.Closer, error) {
	return c.BuildWith(nil)
}

// BuildWith is Build with an explicit metrics registerer. reg is ignored
// unless metrics are enabled.
func (c Config) BuildWith(reg prometheus.Registerer) (sink.Closer, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var s sink.Closer
	switch c.Output.Kind {
	case KindFile:
		fs, err := filesink.New(filesink.Config{
			Filename:      c.Output.Path,
			Formatter:     c.formatter(),
			Filter:        c.Filter(),
			BufferSize:    c.Output.BufferSize,
			FlushInterval: c.Output.FlushInterval,
		})
		if err != nil {
			return nil, errors.Wrap(err, "config: build file output")
		}
		s = fs
	default:
		w := os.Stderr
		if strings.EqualFold(c.Output.Path, "stdout") {
			w = os.Stdout
		}
		s = consolesink.New(consolesink.Config{
			Writer:       w,
			Formatter:    c.formatter(),
			Filter:       c.Filter(),
			Async:        c.Output.Async,
			BufferSize:   c.Output.BufferSize,
			BlockTimeout: c.Output.BlockTimeout,
			DrainTimeout: c.Output.DrainTimeout,
		})
	}

	if !c.Metrics.Enabled {
		return s, nil
	}
	ms, err := metricsink.New(s, metricsink.Config{
		Namespace:  c.Metrics.Namespace,
		Subsystem:  c.Metrics.Subsystem,
		Registerer: reg,
	})
	if err != nil {
		return nil, multierr.Append(errors.Wrap(err, "config: build metrics"), s.Close())
	}
	return ms, nil
}

// NewLogger builds the sink and a Logger over it. The caller owns the
// returned sink and must Close it.
func (c Config) NewLogger() (*logger.Logger, sink.Closer, error) {
	s, err := c.Build()
	if err != nil {
		return nil, nil, err
	}
	return logger.New(s), s, nil
}
