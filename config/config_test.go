package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipp01105/gatelog/core"
	"github.com/philipp01105/gatelog/logger"
	"github.com/philipp01105/gatelog/sink"
	"github.com/philipp01105/gatelog/sink/consolesink"
	"github.com/philipp01105/gatelog/sink/filesink"
	"github.com/philipp01105/gatelog/sink/metricsink"
)

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, sink.UpTo(core.InfoLevel), cfg.LevelMask())
}

func TestParse_Full(t *testing.T) {
	cfg, err := Parse([]byte(`
levels: [exception, error, checkpoint]
tags:
  default: false
  enabled: [db, http]
  disabled: [http]
output:
  kind: console
  path: stdout
  format: json
  async: true
  buffer_size: 64
  block_timeout: 250ms
  error_stack: true
metrics:
  enabled: true
  namespace: app
`))
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Threshold)
	assert.Equal(t, sink.MaskOf(core.ExceptionLevel, core.ErrorLevel, core.CheckpointLevel), cfg.LevelMask())
	assert.Equal(t, FormatJSON, cfg.Output.Format)
	assert.Equal(t, 250*time.Millisecond, cfg.Output.BlockTimeout)
	assert.Equal(t, 64, cfg.Output.BufferSize)
	assert.True(t, cfg.Output.ErrorStack)
	assert.True(t, cfg.Metrics.Enabled)

	f := cfg.Filter()
	assert.True(t, f.IsTagAvailable("db"))
	assert.False(t, f.IsTagAvailable("http"))
	assert.False(t, f.IsTagAvailable("ui"))
	assert.True(t, f.IsTagAvailable(nil))
	assert.False(t, f.IsLevelAvailable(core.InfoLevel))
}

func TestParse_Threshold(t *testing.T) {
	cfg, err := Parse([]byte("threshold: warn\n"))
	require.NoError(t, err)
	assert.Equal(t, sink.UpTo(core.WarningLevel), cfg.LevelMask())
	assert.Equal(t, KindConsole, cfg.Output.Kind)
	assert.Equal(t, "stderr", cfg.Output.Path)
}

func TestParse_JSON(t *testing.T) {
	cfg, err := Parse([]byte(`{"threshold": "trace", "output": {"format": "json"}}`))
	require.NoError(t, err)
	assert.Equal(t, sink.AllLevels, cfg.LevelMask())
	assert.Equal(t, FormatJSON, cfg.Output.Format)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want []string
	}{
		{"unknown key", "colour: red\n", []string{"decode"}},
		{"bad threshold", "threshold: loud\n", []string{`unknown threshold level "loud"`}},
		{"bad level", "levels: [info, chatty]\n", []string{`unknown level "chatty"`}},
		{"both", "threshold: info\nlevels: [info]\n", []string{"mutually exclusive"}},
		{"bad kind", "output: {kind: syslog}\n", []string{`unknown output kind "syslog"`}},
		{"file without path", "output: {kind: file}\n", []string{"needs a path"}},
		{"console cbor", "output: {format: cbor}\n", []string{"cbor format needs a file output"}},
		{"console path", "output: {path: /tmp/x}\n", []string{"stdout or stderr"}},
		{"file async", "output: {kind: file, path: x.log, async: true}\n", []string{"async is only supported"}},
		{
			"several at once",
			"threshold: loud\noutput: {kind: file, format: xml}\n",
			[]string{"unknown threshold", "needs a path", `unknown output format "xml"`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			for _, w := range tt.want {
				assert.Contains(t, err.Error(), w)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "log.yaml")
	require.NoError(t, os.WriteFile(path, []byte("threshold: error\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, sink.UpTo(core.ErrorLevel), cfg.LevelMask())

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.yaml")
}

func TestBuild_Console(t *testing.T) {
	cfg, err := Parse([]byte("threshold: warning\ntags: {disabled: [ui]}\n"))
	require.NoError(t, err)

	s, err := cfg.Build()
	require.NoError(t, err)
	defer s.Close()

	cs, ok := s.(*consolesink.SyncSink)
	require.True(t, ok)
	assert.True(t, cs.IsLevelAvailable(core.WarningLevel))
	assert.False(t, cs.IsLevelAvailable(core.InfoLevel))
	assert.False(t, cs.IsTagAvailable("ui"))
}

func TestBuild_ConsoleAsync(t *testing.T) {
	cfg, err := Parse([]byte("output: {async: true, buffer_size: 8}\n"))
	require.NoError(t, err)

	s, err := cfg.Build()
	require.NoError(t, err)
	_, ok := s.(*consolesink.AsyncSink)
	assert.True(t, ok)
	assert.NoError(t, s.Close())
}

func TestBuild_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	cfg, err := Parse([]byte("threshold: info\noutput:\n  kind: file\n  path: " + path + "\n  omit_time: true\n"))
	require.NoError(t, err)

	log, s, err := cfg.NewLogger()
	require.NoError(t, err)
	_, ok := s.(*filesink.FileSink)
	require.True(t, ok)

	log.Info().Msg("hello")
	if h, ok := log.Warning().Tag("db"); ok {
		h.Msg("slow")
	}
	assert.Nil(t, log.Trace())
	require.NoError(t, s.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Equal(t, []string{"[INFO] hello", "[WARNING] [db] slow"}, lines)
}

func TestBuild_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	cfg, err := Parse([]byte("metrics: {enabled: true, namespace: svc}\n"))
	require.NoError(t, err)

	s, err := cfg.BuildWith(reg)
	require.NoError(t, err)
	defer s.Close()

	ms, ok := s.(*metricsink.Sink)
	require.True(t, ok)
	_, ok = ms.Inner().(*consolesink.SyncSink)
	assert.True(t, ok)

	logger.New(ms).Trace()
	families, err := reg.Gather()
	require.NoError(t, err)
	var names []string
	for _, mf := range families {
		names = append(names, mf.GetName())
	}
	assert.Contains(t, names, "svc_level_checks_total")
}

func TestBuild_MetricsConflictClosesSink(t *testing.T) {
	reg := prometheus.NewRegistry()
	cfg, err := Parse([]byte("metrics: {enabled: true}\n"))
	require.NoError(t, err)

	first, err := cfg.BuildWith(reg)
	require.NoError(t, err)
	defer first.Close()

	_, err = cfg.BuildWith(reg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "build metrics")
}

func TestBuild_InvalidConfig(t *testing.T) {
	cfg := Default()
	cfg.Output.Kind = "pipe"
	_, err := cfg.Build()
	assert.Error(t, err)
}
