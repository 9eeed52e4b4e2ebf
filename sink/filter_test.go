package sink

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/philipp01105/gatelog/core"
)

func TestUpTo(t *testing.T) {
	m := UpTo(core.WarningLevel)

	assert.True(t, m.Has(core.ExceptionLevel))
	assert.True(t, m.Has(core.ErrorLevel))
	assert.True(t, m.Has(core.WarningLevel))
	assert.False(t, m.Has(core.CheckpointLevel))
	assert.False(t, m.Has(core.InfoLevel))
	assert.False(t, m.Has(core.TraceLevel))

	assert.Equal(t, AllLevels, UpTo(core.TraceLevel))
	assert.Equal(t, AllLevels, UpTo(core.Level(200)))
}

func TestMaskOf(t *testing.T) {
	m := MaskOf(core.ErrorLevel, core.ExceptionLevel, core.Level(99))

	assert.True(t, m.Has(core.ErrorLevel))
	assert.True(t, m.Has(core.ExceptionLevel))
	assert.False(t, m.Has(core.WarningLevel))
	assert.False(t, m.Has(core.Level(99)))
}

func TestFilter_Levels(t *testing.T) {
	f := NewFilter(MaskOf(core.ErrorLevel))

	assert.True(t, f.IsLevelAvailable(core.ErrorLevel))
	assert.False(t, f.IsLevelAvailable(core.ExceptionLevel))

	f.EnableLevel(core.ExceptionLevel)
	assert.True(t, f.IsLevelAvailable(core.ExceptionLevel))

	f.DisableLevel(core.ErrorLevel)
	assert.False(t, f.IsLevelAvailable(core.ErrorLevel))
	assert.True(t, f.IsLevelAvailable(core.ExceptionLevel))

	f.SetLevels(UpTo(core.InfoLevel))
	assert.Equal(t, UpTo(core.InfoLevel), f.Levels())
	assert.False(t, f.IsLevelAvailable(core.TraceLevel))
}

func TestFilter_Tags(t *testing.T) {
	f := NewFilter(AllLevels)

	assert.True(t, f.IsTagAvailable("db"), "tags are enabled by default")
	assert.True(t, f.IsTagAvailable(nil))

	f.DisableTag("ui")
	assert.False(t, f.IsTagAvailable("ui"))
	assert.True(t, f.IsTagAvailable("db"))

	f.SetTagDefault(false)
	assert.False(t, f.IsTagAvailable("db"))
	assert.True(t, f.IsTagAvailable(nil), "the untagged form is never filtered by tag")

	f.EnableTag("db")
	assert.True(t, f.IsTagAvailable("db"))

	f.ResetTag("db")
	assert.False(t, f.IsTagAvailable("db"))
}

func TestFilter_NonStringTags(t *testing.T) {
	type subsystem int
	f := NewFilter(AllLevels)
	f.DisableTag(subsystem(1))

	assert.False(t, f.IsTagAvailable(subsystem(1)))
	assert.True(t, f.IsTagAvailable(subsystem(2)))
	assert.True(t, f.IsTagAvailable(1), "tags of different types never match")
}

func TestFilter_UncomparableTags(t *testing.T) {
	type key struct{ parts []string }
	f := NewFilter(AllLevels)
	f.DisableTag("db")
	f.DisableTag([]string{"ui"})
	f.ResetTag(map[string]int{})

	assert.NotPanics(t, func() {
		assert.True(t, f.IsTagAvailable([]string{"db"}))
		assert.True(t, f.IsTagAvailable(key{parts: []string{"db"}}))
		assert.True(t, f.IsTagAvailable(any(func() {})))
	})
	assert.False(t, f.IsTagAvailable("db"))

	f.SetTagDefault(false)
	assert.False(t, f.IsTagAvailable([]string{"db"}), "follows the default")
}

func TestComparableTag(t *testing.T) {
	type pair struct{ a, b string }
	type holder struct{ v any }
	assert.True(t, ComparableTag("db"))
	assert.True(t, ComparableTag(nil))
	assert.True(t, ComparableTag(pair{"a", "b"}))
	assert.True(t, ComparableTag(holder{v: 1}))
	assert.False(t, ComparableTag([]string{"db"}))
	assert.False(t, ComparableTag(map[string]bool{}))
	assert.False(t, ComparableTag(holder{v: []int{1}}))
}

func TestFilter_Nil(t *testing.T) {
	var f *Filter
	for _, l := range core.Levels() {
		assert.True(t, f.IsLevelAvailable(l))
	}
	assert.True(t, f.IsTagAvailable("anything"))
}

func TestFilter_ZeroValue(t *testing.T) {
	var f Filter
	assert.False(t, f.IsLevelAvailable(core.ErrorLevel))
	assert.True(t, f.IsTagAvailable("db"))

	f.DisableTag("db")
	assert.False(t, f.IsTagAvailable("db"))
}

func TestFilter_ConcurrentUpdates(t *testing.T) {
	f := NewFilter(0)

	var wg sync.WaitGroup
	for _, l := range core.Levels() {
		wg.Add(1)
		go func(l core.Level) {
			defer wg.Done()
			f.EnableLevel(l)
			f.EnableTag(l.String())
			_ = f.IsTagAvailable("other")
		}(l)
	}
	wg.Wait()

	assert.Equal(t, AllLevels, f.Levels())
	for _, l := range core.Levels() {
		assert.True(t, f.IsTagAvailable(l.String()))
	}
}

func BenchmarkFilter_IsLevelAvailable(b *testing.B) {
	f := NewFilter(UpTo(core.InfoLevel))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = f.IsLevelAvailable(core.TraceLevel)
	}
}

func BenchmarkFilter_IsTagAvailable(b *testing.B) {
	f := NewFilter(AllLevels)
	f.DisableTag("ui")
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = f.IsTagAvailable("db")
	}
}
