package sink

import (
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/philipp01105/gatelog/core"
)

// LevelMask is a bit set of enabled severities.
type LevelMask uint32

// MaskOf returns a mask with exactly the given levels set.
func MaskOf(levels ...core.Level) LevelMask {
	var m LevelMask
	for _, l := range levels {
		if l.Valid() {
			m |= 1 << l
		}
	}
	return m
}

// UpTo returns a mask enabling level and every level more severe than it.
func UpTo(level core.Level) LevelMask {
	if !level.Valid() {
		return AllLevels
	}
	return LevelMask(1)<<(level+1) - 1
}

// AllLevels enables every severity.
const AllLevels = LevelMask(1)<<core.NumLevels - 1

// Has reports whether level is set in m.
func (m LevelMask) Has(level core.Level) bool {
	return level.Valid() && m&(1<<level) != 0
}

// tagPolicy is immutable once published; writers replace it wholesale.
type tagPolicy struct {
	defaultOn bool
	tags      map[any]bool
}

func (p *tagPolicy) allows(tag any) bool {
	if p == nil {
		return true
	}
	if len(p.tags) > 0 && ComparableTag(tag) {
		if on, ok := p.tags[tag]; ok {
			return on
		}
	}
	return p.defaultOn
}

// ComparableTag reports whether tag can be used as a map key. Slices, maps
// and funcs, or structs holding them, cannot; such tags never match an
// override and follow the filter's default.
func ComparableTag(tag any) bool {
	switch tag.(type) {
	case nil, string, int, core.Level:
		return true
	}
	return reflect.ValueOf(tag).Comparable()
}

// Filter decides level and tag availability for sinks that do not
// delegate that decision to a backend library. Reads are lock-free; the
// enabled sets can be changed at runtime from any goroutine.
//
// A nil *Filter admits every level and tag. The zero Filter has no
// levels enabled and every tag enabled.
//
// Overrides only apply to comparable tags; see ComparableTag.
type Filter struct {
	levels atomic.Uint32
	policy atomic.Pointer[tagPolicy]
	mu     sync.Mutex // serializes tag policy writers
}

// NewFilter creates a filter with the given level mask and every tag
// enabled.
func NewFilter(levels LevelMask) *Filter {
	f := &Filter{}
	f.levels.Store(uint32(levels))
	f.policy.Store(&tagPolicy{defaultOn: true})
	return f
}

// IsLevelAvailable reports whether level is in the enabled mask.
func (f *Filter) IsLevelAvailable(level core.Level) bool {
	if f == nil {
		return true
	}
	return LevelMask(f.levels.Load()).Has(level)
}

// IsTagAvailable reports whether tag is enabled. The nil tag is always
// available.
func (f *Filter) IsTagAvailable(tag any) bool {
	if f == nil || tag == nil {
		return true
	}
	return f.policy.Load().allows(tag)
}

// Levels returns the current level mask.
func (f *Filter) Levels() LevelMask {
	return LevelMask(f.levels.Load())
}

// SetLevels replaces the level mask.
func (f *Filter) SetLevels(m LevelMask) {
	f.levels.Store(uint32(m & AllLevels))
}

// EnableLevel adds level to the mask.
func (f *Filter) EnableLevel(level core.Level) {
	for {
		old := f.levels.Load()
		if f.levels.CompareAndSwap(old, old|uint32(MaskOf(level))) {
			return
		}
	}
}

// DisableLevel removes level from the mask.
func (f *Filter) DisableLevel(level core.Level) {
	for {
		old := f.levels.Load()
		if f.levels.CompareAndSwap(old, old&^uint32(MaskOf(level))) {
			return
		}
	}
}

// EnableTag marks tag as enabled, overriding the default.
func (f *Filter) EnableTag(tag any) {
	f.setTag(tag, true)
}

// DisableTag marks tag as disabled, overriding the default. Tags that are
// not comparable are ignored.
func (f *Filter) DisableTag(tag any) {
	f.setTag(tag, false)
}

// ResetTag drops any override for tag so it follows the default again.
func (f *Filter) ResetTag(tag any) {
	if !ComparableTag(tag) {
		return
	}
	f.update(func(p *tagPolicy) { delete(p.tags, tag) })
}

// SetTagDefault sets whether tags without an override are enabled.
func (f *Filter) SetTagDefault(enabled bool) {
	f.update(func(p *tagPolicy) { p.defaultOn = enabled })
}

func (f *Filter) setTag(tag any, on bool) {
	if tag == nil || !ComparableTag(tag) {
		return
	}
	f.update(func(p *tagPolicy) { p.tags[tag] = on })
}

func (f *Filter) update(fn func(p *tagPolicy)) {
	f.mu.Lock()
	defer f.mu.Unlock()

	old := f.policy.Load()
	if old == nil {
		old = &tagPolicy{defaultOn: true}
	}
	next := &tagPolicy{
		defaultOn: old.defaultOn,
		tags:      make(map[any]bool, len(old.tags)+1),
	}
	for k, v := range old.tags {
		next.tags[k] = v
	}
	fn(next)
	f.policy.Store(next)
}
