package font

import (
	"fmt"
	"sort"
	"sync"
)

// Registry assigns stable internal PDF resource names ("F1", "F2", ...) to
// Font handles used within a single document, and accumulates the set of
// codepoints each font is asked to render so embedded fonts can be
// subsetted to exactly what was used (spec §4.5).
//
// A Registry is not safe for concurrent use across documents; quill builds
// one per Document per spec §5 (synchronous, single-threaded).
type Registry struct {
	mu     sync.Mutex
	order  []string
	byName map[string]Font
	used   map[string]map[rune]struct{}
	frozen bool
}

// NewRegistry returns an empty font registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]Font),
		used:   make(map[string]map[rune]struct{}),
	}
}

// Use registers f (if not already known) and records that r was rendered
// with it, returning the internal resource name to reference it by in
// content streams. Calling Use after Freeze panics: it indicates a layout
// bug, not a caller-reachable error (spec §3 Lifecycle).
func (reg *Registry) Use(f Font, r rune) string {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	if reg.frozen {
		panic("font: Registry.Use called after Freeze")
	}
	name := reg.nameFor(f)
	set := reg.used[name]
	if set == nil {
		set = make(map[rune]struct{})
		reg.used[name] = set
	}
	set[r] = struct{}{}
	return name
}

// nameFor returns f's resource name, assigning a new one ("F%d") the first
// time f is seen. Identity is by pointer/interface value, matching how the
// style package hands out shared Font handles.
func (reg *Registry) nameFor(f Font) string {
	for _, n := range reg.order {
		if reg.byName[n] == f {
			return n
		}
	}
	name := fmt.Sprintf("F%d", len(reg.order)+1)
	reg.order = append(reg.order, name)
	reg.byName[name] = f
	return name
}

// Fonts returns the resource-name -> Font handle assignment made so far.
// Safe to call before Freeze; rendering code uses it to resolve a Box's
// glyphs back to the Font that shaped them.
func (reg *Registry) Fonts() map[string]Font {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	out := make(map[string]Font, len(reg.byName))
	for name, f := range reg.byName {
		out[name] = f
	}
	return out
}

// Freeze closes the registry to further Use calls and returns the final
// resource-name -> Font assignment in deterministic (assignment) order.
func (reg *Registry) Freeze() []Entry {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.frozen = true
	entries := make([]Entry, 0, len(reg.order))
	for _, name := range reg.order {
		runes := make([]rune, 0, len(reg.used[name]))
		for r := range reg.used[name] {
			runes = append(runes, r)
		}
		sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })
		entries = append(entries, Entry{
			Name:  name,
			Font:  reg.byName[name],
			Runes: runes,
		})
	}
	return entries
}

// Entry is one resolved font resource: its internal name, handle, and the
// exact set of codepoints it was asked to render.
type Entry struct {
	Name  string
	Font  Font
	Runes []rune
}
