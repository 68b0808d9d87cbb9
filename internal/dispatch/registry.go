// Package dispatch maps command names to lazily constructed implementations.
//
// The registry is a closed, immutable table of factory functions: the "load
// on demand" property comes from deferring the factory call until the first
// Resolve, not from reflective symbol lookup. Locator strings are carried as
// diagnostic labels only.
package dispatch

import (
	"context"
	"sort"
)

// Command is a resolved command implementation.
type Command interface {
	// Name is the registry name the command answers to.
	Name() string
	// Run executes the command with the remaining CLI arguments.
	Run(ctx context.Context, args []string) error
}

// Factory constructs a command implementation on first use.
type Factory func() (Command, error)

// Descriptor identifies where a lazily constructed command lives.
type Descriptor struct {
	// Locator labels the implementation site, e.g. "actions.Playback".
	Locator string
	// New builds the implementation. A nil New is a registry defect and
	// surfaces as SymbolNotFoundError at resolve time.
	New Factory
}

// Registry is the immutable command table. It is defined at process start
// and never mutated; lookups are read-only.
type Registry struct {
	entries map[string]Descriptor
}

// NewRegistry copies entries into a new registry.
func NewRegistry(entries map[string]Descriptor) *Registry {
	m := make(map[string]Descriptor, len(entries))
	for name, desc := range entries {
		m[name] = desc
	}
	return &Registry{entries: m}
}

// Lookup returns the descriptor for name.
func (r *Registry) Lookup(name string) (Descriptor, bool) {
	desc, ok := r.entries[name]
	return desc, ok
}

// Names returns all registered command names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	return len(r.entries)
}
