package command

import (
	"sort"
	"sync"
)

// Registry manages command entries by exact name.
//
// All dispatch and all mutation happen strictly interleaved on the REPL
// goroutine; the mutex guards against auxiliary readers (e.g. tests).
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*Entry
}

// NewRegistry creates an empty command registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*Entry),
	}
}

// Register adds an entry, replacing any existing entry with the same name.
// It returns the replaced entry, or nil if the name was free.
func (r *Registry) Register(e *Entry) (*Entry, error) {
	if e == nil {
		return nil, ErrNilEntry
	}
	if e.Name == "" {
		return nil, ErrEmptyName
	}
	if e.Proc == nil {
		return nil, ErrNilProc
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	prev := r.entries[e.Name]
	r.entries[e.Name] = e
	return prev, nil
}

// Get returns the entry for a command name.
// Returns nil if no entry is registered.
func (r *Registry) Get(name string) *Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.entries[name]
}

// Has returns true if an entry is registered under the name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[name]
	return ok
}

// List returns all registered entries sorted by name.
func (r *Registry) List() []*Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]*Entry, len(names))
	for i, name := range names {
		result[i] = r.entries[name]
	}
	return result
}

// Names returns all registered command names sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered entries.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Clear removes all registered entries.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = make(map[string]*Entry)
}
