// Package recent tracks the files most recently opened or saved in this
// process. The list is process-scoped: it is not written to the persistent
// store and starts empty on every launch.
package recent

import (
	"path/filepath"
	"sync"
)

// DefaultCapacity bounds the registry; registering past it evicts the
// least-recently-registered entry.
const DefaultCapacity = 10

// Entry is a single recently-opened file reference.
type Entry struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

// Registry is an ordered, capacity-bounded list of registration events,
// most-recent-first. Registering the same path twice yields two entries;
// the list records events, not distinct paths.
type Registry struct {
	mu       sync.RWMutex
	entries  []Entry
	capacity int
}

func NewRegistry() *Registry {
	return &Registry{capacity: DefaultCapacity}
}

// NewRegistryWithCapacity is used by tests that exercise eviction with a
// smaller bound.
func NewRegistryWithCapacity(capacity int) *Registry {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Registry{capacity: capacity}
}

// Register records a registration event for path at the front of the list.
// The display name is the final path component. No existence check is
// performed and the call cannot fail.
func (r *Registry) Register(path string) {
	entry := Entry{Path: path, Name: filepath.Base(path)}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append([]Entry{entry}, r.entries...)
	if len(r.entries) > r.capacity {
		r.entries = r.entries[:r.capacity]
	}
}

// List returns a snapshot of the first limit entries, most-recent-first.
// limit <= 0 means the registry capacity (10 by default). The returned
// slice does not alias internal storage.
func (r *Registry) List(limit int) []Entry {
	if limit <= 0 {
		limit = r.capacity
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit > len(r.entries) {
		limit = len(r.entries)
	}
	snapshot := make([]Entry, limit)
	copy(snapshot, r.entries[:limit])
	return snapshot
}

// Len reports the current number of tracked entries.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
