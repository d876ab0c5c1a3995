package report

import (
	"sync"
	"time"
)

// Entry records one in-flight or finished report generation.
type Entry struct {
	Status         string    `json:"status"`
	StartedAt      time.Time `json:"startedAt"`
	RuntimeSeconds float64   `json:"runtimeSeconds"`
}

// StatusActive marks a report that has been generated and is considered open
// until quit or eviction.
const StatusActive = "active"

// Registry tracks active reports by clean ID. Entries are removed by an
// explicit quit or by CleanupExpired; the map never grows unbounded.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*Entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*Entry),
	}
}

// Register records a completed generation for the given clean ID.
func (r *Registry) Register(cleanID string, runtimeSeconds float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[cleanID] = &Entry{
		Status:         StatusActive,
		StartedAt:      time.Now(),
		RuntimeSeconds: runtimeSeconds,
	}
}

// Get returns a copy of the entry for the given clean ID.
func (r *Registry) Get(cleanID string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[cleanID]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// IsActive reports whether a report is open for the given clean ID.
func (r *Registry) IsActive(cleanID string) bool {
	_, ok := r.Get(cleanID)
	return ok
}

// Delete removes the entry for the given clean ID, if any.
func (r *Registry) Delete(cleanID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, cleanID)
}

// Len returns the number of tracked reports.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// CleanupExpired removes entries older than maxAge and returns how many were
// evicted.
func (r *Registry) CleanupExpired(maxAge time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for id, e := range r.entries {
		if e.StartedAt.Before(cutoff) {
			delete(r.entries, id)
			removed++
		}
	}

	return removed
}
