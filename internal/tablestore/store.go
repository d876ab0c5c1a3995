package tablestore

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/tabular-insights/backend/internal/models"
)

// ErrNotFound is returned when no table exists for the given clean ID.
var ErrNotFound = errors.New("table not found")

// Store persists parsed tables keyed by an opaque clean ID.
type Store interface {
	Put(t *models.Table) (string, error)
	Get(id string) (*models.Table, error)
	Delete(id string) error
	Len() int
}

// MemoryStore keeps tables msgpack-encoded in memory behind a lock.
// Entries are evicted by CleanupExpired, driven by a ticker at startup.
type MemoryStore struct {
	mu     sync.RWMutex
	tables map[string]*entry
}

type entry struct {
	blob     []byte
	storedAt time.Time
}

// NewMemoryStore creates an empty in-memory table store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tables: make(map[string]*entry),
	}
}

// Put encodes the table and stores it under a fresh clean ID.
func (s *MemoryStore) Put(t *models.Table) (string, error) {
	blob, err := msgpack.Marshal(t)
	if err != nil {
		return "", fmt.Errorf("encoding table: %w", err)
	}

	id := uuid.New().String()

	s.mu.Lock()
	s.tables[id] = &entry{blob: blob, storedAt: time.Now()}
	s.mu.Unlock()

	return id, nil
}

// Get decodes and returns the table stored under id.
func (s *MemoryStore) Get(id string) (*models.Table, error) {
	s.mu.RLock()
	e, ok := s.tables[id]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}

	var t models.Table
	if err := msgpack.Unmarshal(e.blob, &t); err != nil {
		return nil, fmt.Errorf("decoding table %s: %w", id, err)
	}

	return &t, nil
}

// Delete removes the table stored under id.
func (s *MemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tables[id]; !ok {
		return ErrNotFound
	}

	delete(s.tables, id)
	return nil
}

// Len returns the number of stored tables.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tables)
}

// CleanupExpired removes tables older than maxAge and returns how many were
// evicted.
func (s *MemoryStore) CleanupExpired(maxAge time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for id, e := range s.tables {
		if e.storedAt.Before(cutoff) {
			delete(s.tables, id)
			removed++
		}
	}

	return removed
}
