// Package memstore provides an in-memory store.KV. It backs tests and
// the LINKDECK_STORE=memory mode, where state lives only for the
// process lifetime.
package memstore

import (
	"context"
	"sync"
)

// Store is a map-backed store.KV. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	records map[string][]byte
	writes  int

	// FailSave, when set, is returned by every Save call. Tests use
	// it to exercise the commit-after-confirm discipline.
	FailSave error
}

// New returns an empty in-memory store.
func New() *Store {
	return &Store{records: make(map[string][]byte)}
}

func (s *Store) Load(ctx context.Context, keys ...string) (map[string][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string][]byte, len(keys))
	for _, key := range keys {
		if value, ok := s.records[key]; ok {
			cp := make([]byte, len(value))
			copy(cp, value)
			out[key] = cp
		}
	}
	return out, nil
}

func (s *Store) Save(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailSave != nil {
		return s.FailSave
	}

	cp := make([]byte, len(value))
	copy(cp, value)
	s.records[key] = cp
	s.writes++
	return nil
}

// Writes reports how many Save calls have been applied. Tests assert
// on it to prove rejected drafts never reach the store.
func (s *Store) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}
