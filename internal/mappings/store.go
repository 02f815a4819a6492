// SPDX-License-Identifier: MIT OR Apache-2.0

// Package mappings implements the mapping store: a collection of
// config.Mapping values keyed by a generated opaque identifier and
// listed in insertion order, loaded once at startup and shared read-only across all
// request handlers for the lifetime of the process.
package mappings

import (
	"sync"

	"github.com/google/uuid"

	"github.com/deadmock/deadmock/internal/config"
)

// Entry pairs a mapping with the opaque identifier it was stored
// under and the order it was inserted in, which the matcher uses as a
// secondary, deterministic tiebreak when priorities and names match.
type Entry struct {
	ID      uuid.UUID
	Mapping config.Mapping
	Seq     int
}

// Store is a concurrency-safe collection of mappings keyed by a
// generated uuid. It never evicts; mappings are loaded once and never
// removed for the process lifetime.
type Store struct {
	mu    sync.RWMutex
	inner map[uuid.UUID]config.Mapping
	order []uuid.UUID
}

// New returns an empty Store.
func New() *Store {
	return &Store{inner: make(map[uuid.UUID]config.Mapping)}
}

// Insert adds a mapping under a freshly generated identifier. A
// collision with an existing identifier is a fatal load-time
// invariant violation.
func (s *Store) Insert(m config.Mapping) error {
	return s.insert(uuid.New(), m)
}

func (s *Store) insert(id uuid.UUID, m config.Mapping) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.inner[id]; exists {
		return config.ErrMappingKeyCollision
	}
	s.inner[id] = m
	s.order = append(s.order, id)
	return nil
}

// Len reports the number of mappings currently stored.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.inner)
}

// Entries returns every stored mapping in insertion order. The
// returned slice is a snapshot; callers must not mutate it.
func (s *Store) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := make([]Entry, 0, len(s.order))
	for seq, id := range s.order {
		entries = append(entries, Entry{ID: id, Mapping: s.inner[id], Seq: seq})
	}
	return entries
}
