// SPDX-License-Identifier: MIT OR Apache-2.0

package mappings

import (
	"testing"

	"github.com/deadmock/deadmock/internal/config"
)

func TestStoreInsertAndEntries(t *testing.T) {
	s := New()
	if err := s.Insert(config.Mapping{Priority: 5}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Insert(config.Mapping{Priority: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Insert(config.Mapping{Priority: 3}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := s.Len(); got != 3 {
		t.Fatalf("got %d entries, want 3", got)
	}

	entries := s.Entries()
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	// Insertion order is preserved for the matcher's deterministic tiebreak.
	priorities := []uint8{entries[0].Mapping.Priority, entries[1].Mapping.Priority, entries[2].Mapping.Priority}
	want := []uint8{5, 1, 3}
	for i := range want {
		if priorities[i] != want[i] {
			t.Fatalf("entry %d: got priority %d, want %d", i, priorities[i], want[i])
		}
	}
}

func TestStoreInsertCollision(t *testing.T) {
	s := New()
	id := s.Entries() // no-op, just to exercise the empty path
	_ = id

	m := config.Mapping{Priority: 1}
	if err := s.Insert(m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Force a collision by inserting under an identifier already used.
	entries := s.Entries()
	if err := s.insert(entries[0].ID, m); err == nil {
		t.Fatal("expected a collision error on a reused identifier")
	}
}
