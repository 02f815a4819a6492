// SPDX-License-Identifier: MIT OR Apache-2.0

package mappings

import "sync/atomic"

// Watched holds a hot-swappable Store. The matcher reads through it
// exactly like a plain Store (see EntryLister in internal/matcher);
// Watch keeps the held Store current by reloading the mappings
// directory on filesystem change and swapping it in atomically, so a
// request in flight never observes a half-updated collection.
type Watched struct {
	current atomic.Pointer[Store]
}

// NewWatched wraps an already-loaded Store for hot reloading.
func NewWatched(initial *Store) *Watched {
	w := &Watched{}
	w.current.Store(initial)
	return w
}

// Entries returns the entries of the currently active Store.
func (w *Watched) Entries() []Entry {
	return w.current.Load().Entries()
}

// Len reports the size of the currently active Store.
func (w *Watched) Len() int {
	return w.current.Load().Len()
}

// Swap installs a newly loaded Store, replacing whatever was active.
func (w *Watched) Swap(s *Store) {
	w.current.Store(s)
}
