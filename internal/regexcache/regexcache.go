// SPDX-License-Identifier: MIT OR Apache-2.0

// Package regexcache provides a process-wide, unbounded, concurrency-safe
// cache of compiled regular expressions keyed by pattern source. It is
// used by the matcher engine's pattern predicates: the same pattern
// string always resolves to the same *regexp.Regexp, and compile
// failures are cached so a bad pattern is never retried.
//
// There is no eviction. This is deliberate: the set of patterns is
// bounded by the size of the loaded mapping configuration, not by
// request volume.
package regexcache

import (
	"regexp"
	"sync"
)

type entry struct {
	re  *regexp.Regexp
	err error
}

var (
	mu    sync.RWMutex
	cache = make(map[string]entry)
)

// Compile returns the compiled regexp for pattern, compiling and
// caching it on first use. Concurrent callers compiling the same new
// pattern may each compile it once (idempotent insert: the result is
// functionally identical either way), but every caller observes the
// same pattern resolving to an equivalent regexp from then on.
func Compile(pattern string) (*regexp.Regexp, error) {
	mu.RLock()
	if e, ok := cache[pattern]; ok {
		mu.RUnlock()
		return e.re, e.err
	}
	mu.RUnlock()

	re, err := regexp.Compile(pattern)

	mu.Lock()
	if e, ok := cache[pattern]; ok {
		mu.Unlock()
		return e.re, e.err
	}
	cache[pattern] = entry{re: re, err: err}
	mu.Unlock()

	return re, err
}

// Len reports the number of distinct patterns currently cached,
// including patterns that failed to compile. Exposed for tests.
func Len() int {
	mu.RLock()
	defer mu.RUnlock()
	return len(cache)
}
