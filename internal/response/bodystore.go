// SPDX-License-Identifier: MIT OR Apache-2.0

// Package response builds the static (non-proxied) half of a mapping's
// response: resolving and caching the body file, and assembling the
// configured status and headers.
package response

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/deadmock/deadmock/internal/config"
)

// BodyStore indexes every regular file under a files root once at
// construction, keyed by base name, and caches file contents on first
// read. Base-name lookup implies base names must be unique across the
// whole tree; a duplicate is a fatal load-time error rather than a
// silent "first one found" pick.
type BodyStore struct {
	root  string
	index map[string]string // base name -> full path

	mu    sync.RWMutex
	cache map[string]string // base name -> contents
}

// NewBodyStore walks root recursively and builds the base-name index.
func NewBodyStore(root string) (*BodyStore, error) {
	bs := &BodyStore{
		root:  root,
		index: make(map[string]string),
		cache: make(map[string]string),
	}

	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return bs, nil
		}
		return nil, err
	}
	if !info.IsDir() {
		return bs, nil
	}

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if existing, ok := bs.index[name]; ok && existing != path {
			return fmt.Errorf("%w: %q (%s and %s)", config.ErrDuplicateBodyFileName, name, existing, path)
		}
		bs.index[name] = path
		return nil
	})
	if err != nil {
		return nil, err
	}

	return bs, nil
}

// Load returns the contents of the body file named filename, reading
// and caching it on first access. Subsequent calls return the cached
// contents directly; the cache is unbounded and never evicts.
func (bs *BodyStore) Load(filename string) (string, error) {
	bs.mu.RLock()
	if contents, ok := bs.cache[filename]; ok {
		bs.mu.RUnlock()
		return contents, nil
	}
	bs.mu.RUnlock()

	path, ok := bs.index[filename]
	if !ok {
		return "", config.ErrBodyFileNotFound
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s", config.ErrBodyFileNotFound, err)
	}
	contents := string(raw)

	bs.mu.Lock()
	if existing, ok := bs.cache[filename]; ok {
		bs.mu.Unlock()
		return existing, nil
	}
	bs.cache[filename] = contents
	bs.mu.Unlock()

	return contents, nil
}
