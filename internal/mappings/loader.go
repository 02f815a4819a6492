// SPDX-License-Identifier: MIT OR Apache-2.0

package mappings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/deadmock/deadmock/internal/config"
)

// visitDirs recursively walks dir, invoking cb on every regular file
// found, depth-first. Mirrors the recursive directory walk the original
// mapping loader performs.
func visitDirs(dir string, cb func(path string) error) error {
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			if err := visitDirs(path, cb); err != nil {
				return err
			}
			continue
		}
		if err := cb(path); err != nil {
			return err
		}
	}
	return nil
}

// decode parses raw as a Mapping, choosing the codec by file
// extension: .json documents decode as JSON, everything else as TOML.
// The two codecs share the same field shape, so a mapping authored in
// either format produces the same Mapping value.
func decode(path string, raw []byte, m *config.Mapping) error {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return json.Unmarshal(raw, m)
	}
	return toml.Unmarshal(raw, m)
}

// Load walks root recursively and parses every regular file found as a
// TOML-encoded Mapping (or JSON, for .json files), inserting each into
// a fresh Store. A malformed document or an identifier collision
// aborts loading with an error, since both are load-time invariant
// violations treated as fatal at startup.
func Load(root string) (*Store, error) {
	store := New()

	err := visitDirs(root, func(path string) error {
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading mapping file %s: %w", path, err)
		}

		var m config.Mapping
		if err := decode(path, raw, &m); err != nil {
			return fmt.Errorf("decoding mapping file %s: %w", path, err)
		}

		if err := store.Insert(m); err != nil {
			return fmt.Errorf("inserting mapping from %s: %w", path, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return store, nil
}
