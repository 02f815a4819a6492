// SPDX-License-Identifier: MIT OR Apache-2.0

package mappings

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/go-logr/logr"

	"github.com/deadmock/deadmock/internal/metrics"
)

// Watch watches root (and every subdirectory under it) for filesystem
// changes and reloads the whole mapping collection into watched on
// every event, rather than diffing individual files. A reload that
// fails to parse is logged and discarded; the previously loaded Store
// stays active. Watch blocks until ctx is cancelled or the underlying
// watcher closes.
func Watch(ctx context.Context, root string, watched *Watched, log logr.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := addRecursive(watcher, root); err != nil {
		return err
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			log.V(2).Info("mappings directory changed", "event", event.String())
			reload(root, watched, log)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error(err, "mappings watcher error")
		case <-ctx.Done():
			return nil
		}
	}
}

func reload(root string, watched *Watched, log logr.Logger) {
	store, err := Load(root)
	if err != nil {
		metrics.ReloadsTotal.WithLabelValues("error").Inc()
		log.Error(err, "reloading mappings failed, keeping previous mappings")
		return
	}
	watched.Swap(store)
	metrics.ReloadsTotal.WithLabelValues("ok").Inc()
	metrics.MappingsLoaded.Set(float64(store.Len()))
	log.Info("reloaded mappings", "count", store.Len())
}

// addRecursive adds root and every subdirectory beneath it to watcher;
// fsnotify only watches the directories explicitly added to it, not
// their descendants.
func addRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}
