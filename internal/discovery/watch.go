/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package discovery

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for a burst of filesystem
// events to go quiet before invoking the onChange callback.
const DefaultDebounce = 250 * time.Millisecond

// Watcher watches a set of roots recursively for changes to JSON/JSONC
// entity files, debouncing bursts of events before reporting them.
type Watcher struct {
	roots    []string
	debounce time.Duration
}

// NewWatcher builds a Watcher over the given roots. A debounce <= 0 falls
// back to DefaultDebounce.
func NewWatcher(roots []string, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{roots: roots, debounce: debounce}
}

// Run watches until ctx is cancelled or an unrecoverable watcher error
// occurs, invoking onChange with the sorted set of changed paths after
// each quiet period.
func (w *Watcher) Run(ctx context.Context, onChange func(changedPaths []string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, root := range w.roots {
		absRoot, err := filepath.Abs(root)
		if err != nil {
			continue
		}
		if err := addWatchRecursive(watcher, absRoot); err != nil {
			return err
		}
	}

	timer := time.NewTimer(time.Hour)
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	pending := false
	pendingPaths := map[string]bool{}

	resetDebounce := func(path string) {
		if path != "" {
			pendingPaths[path] = true
		}
		if pending {
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
		}
		timer.Reset(w.debounce)
		pending = true
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			eventPath := filepath.Clean(event.Name)
			if shouldIgnoreWatchPath(eventPath) {
				continue
			}

			if event.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(eventPath); statErr == nil && info.IsDir() {
					_ = addWatchRecursive(watcher, eventPath)
				}
			}

			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			resetDebounce(eventPath)
		case <-timer.C:
			if pending {
				pending = false
				changed := make([]string, 0, len(pendingPaths))
				for path := range pendingPaths {
					changed = append(changed, path)
				}
				sort.Strings(changed)
				pendingPaths = map[string]bool{}
				onChange(changed)
			}
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return watchErr
		}
	}
}

func addWatchRecursive(watcher *fsnotify.Watcher, root string) error {
	root = filepath.Clean(root)
	return filepath.Walk(root, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		if shouldSkipWatchDir(info.Name(), path == root) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

func shouldSkipWatchDir(name string, isRoot bool) bool {
	if isRoot {
		return false
	}
	for _, exclude := range ExcludeList {
		if name == exclude {
			return true
		}
	}
	return strings.HasPrefix(name, ".")
}

func shouldIgnoreWatchPath(path string) bool {
	base := filepath.Base(path)
	if base == ".DS_Store" || strings.HasSuffix(base, ".swp") || strings.HasSuffix(base, ".swx") || strings.HasPrefix(base, ".#") {
		return true
	}
	ext := strings.ToLower(filepath.Ext(path))
	return ext != "" && !jsonFileExtensions[ext]
}
