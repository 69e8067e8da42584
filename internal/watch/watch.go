// Package watch reruns a callback when any of a fixed set of files changes.
package watch

import (
	"context"
	"errors"
	"log"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher observes the directories of a set of files and reports changes to
// those files only. Changes are debounced: events arriving within the
// debounce period are delivered as one batch.
type Watcher struct {
	watcher  *fsnotify.Watcher
	files    map[string]bool // absolute, cleaned paths
	debounce time.Duration
	log      *log.Logger
}

// New starts watching the directories of paths. A nil logger logs through
// the standard logger.
func New(paths []string, debounce time.Duration, logger *log.Logger) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, errors.New("watch: no files")
	}
	if debounce <= 0 {
		return nil, errors.New("watch: debounce must be positive")
	}
	if logger == nil {
		logger = log.Default()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher:  fsw,
		files:    make(map[string]bool),
		debounce: debounce,
		log:      logger,
	}
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fsw.Close()
			return nil, err
		}
		w.files[abs] = true
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		// Editors often replace files, so the directory is watched rather
		// than the file itself.
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, err
		}
		dirs[dir] = true
	}
	return w, nil
}

// Run blocks until ctx is cancelled, calling onChange with the sorted list
// of changed files after each quiet period. An error from onChange is
// logged and watching continues.
func (w *Watcher) Run(ctx context.Context, onChange func(changed []string) error) error {
	pending := make(map[string]bool)
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			pending[filepath.Clean(event.Name)] = true
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			changed := make([]string, 0, len(pending))
			for f := range pending {
				changed = append(changed, f)
			}
			sort.Strings(changed)
			clear(pending)
			if err := onChange(changed); err != nil {
				w.log.Printf("regenerate failed: %v", err)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Printf("file watcher error: %v", err)
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return false
	}
	return w.files[filepath.Clean(event.Name)]
}
